package xrechnung

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// CanonicalDigest SHA-256 (hex) de la forma canónica C14N del documento.
// Complementa al hash de bytes: no cambia con sangría de atributos ni comillas.
func CanonicalDigest(xmlDoc string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(xmlDoc)))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xrechnung: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
