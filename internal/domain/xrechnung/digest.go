// Package xrechnung contiene las reglas de dominio de la XRechnung: el control
// estructural de términos obligatorios (EN 16931) y el hash de integridad (GoBD).
package xrechnung

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest SHA-256 en hexadecimal (minúsculas) de los bytes UTF-8 del XML.
// Se guarda junto al documento para auditoría GoBD.
func Digest(xmlDoc string) string {
	sum := sha256.Sum256([]byte(xmlDoc))
	return hex.EncodeToString(sum[:])
}
