// Package cli comandos cobra de la herramienta xrechnung: generar, validar y
// calcular el hash de un XML ya archivado, sin levantar el servidor HTTP.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/xrechnung-api/internal/application/dto"
	"github.com/jhoicas/xrechnung-api/pkg/logger"
)

var version = "1.0.0"

// NewRootCommand árbol de comandos. out recibe el resultado; los logs van a stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "xrechnung",
		Short: "Genera y valida XRechnung 3.0 (CII) desde un JSON de factura",
		Long: `xrechnung convierte una factura en JSON al formato UN/CEFACT Cross Industry
Invoice según EN 16931 / XRechnung 3.0, comprueba los términos de negocio
obligatorios y calcula el SHA-256 de documentos archivados.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String("log-level", "warn", "nivel de log (debug, info, warn, error)")
	root.PersistentFlags().String("charset", "utf-8", "codificación del JSON de entrada (utf-8, iso-8859-1, windows-1252)")
	root.AddCommand(newGenerateCmd(), newValidateCmd(), newHashCmd(), newTokenCmd())
	return root
}

// Execute punto de entrada de cmd/xrechnung.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func cmdLogger(cmd *cobra.Command, component string) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(logger.Config{Env: "production", Level: level, Output: cmd.ErrOrStderr()}).WithComponent(component)
}

// readInvoice lee el JSON de entrada; "-" = stdin.
func readInvoice(cmd *cobra.Command, path string) (*dto.InvoiceRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	charset, _ := cmd.Flags().GetString("charset")
	if data, err = toUTF8(data, charset); err != nil {
		return nil, err
	}
	var req dto.InvoiceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("JSON de factura inválido: %w", err)
	}
	return &req, nil
}

// toUTF8 muchos ERP antiguos exportan en Latin-1 o Windows-1252; el XML siempre sale en UTF-8.
func toUTF8(data []byte, charset string) ([]byte, error) {
	var enc encoding.Encoding
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", charset)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("convertir %s a UTF-8: %w", charset, err)
	}
	return out, nil
}
