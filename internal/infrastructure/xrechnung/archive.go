package xrechnung

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
)

const (
	archiveDir    = "xrechnung"
	archiveSuffix = "_xrechnung.xml"
)

// StoredDocument resultado de archivar el XML.
type StoredDocument struct {
	Path   string
	SHA256 string
}

// FileArchive guarda el XML en <root>/xrechnung/<número>_xrechnung.xml.
// No hay bloqueo por archivo: dos escrituras simultáneas del mismo número
// terminan con el contenido de la última.
type FileArchive struct {
	root string
}

// NewFileArchive crea el adaptador sobre el directorio raíz de facturas.
func NewFileArchive(root string) *FileArchive {
	return &FileArchive{root: root}
}

// Filename nombre del archivo para un número de factura.
func Filename(invoiceNumber string) string {
	return invoiceNumber + archiveSuffix
}

// Path ruta completa del XML de la factura.
func (a *FileArchive) Path(invoiceNumber string) (string, error) {
	if err := checkInvoiceNumber(invoiceNumber); err != nil {
		return "", err
	}
	return filepath.Join(a.root, archiveDir, Filename(invoiceNumber)), nil
}

// Save crea el directorio si no existe, escribe el XML y devuelve ruta y SHA-256.
func (a *FileArchive) Save(invoiceNumber, xmlDoc string) (*StoredDocument, error) {
	path, err := a.Path(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("archivo: crear directorio: %w", err)
	}
	if err := os.WriteFile(path, []byte(xmlDoc), 0o644); err != nil {
		return nil, fmt.Errorf("archivo: escribir %s: %w", path, err)
	}
	return &StoredDocument{Path: path, SHA256: domxr.Digest(xmlDoc)}, nil
}

// Load lee el XML archivado. domain.ErrNotFound si no existe.
func (a *FileArchive) Load(invoiceNumber string) ([]byte, error) {
	path, err := a.Path(invoiceNumber)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("archivo: leer %s: %w", path, err)
	}
	return data, nil
}

// checkInvoiceNumber el número forma parte de la ruta: no puede salir del directorio.
func checkInvoiceNumber(n string) error {
	if strings.TrimSpace(n) == "" || n == "." || n == ".." || strings.ContainsAny(n, `/\`) {
		return fmt.Errorf("%w: número de factura %q no válido como nombre de archivo", domain.ErrInvalidInput, n)
	}
	return nil
}
