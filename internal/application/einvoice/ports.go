package einvoice

import (
	"context"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

// Generator produce el XML CII (lo implementa *xrechnung.Generator).
type Generator interface {
	Generate(inv *entity.Invoice) (string, error)
}

// Archive guarda y lee el XML por número de factura (lo implementa *xrechnung.FileArchive).
type Archive interface {
	Save(invoiceNumber, xmlDoc string) (*xrechnung.StoredDocument, error)
	Load(invoiceNumber string) ([]byte, error)
}

// Mirror copia secundaria del XML (S3). Opcional.
type Mirror interface {
	Put(ctx context.Context, invoiceNumber, xmlDoc, sha256 string) (string, error)
}
