package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentRecord registro de auditoría de un XML archivado.
// Cada exportación añade un registro; el último es el vigente.
type DocumentRecord struct {
	ID              string
	InvoiceNumber   string
	Path            string
	SHA256          string // sobre los bytes exactos del archivo
	CanonicalSHA256 string // sobre la forma C14N
	GrossTotal      decimal.NullDecimal
	PayableTotal    decimal.NullDecimal
	Valid           bool
	CreatedAt       time.Time
}
