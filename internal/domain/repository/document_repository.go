package repository

import (
	"context"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para el registro de auditoría.
type DocumentRepository interface {
	Create(ctx context.Context, rec *entity.DocumentRecord) error
	// LatestByInvoice último registro de la factura; nil, nil si no hay ninguno.
	LatestByInvoice(ctx context.Context, invoiceNumber string) (*entity.DocumentRecord, error)
}
