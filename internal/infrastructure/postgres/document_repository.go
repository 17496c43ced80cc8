package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// Schema tabla de auditoría; EnsureSchema la crea si no existe.
const Schema = `
CREATE TABLE IF NOT EXISTS xrechnung_documents (
	id               UUID PRIMARY KEY,
	invoice_number   TEXT        NOT NULL,
	path             TEXT        NOT NULL,
	sha256           CHAR(64)    NOT NULL,
	canonical_sha256 CHAR(64),
	gross_total      NUMERIC(15,2),
	payable_total    NUMERIC(15,2),
	valid            BOOLEAN     NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS xrechnung_documents_invoice_idx
	ON xrechnung_documents (invoice_number, created_at DESC);`

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q   Querier
	now func() time.Time
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q, now: time.Now}
}

// EnsureSchema crea tabla e índice.
func (r *DocumentRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("crear esquema xrechnung_documents: %w", err)
	}
	return nil
}

// Create inserta el registro; asigna ID y CreatedAt si faltan.
func (r *DocumentRepo) Create(ctx context.Context, rec *entity.DocumentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}
	query := `
		INSERT INTO xrechnung_documents (id, invoice_number, path, sha256, canonical_sha256, gross_total, payable_total, valid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.InvoiceNumber, rec.Path, rec.SHA256, nullIfEmpty(rec.CanonicalSHA256),
		rec.GrossTotal, rec.PayableTotal, rec.Valid, rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registro xrechnung duplicado: %w", err)
		}
		return fmt.Errorf("insert xrechnung_documents: %w", err)
	}
	return nil
}

// LatestByInvoice último registro por fecha de creación.
func (r *DocumentRepo) LatestByInvoice(ctx context.Context, invoiceNumber string) (*entity.DocumentRecord, error) {
	query := `
		SELECT id, invoice_number, path, sha256, COALESCE(canonical_sha256, ''), gross_total, payable_total, valid, created_at
		FROM xrechnung_documents
		WHERE invoice_number = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var rec entity.DocumentRecord
	err := r.q.QueryRow(ctx, query, invoiceNumber).Scan(
		&rec.ID, &rec.InvoiceNumber, &rec.Path, &rec.SHA256, &rec.CanonicalSHA256,
		&rec.GrossTotal, &rec.PayableTotal, &rec.Valid, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get xrechnung_documents: %w", err)
	}
	return &rec, nil
}
