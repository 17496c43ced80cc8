package einvoice_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xrechnung-api/internal/application/einvoice"
	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
	"github.com/jhoicas/xrechnung-api/pkg/metrics"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memDocuments struct {
	mu      sync.Mutex
	records []*entity.DocumentRecord
	err     error
}

func (m *memDocuments) Create(_ context.Context, rec *entity.DocumentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = "rec-" + rec.SHA256[:8]
	m.records = append(m.records, rec)
	return nil
}

func (m *memDocuments) LatestByInvoice(_ context.Context, n string) (*entity.DocumentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].InvoiceNumber == n {
			return m.records[i], nil
		}
	}
	return nil, nil
}

type fakeMirror struct {
	keys []string
	err  error
}

func (f *fakeMirror) Put(_ context.Context, n, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := "xrechnung/" + n + "_xrechnung.xml"
	f.keys = append(f.keys, key)
	return key, nil
}

// countingArchive cuenta escrituras y detecta solapamientos sobre el mismo número.
type countingArchive struct {
	*xrechnung.FileArchive
	saves   atomic.Int32
	active  atomic.Int32
	overlap atomic.Bool
}

func (a *countingArchive) Save(n, doc string) (*xrechnung.StoredDocument, error) {
	if a.active.Add(1) > 1 {
		a.overlap.Store(true)
	}
	defer a.active.Add(-1)
	a.saves.Add(1)
	time.Sleep(5 * time.Millisecond)
	return a.FileArchive.Save(n, doc)
}

// ── fixture ──────────────────────────────────────────────────────────────────

func validInvoice() *entity.Invoice {
	return &entity.Invoice{
		Number:    "R-2025-001",
		IssueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Lines: []entity.LineItem{{
			Description: "Service",
			UnitPrice:   decimal.RequireFromString("100.00"),
			Quantity:    decimal.NewFromInt(1),
			TaxRate:     decimal.NewFromInt(19),
			LineTotal:   decimal.RequireFromString("100.00"),
		}},
		Totals: entity.Totals{
			Net:      decimal.RequireFromString("100.00"),
			VAT:      decimal.RequireFromString("19.00"),
			VATBasis: decimal.RequireFromString("100.00"),
			VATRate:  decimal.NewFromInt(19),
			Gross:    decimal.NewNullDecimal(decimal.RequireFromString("119.00")),
		},
		Seller: entity.Party{
			Name: "Muster GmbH", Street: "Hauptstraße", HouseNumber: "1",
			PostalCode: "10115", City: "Berlin", VATID: "DE123456789",
		},
		Buyer: entity.Party{
			Name: "Kunde AG", Street: "Marktplatz", HouseNumber: "5",
			PostalCode: "80331", City: "München",
		},
	}
}

type fixture struct {
	svc     *einvoice.Service
	archive *countingArchive
	docs    *memDocuments
	mirror  *fakeMirror
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	f := &fixture{
		archive: &countingArchive{FileArchive: xrechnung.NewFileArchive(t.TempDir())},
		docs:    &memDocuments{},
		mirror:  &fakeMirror{},
		metrics: metrics.New(nil),
	}
	f.svc = einvoice.NewService(einvoice.Deps{
		Generator: xrechnung.NewGenerator(""),
		Archive:   f.archive,
		Documents: f.docs,
		Mirror:    f.mirror,
		Metrics:   f.metrics,
		Strict:    strict,
	})
	return f
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestExport_ArchivaRegistraYReplica(t *testing.T) {
	f := newFixture(t, false)

	res, err := f.svc.Export(context.Background(), validInvoice())
	require.NoError(t, err)

	assert.True(t, res.Report.Valid)
	assert.Empty(t, res.Report.Errors)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, domxr.Digest(string(data)), res.SHA256, "el hash corresponde a los bytes escritos")
	assert.Len(t, res.CanonicalSHA256, 64)
	assert.Equal(t, "xrechnung/R-2025-001_xrechnung.xml", res.ObjectKey)

	require.Len(t, f.docs.records, 1)
	rec := f.docs.records[0]
	assert.Equal(t, res.SHA256, rec.SHA256)
	assert.Equal(t, res.RecordID, rec.ID)
	assert.True(t, rec.PayableTotal.Decimal.Equal(decimal.RequireFromString("119.00")), "payable cae al bruto")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generated.WithLabelValues(metrics.OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Archived.WithLabelValues("file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Archived.WithLabelValues("audit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Archived.WithLabelValues("s3")))
}

func TestExport_ModoEstrictoRechaza(t *testing.T) {
	f := newFixture(t, true)
	inv := validInvoice()
	inv.Buyer.PostalCode = ""

	_, err := f.svc.Export(context.Background(), inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingRequiredField))
	assert.Contains(t, err.Error(), "BG-7")
	assert.Zero(t, f.archive.saves.Load(), "no se escribe nada")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generated.WithLabelValues(metrics.OutcomeRejected)))
}

func TestExport_ModoLenienteArchivaConAvisos(t *testing.T) {
	f := newFixture(t, false)
	inv := validInvoice()
	inv.Buyer.PostalCode = ""

	res, err := f.svc.Export(context.Background(), inv)
	require.NoError(t, err)
	assert.False(t, res.Report.Valid)
	assert.NotEmpty(t, res.Report.Errors)
	assert.False(t, f.docs.records[0].Valid)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generated.WithLabelValues(metrics.OutcomeInvalid)))
}

func TestExport_FalloDelEspejoNoEsFatal(t *testing.T) {
	f := newFixture(t, false)
	f.mirror.err = errors.New("s3 caído")

	res, err := f.svc.Export(context.Background(), validInvoice())
	require.NoError(t, err)
	assert.Empty(t, res.ObjectKey)
	assert.FileExists(t, res.Path)
}

func TestExport_FalloDeAuditoria(t *testing.T) {
	f := newFixture(t, false)
	f.docs.err = errors.New("db caída")

	_, err := f.svc.Export(context.Background(), validInvoice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auditoría")
}

func TestExport_FechaInvalidaPropaga(t *testing.T) {
	f := newFixture(t, false)
	inv := validInvoice()
	inv.IssueDate = time.Time{}

	_, err := f.svc.Export(context.Background(), inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xrechnung.ErrInvalidDate))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generated.WithLabelValues(metrics.OutcomeError)))
}

func TestExport_ConcurrenteMismoNumeroSinSolapamiento(t *testing.T) {
	f := newFixture(t, false)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv := validInvoice()
			if i%2 == 1 {
				inv.Note = "Variante"
			}
			_, errs[i] = f.svc.Export(context.Background(), inv)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.False(t, f.archive.overlap.Load(), "dos escrituras del mismo número a la vez")
	assert.LessOrEqual(t, f.archive.saves.Load(), int32(10))

	// El archivo final coincide con el último registro de auditoría.
	data, err := f.svc.Load(context.Background(), "R-2025-001")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExport_CancelacionDelContexto(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Export(ctx, validInvoice())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_NoArchiva(t *testing.T) {
	f := newFixture(t, false)

	res, err := f.svc.Generate(context.Background(), validInvoice())
	require.NoError(t, err)
	assert.Contains(t, res.XML, "<ram:ID>R-2025-001</ram:ID>")
	assert.Equal(t, domxr.Digest(res.XML), res.SHA256)
	assert.Zero(t, f.archive.saves.Load())
	assert.Empty(t, f.docs.records)
}

func TestValidate_CuentaErrores(t *testing.T) {
	f := newFixture(t, false)
	report := f.svc.Validate(&entity.Invoice{})
	assert.False(t, report.Valid)
	assert.Equal(t, float64(len(report.Errors)), testutil.ToFloat64(f.metrics.ValidationErrors))
}

func TestLoad_DetectaManipulacion(t *testing.T) {
	f := newFixture(t, false)
	res, err := f.svc.Export(context.Background(), validInvoice())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(res.Path, []byte("<manipulado/>"), 0o644))

	_, err = f.svc.Load(context.Background(), "R-2025-001")
	assert.ErrorIs(t, err, domain.ErrDigestMismatch)
}

func TestLoad_NoExiste(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.Load(context.Background(), "R-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_SinAuditoria(t *testing.T) {
	archive := xrechnung.NewFileArchive(t.TempDir())
	svc := einvoice.NewService(einvoice.Deps{Generator: xrechnung.NewGenerator(""), Archive: archive})

	_, err := svc.Export(context.Background(), validInvoice())
	require.NoError(t, err)
	data, err := svc.Load(context.Background(), "R-2025-001")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CrossIndustryInvoice")
}
