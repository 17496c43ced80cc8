package einvoice

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/internal/domain/repository"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
	"github.com/jhoicas/xrechnung-api/pkg/logger"
	"github.com/jhoicas/xrechnung-api/pkg/metrics"
)

// Result XML generado junto con el informe del validador.
type Result struct {
	XML    string
	SHA256 string
	Report domxr.Report
}

// ExportResult documento archivado.
type ExportResult struct {
	InvoiceNumber   string
	Path            string
	SHA256          string
	CanonicalSHA256 string
	ObjectKey       string
	RecordID        string
	Report          domxr.Report
}

// Deps dependencias del servicio. Documents, Mirror y Metrics pueden ser nil.
type Deps struct {
	Generator Generator
	Archive   Archive
	Documents repository.DocumentRepository
	Mirror    Mirror
	Metrics   *metrics.Metrics
	Logger    *logger.Logger
	Strict    bool // rechaza facturas con términos obligatorios ausentes
}

// Service casos de uso de la XRechnung: validar, generar, exportar y leer.
//
// Export serializa por número de factura: dentro del proceso nunca hay dos
// escrituras simultáneas sobre <root>/xrechnung/<número>_xrechnung.xml.
type Service struct {
	gen     Generator
	archive Archive
	docs    repository.DocumentRepository
	mirror  Mirror
	metrics *metrics.Metrics
	log     *logger.Logger
	strict  bool

	inflight singleflight.Group
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		gen:     d.Generator,
		archive: d.Archive,
		docs:    d.Documents,
		mirror:  d.Mirror,
		metrics: d.Metrics,
		log:     log.WithComponent("einvoice"),
		strict:  d.Strict,
	}
}

// Validate control estructural; nunca falla.
func (s *Service) Validate(inv *entity.Invoice) domxr.Report {
	report := domxr.Validate(inv)
	s.metrics.AddValidationErrors(len(report.Errors))
	return report
}

// Generate valida y genera sin archivar. En modo estricto un informe inválido
// devuelve ErrMissingRequiredField y no se genera nada.
func (s *Service) Generate(ctx context.Context, inv *entity.Invoice) (*Result, error) {
	start := time.Now()
	res, err := s.generate(inv)
	s.observe(res, err, start)
	return res, err
}

func (s *Service) generate(inv *entity.Invoice) (*Result, error) {
	report := s.Validate(inv)
	if s.strict && !report.Valid {
		return &Result{Report: report}, report.Err()
	}
	xmlDoc, err := s.gen.Generate(inv)
	if err != nil {
		return &Result{Report: report}, err
	}
	if _, err := xrechnung.Inspect(xmlDoc); err != nil {
		return &Result{Report: report}, err
	}
	return &Result{XML: xmlDoc, SHA256: domxr.Digest(xmlDoc), Report: report}, nil
}

// Export genera, archiva, registra y opcionalmente replica en S3.
// Si la generación falla el resultado lleva solo el informe del validador.
func (s *Service) Export(ctx context.Context, inv *entity.Invoice) (*ExportResult, error) {
	start := time.Now()
	res, err := s.generate(inv)
	s.observe(res, err, start)
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_number", invoiceNumber(inv)).Msg("xrechnung no generada")
		return &ExportResult{InvoiceNumber: invoiceNumber(inv), Report: res.Report}, err
	}

	// Mientras otra exportación del mismo número esté en curso se comparte su
	// resultado; si escribió otro contenido se vuelve a intentar con el propio.
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err, shared := s.inflight.Do(inv.Number, func() (any, error) {
			return s.persist(ctx, inv, res)
		})
		if err != nil {
			return nil, err
		}
		out := v.(*ExportResult)
		if !shared || out.SHA256 == res.SHA256 {
			copied := *out
			copied.Report = res.Report
			return &copied, nil
		}
	}
}

func (s *Service) persist(ctx context.Context, inv *entity.Invoice, res *Result) (*ExportResult, error) {
	stored, err := s.archive.Save(inv.Number, res.XML)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_number", inv.Number).Msg("no se pudo archivar la xrechnung")
		return nil, err
	}
	s.metrics.IncArchived("file")

	canonical, err := xrechnung.CanonicalDigest(res.XML)
	if err != nil {
		return nil, err
	}
	out := &ExportResult{
		InvoiceNumber:   inv.Number,
		Path:            stored.Path,
		SHA256:          stored.SHA256,
		CanonicalSHA256: canonical,
		Report:          res.Report,
	}

	if s.docs != nil {
		rec := &entity.DocumentRecord{
			InvoiceNumber:   inv.Number,
			Path:            stored.Path,
			SHA256:          stored.SHA256,
			CanonicalSHA256: canonical,
			GrossTotal:      inv.Totals.Gross,
			PayableTotal:    inv.Totals.PayableOrGross(),
			Valid:           res.Report.Valid,
		}
		if err := s.docs.Create(ctx, rec); err != nil {
			s.log.Error().Err(err).Str("invoice_number", inv.Number).Msg("registro de auditoría fallido")
			return nil, fmt.Errorf("auditoría xrechnung: %w", err)
		}
		out.RecordID = rec.ID
		s.metrics.IncArchived("audit")
	}

	// El archivo local es la referencia; un fallo del espejo solo se registra.
	if s.mirror != nil {
		key, err := s.mirror.Put(ctx, inv.Number, res.XML, stored.SHA256)
		if err != nil {
			s.log.Warn().Err(err).Str("invoice_number", inv.Number).Msg("copia en object store fallida")
		} else {
			out.ObjectKey = key
			s.metrics.IncArchived("s3")
		}
	}

	s.log.Info().
		Str("invoice_number", inv.Number).
		Str("path", stored.Path).
		Str("sha256", stored.SHA256).
		Bool("valid", res.Report.Valid).
		Msg("xrechnung archivada")
	return out, nil
}

// Load devuelve el XML archivado. Con registro de auditoría comprueba que el
// hash del archivo coincide con el último registrado.
func (s *Service) Load(ctx context.Context, invoiceNumber string) ([]byte, error) {
	data, err := s.archive.Load(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if s.docs == nil {
		return data, nil
	}
	rec, err := s.docs.LatestByInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if rec != nil && rec.SHA256 != domxr.Digest(string(data)) {
		s.log.Error().Str("invoice_number", invoiceNumber).Str("expected", rec.SHA256).Msg("hash del archivo distinto al registrado")
		return nil, fmt.Errorf("%w: %s", domain.ErrDigestMismatch, invoiceNumber)
	}
	return data, nil
}

func (s *Service) observe(res *Result, err error, start time.Time) {
	outcome := metrics.OutcomeValid
	switch {
	case err != nil && res != nil && s.strict && !res.Report.Valid:
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeError
	case !res.Report.Valid:
		outcome = metrics.OutcomeInvalid
	}
	s.metrics.ObserveGenerate(outcome, time.Since(start))
}

func invoiceNumber(inv *entity.Invoice) string {
	if inv == nil {
		return ""
	}
	return inv.Number
}
