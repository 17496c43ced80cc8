package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados posibles de una generación.
const (
	OutcomeValid    = "valid"
	OutcomeInvalid  = "invalid"  // generada con avisos del validador
	OutcomeRejected = "rejected" // modo estricto
	OutcomeError    = "error"
)

// Metrics contadores e histogramas del servicio XRechnung.
type Metrics struct {
	Generated        *prometheus.CounterVec
	GenerateDuration prometheus.Histogram
	ValidationErrors prometheus.Counter
	Archived         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registra los colectores en reg. Con nil se usa un registro propio,
// así varias instancias (tests) no chocan en el registro global.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Generated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "xrechnung_documents_generated_total",
			Help: "Documentos CII generados por resultado",
		}, []string{"outcome"}),

		GenerateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "xrechnung_generate_duration_seconds",
			Help:    "Duración de validar, generar y archivar una factura",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		ValidationErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "xrechnung_validation_errors_total",
			Help: "Mensajes de error emitidos por el validador estructural",
		}),

		Archived: f.NewCounterVec(prometheus.CounterOpts{
			Name: "xrechnung_documents_archived_total",
			Help: "Escrituras de XML por destino (file, s3, audit)",
		}, []string{"target"}),

		gatherer: reg,
	}
}

// ObserveGenerate registra un resultado y su duración.
func (m *Metrics) ObserveGenerate(outcome string, d time.Duration) {
	if m != nil {
		m.Generated.WithLabelValues(outcome).Inc()
		m.GenerateDuration.Observe(d.Seconds())
	}
}

// AddValidationErrors suma los mensajes de un informe.
func (m *Metrics) AddValidationErrors(n int) {
	if m != nil && n > 0 {
		m.ValidationErrors.Add(float64(n))
	}
}

// IncArchived cuenta una escritura en target.
func (m *Metrics) IncArchived(target string) {
	if m != nil {
		m.Archived.WithLabelValues(target).Inc()
	}
}

// Handler exposición en formato Prometheus del registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
