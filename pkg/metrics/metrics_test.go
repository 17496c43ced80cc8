package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/xrechnung-api/pkg/metrics"
)

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveGenerate(metrics.OutcomeValid, 10*time.Millisecond)
	m.ObserveGenerate(metrics.OutcomeValid, 20*time.Millisecond)
	m.ObserveGenerate(metrics.OutcomeRejected, time.Millisecond)
	m.AddValidationErrors(3)
	m.AddValidationErrors(0)
	m.IncArchived("file")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Generated.WithLabelValues(metrics.OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generated.WithLabelValues(metrics.OutcomeRejected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ValidationErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Archived.WithLabelValues("file")))
}

func TestMetrics_InstanciasIndependientes(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(nil)
		metrics.New(nil)
	})
}

func TestMetrics_NilSeguro(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveGenerate(metrics.OutcomeError, time.Second)
		m.AddValidationErrors(1)
		m.IncArchived("s3")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(nil)
	m.IncArchived("file")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `xrechnung_documents_archived_total{target="file"} 1`)
}
