package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

func TestPrometheusMetrics_Spins(t *testing.T) {
	m := NewPrometheusMetrics()

	m.ObserveSpin(core.SpinResultWon, 3*core.Millisecond)
	m.ObserveSpin(core.SpinResultLost, core.Millisecond)
	m.ObserveSpin(core.SpinResultLost, core.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.spinTotal.WithLabelValues(core.SpinResultWon)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.spinTotal.WithLabelValues(core.SpinResultLost)))
}

func TestPrometheusMetrics_Delivery(t *testing.T) {
	m := NewPrometheusMetrics()

	m.IncEventsDelivered(3)
	m.IncDeliveryFailures()
	m.SetOutboxBacklog(7)
	m.IncEventsConsumed(true)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.eventsDelivered))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.deliveryFailures))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.outboxBacklog))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.eventsConsumed.WithLabelValues("true")))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	m := NewPrometheusMetrics()
	m.ObserveSpin(core.SpinResultWon, core.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `spin_engine_spins_total{result="won"} 1`)
}
