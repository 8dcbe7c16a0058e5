package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

const namespace = "spin_engine"

// PrometheusMetrics implements core.Metrics on a dedicated registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	spinTotal        *prometheus.CounterVec
	spinDuration     *prometheus.HistogramVec
	eventsDelivered  prometheus.Counter
	deliveryFailures prometheus.Counter
	outboxBacklog    prometheus.Gauge
	eventsConsumed   *prometheus.CounterVec
}

// NewPrometheusMetrics registers the collectors on a new registry
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		spinTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "spins_total",
				Help:      "Total spins by result (won, lost, rejected, failed)",
			},
			[]string{"result"},
		),
		spinDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "spin_duration_ms",
				Help:      "Spin duration in milliseconds, queue wait included",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"result"},
		),
		eventsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_delivered_total",
			Help:      "Outbox entries accepted by the event bus",
		}),
		deliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_delivery_failures_total",
			Help:      "Failed publish attempts",
		}),
		outboxBacklog: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outbox_backlog",
			Help:      "Undelivered outbox entries",
		}),
		eventsConsumed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_consumed_total",
				Help:      "Spin events seen by the consumer",
			},
			[]string{"duplicate"},
		),
	}
}

// ObserveSpin records a finished spin
func (m *PrometheusMetrics) ObserveSpin(result string, elapsed core.Duration) {
	m.spinTotal.WithLabelValues(result).Inc()
	m.spinDuration.WithLabelValues(result).Observe(float64(elapsed.Std().Milliseconds()))
}

// IncEventsDelivered counts delivered entries
func (m *PrometheusMetrics) IncEventsDelivered(count int) {
	m.eventsDelivered.Add(float64(count))
}

// IncDeliveryFailures counts a failed publish
func (m *PrometheusMetrics) IncDeliveryFailures() {
	m.deliveryFailures.Inc()
}

// SetOutboxBacklog reports the undelivered count
func (m *PrometheusMetrics) SetOutboxBacklog(count int64) {
	m.outboxBacklog.Set(float64(count))
}

// IncEventsConsumed counts a consumed event
func (m *PrometheusMetrics) IncEventsConsumed(duplicate bool) {
	label := "false"
	if duplicate {
		label = "true"
	}
	m.eventsConsumed.WithLabelValues(label).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterDBStats exposes connection pool statistics of db under the given name
func (m *PrometheusMetrics) RegisterDBStats(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Registry returns the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
