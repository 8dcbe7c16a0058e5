package metrics

import "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"

// NoopMetrics discards all measurements
type NoopMetrics struct{}

// NewNoopMetrics creates a metrics sink that records nothing
func NewNoopMetrics() core.Metrics {
	return NoopMetrics{}
}

func (NoopMetrics) ObserveSpin(string, core.Duration) {}

func (NoopMetrics) IncEventsDelivered(int) {}

func (NoopMetrics) IncDeliveryFailures() {}

func (NoopMetrics) SetOutboxBacklog(int64) {}

func (NoopMetrics) IncEventsConsumed(bool) {}
