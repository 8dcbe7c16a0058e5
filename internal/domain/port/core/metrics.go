package core

// SpinResultLabel values used when recording spins
const (
	SpinResultWon      = "won"
	SpinResultLost     = "lost"
	SpinResultRejected = "rejected"
	SpinResultFailed   = "failed"
)

// Metrics records operational counters for spins and event delivery
type Metrics interface {
	// ObserveSpin records a finished spin with its result label and latency
	ObserveSpin(result string, elapsed Duration)
	// IncEventsDelivered counts outbox entries accepted by the bus
	IncEventsDelivered(count int)
	// IncDeliveryFailures counts failed publish attempts
	IncDeliveryFailures()
	// SetOutboxBacklog reports the number of undelivered outbox entries
	SetOutboxBacklog(count int64)
	// IncEventsConsumed counts events handled by the consumer, duplicates included
	IncEventsConsumed(duplicate bool)
}
