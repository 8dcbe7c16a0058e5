package entity

import "time"

// OutboxEntry is a staged event awaiting delivery to the bus.
// Payload is written once and never mutated.
type OutboxEntry struct {
	Sequence    uint64 // Assigned by the store, strictly increasing
	Topic       string
	Key         string // Partition key, the player ID
	Payload     []byte
	Delivered   bool
	DeliveredAt *time.Time
	Attempts    int
	LastError   string
	CreatedAt   time.Time
}

// NewOutboxEntry stages a payload for the given topic and key
func NewOutboxEntry(topic, key string, payload []byte, createdAt time.Time) *OutboxEntry {
	return &OutboxEntry{
		Topic:     topic,
		Key:       key,
		Payload:   payload,
		CreatedAt: createdAt,
	}
}

// MarkDelivered flags the entry as accepted by the bus
func (e *OutboxEntry) MarkDelivered(at time.Time) {
	e.Delivered = true
	e.DeliveredAt = &at
}

// RecordFailure counts a failed publish attempt
func (e *OutboxEntry) RecordFailure(reason string) {
	e.Attempts++
	e.LastError = reason
}
