package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventTypeSpinCompleted identifies completion events on the bus
const EventTypeSpinCompleted = "SPIN_COMPLETED"

// SpinResult is returned to the caller once a spin has committed
type SpinResult struct {
	PlayerID   string
	Bet        int64
	Win        int64
	NewBalance int64
	Sequence   uint64 // Outbox sequence of the completion event
}

// Won reports whether the spin paid out
func (r *SpinResult) Won() bool {
	return r.Win > 0
}

// Delta returns the net balance change of the spin
func (r *SpinResult) Delta() int64 {
	return r.Win - r.Bet
}

// SpinCompletedEvent is the immutable record of one committed spin
type SpinCompletedEvent struct {
	EventType  string    `json:"eventType"`
	PlayerID   string    `json:"playerId"`
	Bet        int64     `json:"bet"`
	Win        int64     `json:"win"`
	NewBalance int64     `json:"newBalance"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewSpinCompletedEvent builds the event for a settled spin, normalizing the timestamp to UTC
func NewSpinCompletedEvent(playerID string, bet, win, newBalance int64, at time.Time) SpinCompletedEvent {
	return SpinCompletedEvent{
		EventType:  EventTypeSpinCompleted,
		PlayerID:   playerID,
		Bet:        bet,
		Win:        win,
		NewBalance: newBalance,
		Timestamp:  at.UTC(),
	}
}

// Marshal serializes the event for the outbox payload
func (e SpinCompletedEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeSpinCompletedEvent parses an outbox payload
func DecodeSpinCompletedEvent(payload []byte) (SpinCompletedEvent, error) {
	var event SpinCompletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return SpinCompletedEvent{}, fmt.Errorf("decode spin event: %w", err)
	}
	if event.EventType != EventTypeSpinCompleted {
		return SpinCompletedEvent{}, fmt.Errorf("decode spin event: unexpected type %q", event.EventType)
	}
	return event, nil
}
