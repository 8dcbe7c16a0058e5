package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpinCompletedEvent(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2024, 5, 1, 14, 30, 0, 123456789, local)

	event := NewSpinCompletedEvent("player-1", 50, 100, 150, at)

	assert.Equal(t, EventTypeSpinCompleted, event.EventType)
	assert.Equal(t, time.UTC, event.Timestamp.Location())
	assert.True(t, at.Equal(event.Timestamp))
}

func TestSpinCompletedEventWireFormat(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 500, time.UTC)
	event := NewSpinCompletedEvent("player-1", 50, 0, 50, at)

	payload, err := event.Marshal()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))
	assert.Equal(t, "SPIN_COMPLETED", fields["eventType"])
	assert.Equal(t, "player-1", fields["playerId"])
	assert.Equal(t, float64(50), fields["bet"])
	assert.Equal(t, float64(0), fields["win"])
	assert.Equal(t, float64(50), fields["newBalance"])
	assert.Equal(t, "2024-05-01T12:30:00.0000005Z", fields["timestamp"])

	decoded, err := DecodeSpinCompletedEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestDecodeSpinCompletedEventErrors(t *testing.T) {
	t.Run("Malformed payload", func(t *testing.T) {
		_, err := DecodeSpinCompletedEvent([]byte("{"))
		assert.Error(t, err)
	})

	t.Run("Wrong event type", func(t *testing.T) {
		_, err := DecodeSpinCompletedEvent([]byte(`{"eventType":"OTHER"}`))
		assert.ErrorContains(t, err, "unexpected type")
	})
}

func TestSpinResult(t *testing.T) {
	win := &SpinResult{Bet: 50, Win: 100, NewBalance: 150}
	loss := &SpinResult{Bet: 50, Win: 0, NewBalance: 50}

	assert.True(t, win.Won())
	assert.Equal(t, int64(50), win.Delta())
	assert.False(t, loss.Won())
	assert.Equal(t, int64(-50), loss.Delta())
}

func TestOutboxEntry(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := NewOutboxEntry("spin-events", "player-1", []byte(`{}`), created)

	assert.False(t, entry.Delivered)
	assert.Nil(t, entry.DeliveredAt)

	entry.RecordFailure("broker down")
	entry.RecordFailure("broker still down")
	assert.Equal(t, 2, entry.Attempts)
	assert.Equal(t, "broker still down", entry.LastError)

	deliveredAt := created.Add(time.Minute)
	entry.MarkDelivered(deliveredAt)
	assert.True(t, entry.Delivered)
	require.NotNil(t, entry.DeliveredAt)
	assert.Equal(t, deliveredAt, *entry.DeliveredAt)
}
