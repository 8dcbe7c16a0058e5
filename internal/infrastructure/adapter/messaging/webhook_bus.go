package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// Headers set on every webhook request
const (
	HeaderSequence       = "X-Event-Sequence"
	HeaderTopic          = "X-Event-Topic"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// WebhookOptions configures the HTTP transport
type WebhookOptions struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
	Headers    map[string]string
}

// webhookEnvelope is the request body posted for each event
type webhookEnvelope struct {
	Sequence uint64          `json:"sequence"`
	Topic    string          `json:"topic"`
	Key      string          `json:"key"`
	Event    json.RawMessage `json:"event"`
}

// WebhookBus posts each outbox entry to an HTTP endpoint. Any 2xx response
// counts as accepted.
type WebhookBus struct {
	client *resty.Client
	url    string
	logger coreport.Logger
}

// NewWebhookBus creates a webhook publisher
func NewWebhookBus(opts WebhookOptions, logger coreport.Logger) *WebhookBus {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetHeader("Content-Type", "application/json").
		SetHeaders(opts.Headers)

	return &WebhookBus{
		client: client,
		url:    opts.URL,
		logger: logger,
	}
}

// Publish implements messaging.EventBus
func (b *WebhookBus) Publish(ctx context.Context, entry *entity.OutboxEntry) error {
	sequence := strconv.FormatUint(entry.Sequence, 10)

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader(HeaderSequence, sequence).
		SetHeader(HeaderTopic, entry.Topic).
		SetHeader(HeaderIdempotencyKey, entry.Topic+":"+sequence).
		SetBody(webhookEnvelope{
			Sequence: entry.Sequence,
			Topic:    entry.Topic,
			Key:      entry.Key,
			Event:    json.RawMessage(entry.Payload),
		}).
		Post(b.url)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook rejected event %d: status %d", entry.Sequence, resp.StatusCode())
	}

	b.logger.Debug("Event posted to webhook", map[string]any{
		"sequence": entry.Sequence,
		"status":   resp.StatusCode(),
		"elapsed":  resp.Time().String(),
	})
	return nil
}

// Close implements messaging.EventBus
func (b *WebhookBus) Close() error {
	return nil
}
