package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/messaging"
)

// Stream field names
const (
	fieldSequence = "sequence"
	fieldTopic    = "topic"
	fieldKey      = "key"
	fieldPayload  = "payload"
)

// StreamClient is the subset of the Redis client used by the stream bus
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XRead(ctx context.Context, a *redis.XReadArgs) *redis.XStreamSliceCmd
	Close() error
}

// RedisOptions configures the Redis stream transport
type RedisOptions struct {
	Addr         string
	Password     string
	DB           int
	MaxLen       int64 // approximate stream cap, 0 for unbounded
	ReadBlock    time.Duration
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisClient opens a client for the given options
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		WriteTimeout: opts.WriteTimeout,
	})
}

// RedisStreamBus publishes each outbox entry as one stream message; the
// stream is named after the entry's topic
type RedisStreamBus struct {
	client StreamClient
	maxLen int64
	logger coreport.Logger
}

// NewRedisStreamBus creates a publisher over client
func NewRedisStreamBus(client StreamClient, maxLen int64, logger coreport.Logger) *RedisStreamBus {
	return &RedisStreamBus{
		client: client,
		maxLen: maxLen,
		logger: logger,
	}
}

// Publish implements messaging.EventBus
func (b *RedisStreamBus) Publish(ctx context.Context, entry *entity.OutboxEntry) error {
	args := &redis.XAddArgs{
		Stream: entry.Topic,
		Values: map[string]any{
			fieldSequence: strconv.FormatUint(entry.Sequence, 10),
			fieldTopic:    entry.Topic,
			fieldKey:      entry.Key,
			fieldPayload:  string(entry.Payload),
		},
	}
	if b.maxLen > 0 {
		args.MaxLen = b.maxLen
		args.Approx = true
	}

	id, err := b.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("redis XADD %s: %w", entry.Topic, err)
	}

	b.logger.Debug("Event appended to stream", map[string]any{
		"stream":    entry.Topic,
		"sequence":  entry.Sequence,
		"stream_id": id,
	})
	return nil
}

// Close implements messaging.EventBus
func (b *RedisStreamBus) Close() error {
	return b.client.Close()
}

// RedisStreamSubscriber reads a stream from the tail and feeds a handler
type RedisStreamSubscriber struct {
	client StreamClient
	stream string
	block  time.Duration
	logger coreport.Logger

	lastID string
}

// NewRedisStreamSubscriber creates a subscriber for stream starting after startID.
// Use "$" to receive only new messages and "0" to replay the whole stream.
func NewRedisStreamSubscriber(client StreamClient, stream, startID string, block time.Duration, logger coreport.Logger) *RedisStreamSubscriber {
	if startID == "" {
		startID = "$"
	}
	if block <= 0 {
		block = 2 * time.Second
	}
	return &RedisStreamSubscriber{
		client: client,
		stream: stream,
		block:  block,
		logger: logger,
		lastID: startID,
	}
}

// Subscribe implements messaging.Subscriber
func (s *RedisStreamSubscriber) Subscribe(ctx context.Context, handler messaging.EventHandler) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := s.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{s.stream, s.lastID},
			Block:   s.block,
			Count:   100,
		}).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("Stream read failed", map[string]any{
				"stream": s.stream,
				"error":  err.Error(),
			})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(s.block):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				s.lastID = message.ID
				s.dispatch(ctx, handler, message)
			}
		}
	}
}

func (s *RedisStreamSubscriber) dispatch(ctx context.Context, handler messaging.EventHandler, message redis.XMessage) {
	delivery, err := decodeMessage(message)
	if err != nil {
		s.logger.Error("Skipping malformed stream message", map[string]any{
			"stream":    s.stream,
			"stream_id": message.ID,
			"error":     err.Error(),
		})
		return
	}

	if err := handler.Handle(ctx, delivery); err != nil {
		s.logger.Warn("Event handler failed", map[string]any{
			"sequence":  delivery.Sequence,
			"stream_id": message.ID,
			"error":     err.Error(),
		})
	}
}

func decodeMessage(message redis.XMessage) (messaging.Delivery, error) {
	field := func(name string) (string, error) {
		value, ok := message.Values[name].(string)
		if !ok {
			return "", fmt.Errorf("field %q missing", name)
		}
		return value, nil
	}

	rawSequence, err := field(fieldSequence)
	if err != nil {
		return messaging.Delivery{}, err
	}
	sequence, err := strconv.ParseUint(rawSequence, 10, 64)
	if err != nil {
		return messaging.Delivery{}, fmt.Errorf("invalid sequence %q: %w", rawSequence, err)
	}
	payload, err := field(fieldPayload)
	if err != nil {
		return messaging.Delivery{}, err
	}
	topic, _ := field(fieldTopic)
	key, _ := field(fieldKey)

	return messaging.Delivery{
		Sequence: sequence,
		Topic:    topic,
		Key:      key,
		Payload:  []byte(payload),
	}, nil
}
