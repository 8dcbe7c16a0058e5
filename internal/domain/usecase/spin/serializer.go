package spin

import (
	"context"
	"sync"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// SerializerConfig tunes the per-player queues
type SerializerConfig struct {
	QueueSize    int               // Buffered requests per player
	QueueTimeout coreport.Duration // Max wait for a slot in a full queue
	IdleTimeout  coreport.Duration // A worker with no work for this long exits
}

// DefaultSerializerConfig returns sensible queue settings
func DefaultSerializerConfig() SerializerConfig {
	return SerializerConfig{
		QueueSize:    100,
		QueueTimeout: 5 * coreport.Second,
		IdleTimeout:  coreport.Minute,
	}
}

// WorkFunc is executed on the player's worker goroutine
type WorkFunc func(ctx context.Context) (*entity.SpinResult, error)

// PlayerSerializer runs work for one player strictly one at a time, in arrival order.
// Work for different players runs in parallel.
type PlayerSerializer struct {
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	config       SerializerConfig

	mu     sync.Mutex
	queues map[string]*playerQueue

	// closeMu is held for reading while a request is being enqueued
	closeMu sync.RWMutex
	closed  bool

	workers sync.WaitGroup
}

type playerQueue struct {
	playerID string
	requests chan *workRequest
	pending  int // guarded by PlayerSerializer.mu
}

type workRequest struct {
	ctx        context.Context
	work       WorkFunc
	resultChan chan workResult
}

type workResult struct {
	result *entity.SpinResult
	err    error
}

// NewPlayerSerializer creates a serializer with no active queues
func NewPlayerSerializer(logger coreport.Logger, timeProvider coreport.TimeProvider, config SerializerConfig) *PlayerSerializer {
	defaults := DefaultSerializerConfig()
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.QueueTimeout <= 0 {
		config.QueueTimeout = defaults.QueueTimeout
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = defaults.IdleTimeout
	}

	return &PlayerSerializer{
		logger:       logger,
		timeProvider: timeProvider,
		config:       config,
		queues:       make(map[string]*playerQueue),
	}
}

// Do queues work behind any earlier work for the same player and waits for its result
func (s *PlayerSerializer) Do(ctx context.Context, playerID string, work WorkFunc) (*entity.SpinResult, error) {
	req := &workRequest{
		ctx:        ctx,
		work:       work,
		resultChan: make(chan workResult, 1),
	}

	if err := s.enqueue(ctx, playerID, req); err != nil {
		return nil, err
	}

	// Once queued the worker always answers: it rejects work whose context died
	// before pickup, and work that reached commit must be reported as committed.
	res := <-req.resultChan
	if res.err != nil && ctx.Err() != nil {
		s.logger.Warn("Context canceled before spin completed", map[string]any{
			"player_id": playerID,
			"error":     res.err.Error(),
		})
	}
	return res.result, res.err
}

func (s *PlayerSerializer) enqueue(ctx context.Context, playerID string, req *workRequest) error {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()

	if s.closed {
		return errs.ErrSerializerClosed
	}

	queue := s.acquire(playerID)

	select {
	case queue.requests <- req:
		return nil
	case <-ctx.Done():
		s.release(queue)
		s.logger.Warn("Context canceled while enqueueing spin", map[string]any{
			"player_id": playerID,
			"error":     ctx.Err().Error(),
		})
		return ctx.Err()
	case <-s.timeProvider.After(s.config.QueueTimeout):
		s.release(queue)
		s.logger.Warn("Player queue is full", map[string]any{
			"player_id":  playerID,
			"queue_size": s.config.QueueSize,
		})
		return errs.ErrTransientStore
	}
}

// acquire returns the player's queue, starting a worker for it if needed,
// and reserves a pending slot so the worker cannot retire underneath the caller
func (s *PlayerSerializer) acquire(playerID string) *playerQueue {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, ok := s.queues[playerID]
	if !ok {
		queue = &playerQueue{
			playerID: playerID,
			requests: make(chan *workRequest, s.config.QueueSize),
		}
		s.queues[playerID] = queue

		s.logger.Debug("Starting spin queue worker for player", map[string]any{
			"player_id": playerID,
		})
		s.workers.Add(1)
		go s.run(queue)
	}
	queue.pending++
	return queue
}

func (s *PlayerSerializer) release(queue *playerQueue) {
	s.mu.Lock()
	queue.pending--
	s.mu.Unlock()
}

// retire removes an idle queue. It reports false if new work arrived meanwhile.
func (s *PlayerSerializer) retire(queue *playerQueue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if queue.pending > 0 {
		return false
	}
	if current, ok := s.queues[queue.playerID]; ok && current == queue {
		delete(s.queues, queue.playerID)
	}
	return true
}

func (s *PlayerSerializer) run(queue *playerQueue) {
	defer s.workers.Done()

	for {
		select {
		case req, ok := <-queue.requests:
			if !ok {
				s.logger.Debug("Spin queue worker stopped", map[string]any{
					"player_id": queue.playerID,
				})
				return
			}
			s.process(req)
			s.release(queue)
		case <-s.timeProvider.After(s.config.IdleTimeout):
			if s.retire(queue) {
				s.logger.Debug("Spin queue worker retired after idle period", map[string]any{
					"player_id": queue.playerID,
				})
				return
			}
		}
	}
}

func (s *PlayerSerializer) process(req *workRequest) {
	// The caller gave up before its turn came; nothing has been touched yet.
	if err := req.ctx.Err(); err != nil {
		req.resultChan <- workResult{err: err}
		return
	}

	result, err := req.work(req.ctx)
	req.resultChan <- workResult{result: result, err: err}
}

// ActiveQueues returns the number of players with a live worker
func (s *PlayerSerializer) ActiveQueues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues)
}

// Shutdown stops accepting work, lets queued work finish and waits for every worker
func (s *PlayerSerializer) Shutdown() {
	s.logger.Info("Shutting down player serializer", nil)

	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true

	s.mu.Lock()
	for playerID, queue := range s.queues {
		close(queue.requests)
		delete(s.queues, playerID)
	}
	s.mu.Unlock()
	s.closeMu.Unlock()

	s.workers.Wait()
	s.logger.Info("Player serializer shut down successfully", nil)
}
