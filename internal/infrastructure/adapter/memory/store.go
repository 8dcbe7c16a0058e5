package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
)

// Store keeps players and outbox entries in process memory.
// It is not durable and exists for tests and local runs.
type Store struct {
	mu       sync.Mutex
	players  map[string]*entity.Player
	outbox   map[uint64]*entity.OutboxEntry
	sequence uint64

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		players: make(map[string]*entity.Player),
		outbox:  make(map[uint64]*entity.OutboxEntry),
		locks:   make(map[string]chan struct{}),
	}
}

// lockPlayer blocks until the row lock for id is free or ctx is done
func (s *Store) lockPlayer(ctx context.Context, id string) error {
	s.locksMu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = make(chan struct{}, 1)
		s.locks[id] = lock
	}
	s.locksMu.Unlock()

	select {
	case lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockPlayer(id string) {
	s.locksMu.Lock()
	lock := s.locks[id]
	s.locksMu.Unlock()

	<-lock
}

func (s *Store) getPlayer(id string) (*entity.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return nil, false
	}
	return clonePlayer(player), true
}

func (s *Store) nextSequence() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	return s.sequence
}

// TotalBalance sums every player balance
func (s *Store) TotalBalance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, player := range s.players {
		total += player.Balance()
	}
	return total
}

// OutboxEntries returns a copy of every committed entry in sequence order
func (s *Store) OutboxEntries() []*entity.OutboxEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedEntries(func(*entity.OutboxEntry) bool { return true }, 0)
}

// sortedEntries must be called with mu held
func (s *Store) sortedEntries(keep func(*entity.OutboxEntry) bool, limit int) []*entity.OutboxEntry {
	entries := make([]*entity.OutboxEntry, 0, len(s.outbox))
	for _, entry := range s.outbox {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence < entries[j].Sequence })

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entries[i] = cloneEntry(entry)
	}
	return entries
}

func clonePlayer(p *entity.Player) *entity.Player {
	return entity.RestorePlayer(p.ID, p.Balance(), p.Version, p.SpinCount, p.CreatedAt, p.UpdatedAt)
}

func cloneEntry(e *entity.OutboxEntry) *entity.OutboxEntry {
	clone := *e
	clone.Payload = append([]byte(nil), e.Payload...)
	if e.DeliveredAt != nil {
		at := *e.DeliveredAt
		clone.DeliveredAt = &at
	}
	return &clone
}

func deliveredBefore(before time.Time) func(*entity.OutboxEntry) bool {
	return func(e *entity.OutboxEntry) bool {
		return e.Delivered && e.DeliveredAt != nil && e.DeliveredAt.Before(before)
	}
}
