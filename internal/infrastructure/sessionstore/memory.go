package sessionstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is the in-process session store used by tests. It mirrors
// the Redis store's contract: JSON round-trip on every write so callers
// never share a record instance with the store, TTL from last write,
// lazy expiry on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, orderID string) (*domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionKey(orderID)]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionKey(orderID))
		return nil, false, nil
	}

	var session domain.Session
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, false, err
	}
	return &session, true, nil
}

func (s *MemoryStore) Set(_ context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionKey(session.OrderID)] = memoryEntry{
		payload:   payload,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) SetIfAbsent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if ok && s.now().Before(entry.expiresAt) {
		return false, nil
	}
	s.entries[key] = memoryEntry{expiresAt: s.now().Add(ttl)}
	return true, nil
}

// SetClock overrides the store's clock for expiry tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
