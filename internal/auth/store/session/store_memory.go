package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

type record struct {
	token     string
	expiresAt time.Time
}

// InMemoryStore keeps session records in a map for tests and Redis-less dev runs.
// Expired records are dropped lazily on read.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[id.UserID]record
	now     func() time.Time
}

// InMemoryOption configures an InMemoryStore.
type InMemoryOption func(*InMemoryStore)

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) InMemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

// NewInMemory constructs an empty in-memory session store.
func NewInMemory(opts ...InMemoryOption) *InMemoryStore {
	s := &InMemoryStore{records: make(map[id.UserID]record), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Put(_ context.Context, userID id.UserID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = record{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, userID id.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return "", fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if !s.now().Before(rec.expiresAt) {
		delete(s.records, userID)
		return "", fmt.Errorf("session expired: %w", sentinel.ErrNotFound)
	}
	return rec.token, nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}
