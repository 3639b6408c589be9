package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"intake/internal/auth/models"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// Error Contract:
//   - Return sentinel.ErrNotFound when the requested user does not exist
//   - Return sentinel.ErrConflict when an email is already taken by another user
//
// InMemoryUserStore stores users in memory for tests/dev.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryUserStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for existingID, existing := range s.users {
		if existingID != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, sentinel.ErrConflict)
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) SetPassword(_ context.Context, userID id.UserID, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	updated := *u
	updated.PasswordHash = passwordHash
	updated.IsActive = true
	updated.UpdatedAt = now
	s.users[userID] = &updated
	return nil
}

// EmailsByID resolves display emails for changelog listings. Unknown IDs are omitted.
func (s *InMemoryUserStore) EmailsByID(_ context.Context, ids []id.UserID) (map[id.UserID]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.UserID]string, len(ids))
	for _, userID := range ids {
		if u, ok := s.users[userID]; ok {
			out[userID] = u.Email
		}
	}
	return out, nil
}
