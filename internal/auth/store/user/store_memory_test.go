package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/auth/models"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// User store invariants (lookup, conflict, ErrNotFound) protect the auth
// service behavior built on top of them.
type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
	ctx   context.Context
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) newUser(email string) *models.User {
	return &models.User{
		ID:        id.NewUserID(),
		Email:     email,
		Role:      "clinician",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	s.Run("returns user by ID when exists", func() {
		user := s.newUser("jane.doe@example.com")
		s.Require().NoError(s.store.Save(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, found)
	})

	s.Run("returns user by email case-insensitively", func() {
		user := s.newUser("email.lookup@example.com")
		s.Require().NoError(s.store.Save(s.ctx, user))

		found, err := s.store.FindByEmail(s.ctx, "Email.Lookup@Example.com")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returns ErrNotFound when user ID does not exist", func() {
		_, err := s.store.FindByID(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when email does not exist", func() {
		_, err := s.store.FindByEmail(s.ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestDuplicateEmailConflicts() {
	s.Require().NoError(s.store.Save(s.ctx, s.newUser("dup@example.com")))
	err := s.store.Save(s.ctx, s.newUser("DUP@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemoryUserStoreSuite) TestSetPasswordActivates() {
	user := s.newUser("inactive@example.com")
	s.Require().NoError(s.store.Save(s.ctx, user))
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.SetPassword(s.ctx, user.ID, "new-hash", now))

	found, err := s.store.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", found.PasswordHash)
	s.True(found.IsActive)
	s.Equal(now, found.UpdatedAt)
	s.False(user.IsActive, "stored pointer from Save must not be mutated")

	err = s.store.SetPassword(s.ctx, id.NewUserID(), "hash", now)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestEmailsByID() {
	a := s.newUser("a@example.com")
	b := s.newUser("b@example.com")
	s.Require().NoError(s.store.Save(s.ctx, a))
	s.Require().NoError(s.store.Save(s.ctx, b))

	emails, err := s.store.EmailsByID(s.ctx, []id.UserID{a.ID, b.ID, id.NewUserID()})
	s.Require().NoError(err)
	s.Equal(map[id.UserID]string{a.ID: "a@example.com", b.ID: "b@example.com"}, emails)
}
