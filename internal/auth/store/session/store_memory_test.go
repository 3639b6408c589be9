package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	now   time.Time
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.store = NewInMemory(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestLastWriteWins() {
	userID := id.NewUserID()
	s.Require().NoError(s.store.Put(s.ctx, userID, "t1", time.Hour))
	s.Require().NoError(s.store.Put(s.ctx, userID, "t2", time.Hour))

	got, err := s.store.Get(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal("t2", got)
}

func (s *InMemoryStoreSuite) TestMissingAndExpired() {
	s.Run("missing record is ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("expired record is ErrNotFound", func() {
		userID := id.NewUserID()
		s.Require().NoError(s.store.Put(s.ctx, userID, "t1", time.Minute))

		s.now = s.now.Add(time.Minute)
		_, err := s.store.Get(s.ctx, userID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("put resets ttl", func() {
		userID := id.NewUserID()
		s.Require().NoError(s.store.Put(s.ctx, userID, "t1", time.Minute))
		s.now = s.now.Add(50 * time.Second)
		s.Require().NoError(s.store.Put(s.ctx, userID, "t2", time.Minute))
		s.now = s.now.Add(50 * time.Second)

		got, err := s.store.Get(s.ctx, userID)
		s.Require().NoError(err)
		s.Equal("t2", got)
	})
}

func (s *InMemoryStoreSuite) TestDeleteIsIdempotent() {
	userID := id.NewUserID()
	s.Require().NoError(s.store.Put(s.ctx, userID, "t1", time.Hour))
	s.Require().NoError(s.store.Delete(s.ctx, userID))
	s.Require().NoError(s.store.Delete(s.ctx, userID))

	_, err := s.store.Get(s.ctx, userID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestKeyFormat() {
	userID := id.NewUserID()
	s.Equal("refresh_token:"+userID.String(), Key(userID))
}
