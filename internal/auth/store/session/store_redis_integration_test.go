//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/auth/store/session"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
	"intake/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestPutGetDelete() {
	ctx := context.Background()
	userID := id.NewUserID()

	s.Require().NoError(s.store.Put(ctx, userID, "refresh-1", time.Hour))
	got, err := s.store.Get(ctx, userID)
	s.Require().NoError(err)
	s.Equal("refresh-1", got)

	s.Require().NoError(s.store.Delete(ctx, userID))
	_, err = s.store.Get(ctx, userID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestPutOverwritesAndSetsTTL() {
	ctx := context.Background()
	userID := id.NewUserID()

	s.Require().NoError(s.store.Put(ctx, userID, "t1", time.Hour))
	s.Require().NoError(s.store.Put(ctx, userID, "t2", 2*time.Hour))

	got, err := s.store.Get(ctx, userID)
	s.Require().NoError(err)
	s.Equal("t2", got)

	ttl, err := s.redis.Client.TTL(ctx, session.Key(userID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Hour)
}

func (s *RedisStoreSuite) TestRecordExpires() {
	ctx := context.Background()
	userID := id.NewUserID()

	s.Require().NoError(s.store.Put(ctx, userID, "short-lived", time.Second))
	s.Eventually(func() bool {
		_, err := s.store.Get(ctx, userID)
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}
