package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

var opDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "intake_session_store_duration_ms",
	Help:    "Latency of session store operations in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
}, []string{"op"})

// RedisStore is the production session store. Records expire through Redis TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func observe(op string, start time.Time) {
	opDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

// Put stores token for userID with SET ... EX, replacing any previous record.
func (s *RedisStore) Put(ctx context.Context, userID id.UserID, token string, ttl time.Duration) error {
	defer observe("put", time.Now())
	if err := s.client.Set(ctx, Key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Get returns the active refresh token for userID.
func (s *RedisStore) Get(ctx context.Context, userID id.UserID) (string, error) {
	defer observe("get", time.Now())
	token, err := s.client.Get(ctx, Key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return token, nil
}

// Delete removes the record for userID; deleting a missing record is not an error.
func (s *RedisStore) Delete(ctx context.Context, userID id.UserID) error {
	defer observe("delete", time.Now())
	if err := s.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
