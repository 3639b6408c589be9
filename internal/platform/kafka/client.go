// Package kafka wraps the franz-go client used for the audit stream and
// outbound notification requests.
package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"intake/internal/platform/config"
)

// Producer publishes a single record and waits for the broker acknowledgement.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Client is a synchronous producer with topic administration.
type Client struct {
	kgo   *kgo.Client
	admin *kadm.Client
}

// New creates a Kafka client from the provided configuration.
// Returns nil if no brokers are configured.
func New(cfg config.KafkaConfig) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	if cfg.ProduceTimeout > 0 {
		opts = append(opts, kgo.ProduceRequestTimeout(cfg.ProduceTimeout))
	}

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &Client{kgo: cl, admin: kadm.NewClient(cl)}, nil
}

// EnsureTopics creates topics that do not exist yet.
func (c *Client) EnsureTopics(ctx context.Context, partitions int32, replication int16, topics ...string) error {
	resp, err := c.admin.CreateTopics(ctx, partitions, replication, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, t := range resp.Sorted() {
		if t.Err != nil && !errors.Is(t.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", t.Topic, t.Err)
		}
	}
	return nil
}

// Publish implements Producer.
func (c *Client) Publish(ctx context.Context, topic string, key, value []byte) error {
	return c.kgo.ProduceSync(ctx, &kgo.Record{Topic: topic, Key: key, Value: value}).FirstErr()
}

// Health pings the seed brokers.
func (c *Client) Health(ctx context.Context) error {
	return c.kgo.Ping(ctx)
}

// Close flushes nothing (all produces are synchronous) and releases connections.
func (c *Client) Close() {
	c.kgo.Close()
}
