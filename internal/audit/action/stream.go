package action

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"intake/internal/platform/kafka"
)

// StreamPublisher mirrors entries as JSON to a Kafka topic, keyed by
// resource so one record's history stays on one partition.
type StreamPublisher struct {
	producer kafka.Producer
	topic    string
}

func NewStreamPublisher(producer kafka.Producer, topic string) *StreamPublisher {
	return &StreamPublisher{producer: producer, topic: topic}
}

type streamPayload struct {
	ID             string         `json:"id"`
	Action         string         `json:"action"`
	Status         string         `json:"status"`
	ActorID        string         `json:"actor_id,omitempty"`
	ActorRole      string         `json:"actor_role,omitempty"`
	ResourceType   string         `json:"resource_type"`
	ResourceID     string         `json:"resource_id,omitempty"`
	FieldsModified []string       `json:"fields_modified,omitempty"`
	Details        map[string]any `json:"details,omitempty"`
	IP             string         `json:"ip,omitempty"`
	Timestamp      string         `json:"timestamp"`
}

func (p *StreamPublisher) Publish(ctx context.Context, entry Entry) error {
	payload := streamPayload{
		ID:             entry.ID.String(),
		Action:         string(entry.Action),
		Status:         string(entry.Status),
		ActorRole:      entry.ActorRole,
		ResourceType:   string(entry.ResourceType),
		FieldsModified: entry.FieldsModified,
		Details:        entry.Details,
		IP:             entry.IP,
		Timestamp:      entry.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if !entry.ActorID.IsNil() {
		payload.ActorID = entry.ActorID.String()
	}
	key := payload.ID
	if entry.ResourceID != uuid.Nil {
		payload.ResourceID = entry.ResourceID.String()
		key = payload.ResourceID
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	return p.producer.Publish(ctx, p.topic, []byte(key), value)
}
