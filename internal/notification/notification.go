// Package notification dispatches templated emails (password reset,
// registration) to an external delivery system.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"intake/internal/platform/kafka"
)

// Templates understood by the delivery system.
const (
	TemplateForgotPassword = "forgot-password"
	TemplateRegister       = "register"
)

// Message is a single templated email.
type Message struct {
	Template string `json:"template"`
	To       string `json:"to"`
	Link     string `json:"link"`
}

// Notifier sends a message or reports why it could not.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log instead of delivering them. It is
// used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.InfoContext(ctx, "notification not delivered: no transport configured",
		"template", msg.Template,
		"to", msg.To,
	)
	return nil
}

// KafkaNotifier publishes messages for the mail worker, keyed by recipient so
// messages for one address stay ordered.
type KafkaNotifier struct {
	producer kafka.Producer
	topic    string
}

func NewKafkaNotifier(producer kafka.Producer, topic string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic}
}

func (n *KafkaNotifier) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.producer.Publish(ctx, n.topic, []byte(msg.To), payload); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
