package action

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"intake/internal/audit/metrics"
	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

// Store persists entries. Append runs outside any entity transaction.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// Stream mirrors persisted entries to downstream consumers.
type Stream interface {
	Publish(ctx context.Context, entry Entry) error
}

// Auditor records action audit entries without ever failing the caller.
type Auditor struct {
	store   Store
	stream  Stream
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Auditor)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Auditor) {
		a.metrics = m
	}
}

// WithStream mirrors each persisted entry. A nil stream disables mirroring.
func WithStream(s Stream) Option {
	return func(a *Auditor) {
		a.stream = s
	}
}

func New(store Store, opts ...Option) *Auditor {
	a := &Auditor{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Record persists ev and reports whether it was stored. Failures are logged
// and counted, never returned, and never retried.
func (a *Auditor) Record(ctx context.Context, ev Event) (stored bool) {
	defer func() {
		if r := recover(); r != nil {
			a.metrics.IncActionFailure(string(ev.Action))
			a.logger.ErrorContext(ctx, "action audit panicked",
				"action", string(ev.Action),
				"panic", fmt.Sprint(r),
			)
			stored = false
		}
	}()

	entry, err := a.entryFor(ctx, ev)
	if err != nil {
		a.metrics.IncActionFailure(string(ev.Action))
		a.logger.ErrorContext(ctx, "invalid action audit event", "error", err)
		return false
	}

	if err := a.store.Append(ctx, entry); err != nil {
		a.metrics.IncActionFailure(string(entry.Action))
		a.logger.ErrorContext(ctx, "failed to persist action audit",
			"action", string(entry.Action),
			"resource_type", string(entry.ResourceType),
			"resource_id", entry.ResourceID.String(),
			"user_id", entry.ActorID.String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return false
	}
	a.metrics.IncActionRecorded(string(entry.Action))

	if a.stream != nil {
		if err := a.stream.Publish(ctx, entry); err != nil {
			a.metrics.IncStreamFailure()
			a.logger.WarnContext(ctx, "failed to mirror action audit",
				"audit_id", entry.ID.String(),
				"error", err,
			)
		}
	}
	return true
}

func (a *Auditor) entryFor(ctx context.Context, ev Event) (Entry, error) {
	if !ev.Action.IsValid() {
		return Entry{}, fmt.Errorf("unknown action %q", ev.Action)
	}
	if ev.ResourceType == "" {
		return Entry{}, fmt.Errorf("action %s: resource type is required", ev.Action)
	}

	entry := Entry{
		ID:             id.NewAuditID(),
		Action:         ev.Action,
		Status:         ev.Status,
		ActorID:        ev.ActorID,
		ActorRole:      ev.ActorRole,
		ResourceType:   ev.ResourceType,
		ResourceID:     ev.ResourceID,
		FieldsModified: normalizeFields(ev.FieldsModified),
		IP:             ev.IP,
		Timestamp:      requestcontext.Now(ctx),
	}
	if entry.Status == "" {
		entry.Status = StatusSuccess
	}
	if entry.ActorID.IsNil() {
		entry.ActorID = requestcontext.UserID(ctx)
	}
	if entry.ActorRole == "" {
		entry.ActorRole = requestcontext.Role(ctx)
	}
	if entry.IP == "" {
		entry.IP = requestcontext.ClientIP(ctx)
	}

	details := make(map[string]any, len(ev.Details)+1)
	maps.Copy(details, ev.Details)
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		if _, ok := details["client"]; !ok {
			details["client"] = describeClient(ua)
		}
	}
	if len(details) > 0 {
		entry.Details = details
	}
	return entry, nil
}
