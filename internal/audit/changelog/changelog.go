package changelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"intake/internal/audit/metrics"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
	"intake/pkg/requestcontext"
)

// Store persists entries. Append must join the transaction carried by ctx.
type Store interface {
	Append(ctx context.Context, entries []Entry) error
	ListByParent(ctx context.Context, parent Parent) ([]Entry, error)
	LatestForField(ctx context.Context, parent Parent, field string) (*Entry, error)
}

// EmailLookup resolves principal IDs to emails for listing.
type EmailLookup interface {
	EmailsByID(ctx context.Context, ids []id.UserID) (map[id.UserID]string, error)
}

// Auditor diffs entity snapshots and records the changed fields.
type Auditor struct {
	store   Store
	emails  EmailLookup
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

func New(store Store, emails EmailLookup, opts ...Option) *Auditor {
	a := &Auditor{store: store, emails: emails, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Diff returns the entries proposed would produce against old. It never
// fails the caller: an internal failure is logged and yields no entries.
func (a *Auditor) Diff(ctx context.Context, parent Parent, old Snapshot, proposed []FieldValue, actor id.UserID, opts ...DiffOption) (entries []Entry) {
	defer func() {
		if r := recover(); r != nil {
			a.metrics.IncDiffFailure()
			a.logger.ErrorContext(ctx, "changelog diff panicked",
				"parent_kind", string(parent.Kind),
				"parent_id", parent.ID.String(),
				"panic", fmt.Sprint(r),
			)
			entries = nil
		}
	}()

	entries, err := diff(parent, old, proposed, actor, requestcontext.Now(ctx), opts...)
	if err != nil {
		a.metrics.IncDiffFailure()
		a.logger.ErrorContext(ctx, "changelog diff failed",
			"parent_kind", string(parent.Kind),
			"parent_id", parent.ID.String(),
			"error", err,
		)
		return nil
	}
	return entries
}

// Record diffs and persists in the caller's transaction. It returns the
// number of entries written; a persistence error is returned so the
// surrounding transaction rolls back.
func (a *Auditor) Record(ctx context.Context, parent Parent, old Snapshot, proposed []FieldValue, actor id.UserID, opts ...DiffOption) (int, error) {
	entries := a.Diff(ctx, parent, old, proposed, actor, opts...)
	if len(entries) == 0 {
		return 0, nil
	}

	start := time.Now()
	if err := a.store.Append(ctx, entries); err != nil {
		a.logger.ErrorContext(ctx, "failed to persist changelog",
			"parent_kind", string(parent.Kind),
			"parent_id", parent.ID.String(),
			"entries", len(entries),
			"error", err,
		)
		return 0, fmt.Errorf("append changelog: %w", err)
	}
	a.metrics.ObserveChangelogWrite(float64(time.Since(start).Milliseconds()))
	a.metrics.AddChanges(string(parent.Kind), len(entries))
	return len(entries), nil
}

// List returns the entries for parent newest first, with author emails.
func (a *Auditor) List(ctx context.Context, parent Parent) ([]EntryView, error) {
	entries, err := a.store.ListByParent(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("list changelog: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt.After(entries[j].ChangedAt)
	})

	ids := make([]id.UserID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ChangedBy)
	}
	emails, err := a.emails.EmailsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve changelog authors: %w", err)
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{Entry: e, ChangedByEmail: emails[e.ChangedBy]})
	}
	return views, nil
}

// PreviousValue returns the old value of the most recent change to field,
// or nil when the field has never changed.
func (a *Auditor) PreviousValue(ctx context.Context, parent Parent, field string) (*string, error) {
	entry, err := a.store.LatestForField(ctx, parent, field)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest changelog entry: %w", err)
	}
	return entry.OldValue, nil
}
