package changelog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

type panickyStringer struct{}

func (panickyStringer) String() string { panic("boom") }

type failingStore struct{ InMemoryStore }

func (f *failingStore) Append(context.Context, []Entry) error { return errors.New("write failed") }

type staticEmails map[id.UserID]string

func (s staticEmails) EmailsByID(_ context.Context, ids []id.UserID) (map[id.UserID]string, error) {
	out := map[id.UserID]string{}
	for _, uid := range ids {
		if e, ok := s[uid]; ok {
			out[uid] = e
		}
	}
	return out, nil
}

type ChangelogSuite struct {
	suite.Suite
	store   *InMemoryStore
	auditor *Auditor
	actor   id.UserID
	parent  Parent
	ctx     context.Context
}

func TestChangelogSuite(t *testing.T) {
	suite.Run(t, new(ChangelogSuite))
}

func (s *ChangelogSuite) SetupTest() {
	s.store = NewInMemory()
	s.actor = id.NewUserID()
	s.auditor = New(s.store, staticEmails{s.actor: "nurse@example.com"},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.parent = CaseParent(id.NewCaseID())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC))
}

func strPtr(v string) *string { return &v }

func (s *ChangelogSuite) TestDiff() {
	s.Run("emits one entry per changed field in proposal order", func() {
		old := Snapshot{"status": "unreviewed", "clinicianNotes": nil, "AIUrgency": "routine"}
		entries := s.auditor.Diff(s.ctx, s.parent, old, []FieldValue{
			{Name: "clinicianNotes", Value: "call back"},
			{Name: "AIUrgency", Value: "routine"},
			{Name: "status", Value: "reviewed"},
		}, s.actor)

		s.Require().Len(entries, 2)
		s.Equal("clinicianNotes", entries[0].FieldName)
		s.Nil(entries[0].OldValue)
		s.Equal(strPtr("call back"), entries[0].NewValue)
		s.Equal("status", entries[1].FieldName)
		s.Equal(strPtr("unreviewed"), entries[1].OldValue)
		s.Equal(s.actor, entries[1].ChangedBy)
		s.Equal(requestcontext.Now(s.ctx), entries[1].ChangedAt)
	})

	s.Run("identical proposal produces nothing", func() {
		old := Snapshot{"status": "unreviewed"}
		s.Empty(s.auditor.Diff(s.ctx, s.parent, old, []FieldValue{{Name: "status", Value: "unreviewed"}}, s.actor))
	})

	s.Run("values that render alike but differ in type are a change", func() {
		entries := s.auditor.Diff(s.ctx, s.parent, Snapshot{"x": 1}, []FieldValue{{Name: "x", Value: "1"}}, s.actor)
		s.Require().Len(entries, 1)
		s.Equal(strPtr("1"), entries[0].OldValue)
		s.Equal(strPtr("1"), entries[0].NewValue)
	})

	s.Run("pointer and value of the same type compare by content", func() {
		notes := "call back"
		s.Empty(s.auditor.Diff(s.ctx, s.parent, Snapshot{"clinicianNotes": "call back"}, []FieldValue{{Name: "clinicianNotes", Value: &notes}}, s.actor))
	})

	s.Run("the same instant in another zone is not a change", func() {
		at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
		s.Empty(s.auditor.Diff(s.ctx, s.parent, Snapshot{"scheduledDate": &at}, []FieldValue{{Name: "scheduledDate", Value: at.In(time.FixedZone("X", 3600))}}, s.actor))
	})

	s.Run("both absent is not a change", func() {
		var notes *string
		s.Empty(s.auditor.Diff(s.ctx, s.parent, Snapshot{}, []FieldValue{{Name: "clinicianNotes", Value: notes}}, s.actor))
	})

	s.Run("clearing a value records a nil new value", func() {
		entries := s.auditor.Diff(s.ctx, s.parent, Snapshot{"overrideUrgency": "urgent"}, []FieldValue{{Name: "overrideUrgency", Value: nil}}, s.actor)
		s.Require().Len(entries, 1)
		s.Equal(strPtr("urgent"), entries[0].OldValue)
		s.Nil(entries[0].NewValue)
	})

	s.Run("default exclusions apply", func() {
		entries := s.auditor.Diff(s.ctx, s.parent, Snapshot{}, []FieldValue{
			{Name: "id", Value: "x"},
			{Name: "createdAt", Value: time.Now()},
			{Name: "updatedAt", Value: time.Now()},
		}, s.actor)
		s.Empty(entries)
	})

	s.Run("caller exclusions replace the defaults", func() {
		entries := s.auditor.Diff(s.ctx, s.parent, Snapshot{}, []FieldValue{
			{Name: "reviewedBy", Value: s.actor},
			{Name: "updatedAt", Value: "2026-01-01"},
		}, s.actor, ExcludeFields("reviewedBy"))
		s.Require().Len(entries, 1)
		s.Equal("updatedAt", entries[0].FieldName)
	})

	s.Run("render failure yields no entries", func() {
		entries := s.auditor.Diff(s.ctx, s.parent, Snapshot{}, []FieldValue{{Name: "x", Value: panickyStringer{}}}, s.actor)
		s.Empty(entries)
	})

	s.Run("unknown parent kind yields no entries", func() {
		entries := s.auditor.Diff(s.ctx, Parent{Kind: "NOTE"}, Snapshot{}, []FieldValue{{Name: "x", Value: "y"}}, s.actor)
		s.Empty(entries)
	})
}

func (s *ChangelogSuite) TestRender() {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	urgent := "urgent"
	var nilTime *time.Time

	s.Nil(Render(nil))
	s.Nil(Render(nilTime))
	s.Equal("urgent", *Render(&urgent))
	s.Equal("2026-01-02T02:04:05Z", *Render(ts))
	s.Equal("true", *Render(true))
	s.Equal("42", *Render(42))
	s.Equal(s.actor.String(), *Render(s.actor))
}

func (s *ChangelogSuite) TestRecordAndList() {
	first := requestcontext.WithTime(context.Background(), time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC))
	n, err := s.auditor.Record(first, s.parent, Snapshot{"overrideUrgency": nil}, []FieldValue{{Name: "overrideUrgency", Value: "urgent"}}, s.actor)
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = s.auditor.Record(s.ctx, s.parent, Snapshot{"overrideUrgency": "urgent"}, []FieldValue{{Name: "overrideUrgency", Value: "routine"}}, s.actor)
	s.Require().NoError(err)
	s.Equal(1, n)

	views, err := s.auditor.List(s.ctx, s.parent)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(strPtr("routine"), views[0].NewValue)
	s.Equal("nurse@example.com", views[0].ChangedByEmail)
	s.True(views[0].ChangedAt.After(views[1].ChangedAt))

	prev, err := s.auditor.PreviousValue(s.ctx, s.parent, "overrideUrgency")
	s.Require().NoError(err)
	s.Equal(strPtr("urgent"), prev)

	none, err := s.auditor.PreviousValue(s.ctx, s.parent, "status")
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *ChangelogSuite) TestRecordNoChangesSkipsStore() {
	auditor := New(&failingStore{}, staticEmails{})
	n, err := auditor.Record(s.ctx, s.parent, Snapshot{"status": "unreviewed"}, []FieldValue{{Name: "status", Value: "unreviewed"}}, s.actor)
	s.NoError(err)
	s.Zero(n)
}

func (s *ChangelogSuite) TestRecordSurfacesPersistenceErrors() {
	auditor := New(&failingStore{}, staticEmails{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := auditor.Record(s.ctx, s.parent, Snapshot{}, []FieldValue{{Name: "status", Value: "reviewed"}}, s.actor)
	s.Error(err)
}
