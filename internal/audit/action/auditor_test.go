package action

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Append(context.Context, Entry) error { return errors.New("db down") }

type recordingStream struct {
	entries []Entry
	err     error
}

func (r *recordingStream) Publish(_ context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

type AuditorSuite struct {
	suite.Suite
	store   *InMemoryStore
	stream  *recordingStream
	auditor *Auditor
	ctx     context.Context
	userID  id.UserID
	now     time.Time
}

func TestAuditorSuite(t *testing.T) {
	suite.Run(t, new(AuditorSuite))
}

func (s *AuditorSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = NewInMemory()
	s.stream = &recordingStream{}
	s.auditor = New(s.store, WithLogger(logger), WithStream(s.stream))
	s.userID = id.NewUserID()
	s.now = time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

	ctx := requestcontext.WithPrincipal(context.Background(), s.userID, "nurse@example.com", "clinician")
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
	s.ctx = requestcontext.WithTime(ctx, s.now)
}

func (s *AuditorSuite) TestRecord() {
	s.Run("fills actor, role, ip and client from the request", func() {
		caseID := uuid.New()
		ok := s.auditor.Record(s.ctx, Event{
			Action:         UpdateCase,
			ResourceType:   ResourceTriageCase,
			ResourceID:     caseID,
			FieldsModified: []string{"status", " status", "clinicianNotes", ""},
		})
		s.Require().True(ok)

		entries, err := s.store.ListByResource(s.ctx, ResourceTriageCase, caseID)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		e := entries[0]
		s.Equal(StatusSuccess, e.Status)
		s.Equal(s.userID, e.ActorID)
		s.Equal("clinician", e.ActorRole)
		s.Equal("10.0.0.7", e.IP)
		s.Equal(s.now, e.Timestamp)
		s.Equal([]string{"status", "clinicianNotes"}, e.FieldsModified)
		s.Contains(e.Details["client"], "Firefox")
	})

	s.Run("explicit values win over the request context", func() {
		other := id.NewUserID()
		ok := s.auditor.Record(s.ctx, Event{
			Action:       ListCases,
			ActorID:      other,
			ActorRole:    "admin",
			IP:           "192.0.2.1",
			ResourceType: ResourceTriageCase,
			Details:      map[string]any{"limit": 100, "returned_count": 3},
		})
		s.Require().True(ok)

		all := s.store.All()
		e := all[len(all)-1]
		s.Equal(other, e.ActorID)
		s.Equal("admin", e.ActorRole)
		s.Equal("192.0.2.1", e.IP)
		s.Equal(100, e.Details["limit"])
		s.Equal(uuid.Nil, e.ResourceID)
	})

	s.Run("mirrors persisted entries to the stream", func() {
		before := len(s.stream.entries)
		s.True(s.auditor.Record(s.ctx, Event{Action: ViewPatient, ResourceType: ResourcePatient, ResourceID: uuid.New()}))
		s.Len(s.stream.entries, before+1)
	})

	s.Run("stream failure does not fail the record", func() {
		s.stream.err = errors.New("broker down")
		defer func() { s.stream.err = nil }()
		s.True(s.auditor.Record(s.ctx, Event{Action: ViewCase, ResourceType: ResourceTriageCase, ResourceID: uuid.New()}))
	})

	s.Run("unknown action is dropped", func() {
		s.False(s.auditor.Record(s.ctx, Event{Action: "EXPORT", ResourceType: ResourceTriageCase}))
	})

	s.Run("missing resource type is dropped", func() {
		s.False(s.auditor.Record(s.ctx, Event{Action: ViewCase}))
	})
}

func (s *AuditorSuite) TestRecordSwallowsStoreFailure() {
	stream := &recordingStream{}
	auditor := New(failingStore{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), WithStream(stream))

	s.False(auditor.Record(s.ctx, Event{Action: DeleteCase, ResourceType: ResourceTriageCase, ResourceID: uuid.New()}))
	s.Empty(stream.entries)
}

func (s *AuditorSuite) TestDescribeClient() {
	s.Run("empty user agent returns unknown device", func() {
		s.Equal("Unknown Device", describeClient(""))
	})

	s.Run("chrome on desktop includes browser and OS", func() {
		result := describeClient("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		s.Contains(result, "Chrome")
		s.Contains(result, " on ")
	})

	s.Run("safari on iphone includes platform", func() {
		result := describeClient("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
		s.Contains(result, "iPhone")
	})

	s.Run("result has no leading or trailing whitespace", func() {
		result := describeClient("Unknown/1.0")
		s.NotEmpty(result)
		s.Equal(result, strings.TrimSpace(result))
	})
}
