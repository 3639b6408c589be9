//go:build integration

package changelog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/audit/changelog"
	"intake/internal/platform/postgres"
	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
	"intake/pkg/testutil/containers"
)

type noEmails struct{}

func (noEmails) EmailsByID(context.Context, []id.UserID) (map[id.UserID]string, error) {
	return map[id.UserID]string{}, nil
}

type PostgresChangelogSuite struct {
	suite.Suite
	pg      *containers.PostgresContainer
	store   *changelog.PostgresStore
	auditor *changelog.Auditor
	tx      *postgres.TxManager
}

func TestPostgresChangelogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresChangelogSuite))
}

func (s *PostgresChangelogSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = changelog.NewPostgres(s.pg.DB)
	s.auditor = changelog.New(s.store, noEmails{})
	s.tx = postgres.NewTxManager(s.pg.DB, time.Second)
}

func (s *PostgresChangelogSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "changelog"))
}

func (s *PostgresChangelogSuite) TestEntriesRollBackWithTheTransaction() {
	ctx := requestcontext.WithTime(context.Background(), time.Now().UTC())
	parent := changelog.CaseParent(id.NewCaseID())
	actor := id.NewUserID()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.auditor.Record(ctx, parent, changelog.Snapshot{}, []changelog.FieldValue{{Name: "status", Value: "reviewed"}}, actor)
		s.Require().NoError(err)
		s.Equal(1, n)
		return errors.New("entity update failed")
	})
	s.Require().Error(err)

	entries, err := s.store.ListByParent(ctx, parent)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *PostgresChangelogSuite) TestCommittedEntriesListNewestFirst() {
	parent := changelog.PatientParent(id.NewPatientID())
	actor := id.NewUserID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i, v := range []string{"en", "es"} {
		ctx := requestcontext.WithTime(context.Background(), base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(s.tx.RunInTx(ctx, func(ctx context.Context) error {
			_, err := s.auditor.Record(ctx, parent, changelog.Snapshot{}, []changelog.FieldValue{{Name: "languagePreference", Value: v}}, actor)
			return err
		}))
	}

	entries, err := s.store.ListByParent(context.Background(), parent)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("es", *entries[0].NewValue)
	s.Nil(entries[0].OldValue)

	latest, err := s.store.LatestForField(context.Background(), parent, "languagePreference")
	s.Require().NoError(err)
	s.Equal("es", *latest.NewValue)
}
