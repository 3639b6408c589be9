//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/auth/models"
	"intake/internal/auth/store/user"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
	"intake/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *user.PostgresStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewPostgres(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "users"))
}

func (s *PostgresUserStoreSuite) TestSaveFindAndActivate() {
	ctx := context.Background()
	u := &models.User{ID: id.NewUserID(), Email: "Nurse@Example.com", Role: "nurse", FirstName: "Ana"}
	s.Require().NoError(s.store.Save(ctx, u))

	found, err := s.store.FindByEmail(ctx, "nurse@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.False(found.IsActive)

	s.Require().NoError(s.store.SetPassword(ctx, u.ID, "hash", time.Now()))
	found, err = s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.True(found.IsActive)
	s.Equal("hash", found.PasswordHash)

	emails, err := s.store.EmailsByID(ctx, []id.UserID{u.ID})
	s.Require().NoError(err)
	s.Equal("Nurse@Example.com", emails[u.ID])
}

func (s *PostgresUserStoreSuite) TestErrors() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, &models.User{ID: id.NewUserID(), Email: "dup@example.com"}))

	err := s.store.Save(ctx, &models.User{ID: id.NewUserID(), Email: "dup@example.com"})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	_, err = s.store.FindByID(ctx, id.NewUserID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.SetPassword(ctx, id.NewUserID(), "hash", time.Now())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
