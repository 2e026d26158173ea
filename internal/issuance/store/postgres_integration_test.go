//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"credmint/internal/issuance/models"
	"credmint/internal/issuance/store"
	"credmint/internal/platform/postgres"
	"credmint/pkg/platform/sentinel"
	"credmint/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgres(s.T())
	s.Require().NoError(postgres.Migrate(s.pg.DB))
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "credentials"))
}

func testCredential(username string) *models.Credential {
	return &models.Credential{
		Username: username,
		Password: "s3cret-" + username,
		Worker:   "worker-itest",
	}
}

func (s *PostgresStoreSuite) TestInsertAndLookups() {
	ctx := context.Background()

	stored, inserted, err := s.store.InsertIfAbsent(ctx, testCredential("alice"))
	s.Require().NoError(err)
	s.True(inserted)
	s.NotEqual(uuid.Nil, stored.ID)
	s.False(stored.IssuedAt.IsZero())

	found, err := s.store.FindByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(stored.ID, found.ID)

	byPair, err := s.store.FindByPair(ctx, "alice", stored.Password)
	s.Require().NoError(err)
	s.Equal(stored.ID, byPair.ID)

	_, err = s.store.FindByPair(ctx, "alice", "wrong")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByUsername(ctx, "nobody")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentInsertSingleWinner verifies the UNIQUE constraint collapses
// concurrent first issuances to exactly one stored credential.
func (s *PostgresStoreSuite) TestConcurrentInsertSingleWinner() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var winners atomic.Int32
	ids := make(chan uuid.UUID, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, inserted, err := s.store.InsertIfAbsent(ctx, testCredential("erin"))
			if !s.NoError(err) {
				return
			}
			if inserted {
				winners.Add(1)
			}
			ids <- stored.ID
		}()
	}
	wg.Wait()
	close(ids)

	s.Equal(int32(1), winners.Load(), "exactly one insert should win")

	first := uuid.Nil
	for id := range ids {
		if first == uuid.Nil {
			first = id
		}
		s.Equal(first, id, "all callers must converge on the same credential")
	}

	var count int
	s.Require().NoError(s.pg.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM credentials WHERE username = $1", "erin").Scan(&count))
	s.Equal(1, count)
}
