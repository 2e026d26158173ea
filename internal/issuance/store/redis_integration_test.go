//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"credmint/internal/issuance/store"
	"credmint/pkg/testutil/containers"
)

type RedisStoreIntegrationSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.Redis
}

func TestRedisStoreIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreIntegrationSuite))
}

func (s *RedisStoreIntegrationSuite) SetupSuite() {
	s.redis = containers.NewRedis(s.T())
	s.store = store.NewRedis(s.redis.Client)
}

func (s *RedisStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// TestConcurrentSetNXSingleWinner exercises SETNX against a real server:
// one winner, everyone converges on its record.
func (s *RedisStoreIntegrationSuite) TestConcurrentSetNXSingleWinner() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var winners atomic.Int32
	passwords := make(chan string, goroutines)

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
			passwords <- stored.Password
		}()
	}
	wg.Wait()
	close(passwords)

	s.Equal(int32(1), winners.Load(), "exactly one insert should win")

	first := ""
	for password := range passwords {
		if first == "" {
			first = password
		}
		s.Equal(first, password)
	}
}
