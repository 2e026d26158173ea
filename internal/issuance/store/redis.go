package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"credmint/internal/issuance/models"
	"credmint/pkg/platform/sentinel"
)

const redisKeyPrefix = "credential:username:"

// Redis persists credentials as JSON values keyed by username. SETNX gives
// the same single-winner insert semantics as the postgres UNIQUE constraint.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed credential store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+username).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	var cred models.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &cred, nil
}

func (s *Redis) FindByPair(ctx context.Context, username, password string) (*models.Credential, error) {
	cred, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if cred.Password != password {
		return nil, sentinel.ErrNotFound
	}
	return cred, nil
}

func (s *Redis) InsertIfAbsent(ctx context.Context, credential *models.Credential) (*models.Credential, bool, error) {
	stored := *credential
	stored.ID = uuid.New()
	stored.IssuedAt = time.Now().UTC()

	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, false, fmt.Errorf("encode credential: %w", err)
	}

	inserted, err := s.client.SetNX(ctx, redisKeyPrefix+credential.Username, payload, 0).Result()
	if err != nil {
		return nil, false, fmt.Errorf("setnx credential: %w", err)
	}
	if inserted {
		return &stored, true, nil
	}

	existing, err := s.FindByUsername(ctx, credential.Username)
	if err != nil {
		return nil, false, fmt.Errorf("fetch existing after setnx miss: %w", err)
	}
	return existing, false, nil
}
