package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"credmint/internal/issuance/models"
	"credmint/pkg/platform/sentinel"
)

// InMemory keeps credentials in a mutex-guarded map. It favors clarity over
// performance and backs unit tests and local runs.
type InMemory struct {
	mu          sync.RWMutex
	credentials map[string]*models.Credential
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{credentials: make(map[string]*models.Credential)}
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cred, ok := s.credentials[username]; ok {
		copied := *cred
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByPair(_ context.Context, username, password string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[username]
	if !ok || cred.Password != password {
		return nil, sentinel.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (s *InMemory) InsertIfAbsent(_ context.Context, credential *models.Credential) (*models.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.credentials[credential.Username]; ok {
		copied := *existing
		return &copied, false, nil
	}
	stored := *credential
	stored.ID = uuid.New()
	stored.IssuedAt = time.Now().UTC()
	s.credentials[credential.Username] = &stored
	copied := stored
	return &copied, true, nil
}
