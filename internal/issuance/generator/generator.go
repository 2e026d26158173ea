// Package generator produces random opaque secrets for new credentials.
package generator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"credmint/internal/issuance/models"
)

// PasswordLength is the fixed display length of generated secrets.
const PasswordLength = 16

// DefaultWorker is used when no worker name is configured.
const DefaultWorker = "worker-local"

// Generator mints credentials tagged with this instance's worker identifier.
// It consults only the crypto random source and static configuration; it
// never touches the store.
type Generator struct {
	worker string
}

// New constructs a Generator. An empty worker falls back to DefaultWorker.
func New(worker string) *Generator {
	if worker == "" {
		worker = DefaultWorker
	}
	return &Generator{worker: worker}
}

// Worker returns the configured worker identifier.
func (g *Generator) Worker() string {
	return g.worker
}

// Generate produces a credential for the username with a fresh random secret.
// The secret is drawn from crypto/rand, base64-encoded, and truncated to
// PasswordLength printable characters.
func (g *Generator) Generate(username string) (*models.Credential, error) {
	buf := make([]byte, PasswordLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	password := base64.StdEncoding.EncodeToString(buf)[:PasswordLength]

	return &models.Credential{
		Username: username,
		Password: password,
		Worker:   g.worker,
	}, nil
}
