package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuanceFromEnv_Defaults(t *testing.T) {
	cfg := IssuanceFromEnv()

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "worker-local", cfg.WorkerName)
	assert.Equal(t, "credential-audit", cfg.AuditTopic)
}

func TestIssuanceFromEnv_Overrides(t *testing.T) {
	t.Setenv("ISSUANCE_ADDR", ":9000")
	t.Setenv("CREDENTIAL_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/credmint")
	t.Setenv("WORKER_NAME", "worker-2")

	cfg := IssuanceFromEnv()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/credmint", cfg.DatabaseURL)
	assert.Equal(t, "worker-2", cfg.WorkerName)
}

func TestVerificationFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := VerificationFromEnv()
		assert.Equal(t, ":5001", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("VERIFICATION_ADDR", ":9001")
		t.Setenv("ISSUANCE_CHECK_URL", "http://issuance:5000/api/services/issuance/internal")
		t.Setenv("UPSTREAM_TIMEOUT", "250ms")

		cfg := VerificationFromEnv()
		assert.Equal(t, ":9001", cfg.Addr)
		assert.Equal(t, "http://issuance:5000/api/services/issuance/internal", cfg.CheckURL)
		assert.Equal(t, 250*time.Millisecond, cfg.UpstreamTimeout)
	})

	t.Run("bad timeout falls back to default", func(t *testing.T) {
		t.Setenv("UPSTREAM_TIMEOUT", "soon")
		assert.Equal(t, 5*time.Second, VerificationFromEnv().UpstreamTimeout)
	})
}
