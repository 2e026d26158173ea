package config

import (
	"os"
	"time"
)

// StoreBackend selects the credential store implementation.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StorePostgres StoreBackend = "postgres"
	StoreRedis    StoreBackend = "redis"
)

// Issuance captures configuration for the issuance service. Loaded once at
// startup and treated as immutable for the process lifetime.
type Issuance struct {
	Addr         string
	Store        StoreBackend
	DatabaseURL  string
	RedisURL     string
	WorkerName   string
	AuditBrokers string
	AuditTopic   string
}

// Verification captures configuration for the verification service.
type Verification struct {
	Addr            string
	CheckURL        string
	UpstreamTimeout time.Duration
}

// IssuanceFromEnv builds an Issuance config from environment variables so
// main stays lean.
func IssuanceFromEnv() Issuance {
	return Issuance{
		Addr:         getenv("ISSUANCE_ADDR", ":5000"),
		Store:        StoreBackend(getenv("CREDENTIAL_STORE", string(StoreMemory))),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		WorkerName:   getenv("WORKER_NAME", "worker-local"),
		AuditBrokers: os.Getenv("AUDIT_BROKERS"),
		AuditTopic:   getenv("AUDIT_TOPIC", "credential-audit"),
	}
}

// VerificationFromEnv builds a Verification config from environment variables.
func VerificationFromEnv() Verification {
	timeout := 5 * time.Second
	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}
	return Verification{
		Addr:            getenv("VERIFICATION_ADDR", ":5001"),
		CheckURL:        getenv("ISSUANCE_CHECK_URL", "http://localhost:5000/api/services/issuance/internal"),
		UpstreamTimeout: timeout,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
