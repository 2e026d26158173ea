package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the auditable moments in a credential's life.
type EventType string

const (
	// EventCredentialIssued records a fresh first-time issuance.
	EventCredentialIssued EventType = "credential.issued"
	// EventCredentialReplayed records an issue call that returned the
	// existing credential instead of minting a second one.
	EventCredentialReplayed EventType = "credential.replayed"
	// EventCredentialChecked records a successful pair verification.
	EventCredentialChecked EventType = "credential.checked"
)

// Event is one append-only audit record. Worker is the instance that handled
// the request, mirroring the worker tag stored on the credential.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Username  string    `json:"username"`
	Worker    string    `json:"worker"`
	Timestamp time.Time `json:"timestamp"`
}
