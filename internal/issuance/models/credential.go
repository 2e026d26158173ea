package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Credential is the record identifying an issued identity.
//
// Invariants:
//   - At most one credential exists per username, enforced by the store's
//     insert-if-absent operation.
//   - Password is assigned once at creation and never mutated.
//   - ID and IssuedAt are assigned by the store at creation and are
//     immutable thereafter.
//
// Worker records which service instance issued the credential. It is an
// observability tag only and carries no authorization weight.
type Credential struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Worker   string    `json:"worker"`
	IssuedAt time.Time `json:"issuedAt"`
}

// IssueRequest is the body of the public issue endpoint.
type IssueRequest struct {
	Username string `json:"username"`
}

// CheckRequest is the body of the internal check endpoint.
type CheckRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IssuedPayload is the credential shape rendered by the issue endpoint. The
// worker is folded into a human-readable issuedBy line.
type IssuedPayload struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	IssuedBy string    `json:"issuedBy"`
	IssuedAt time.Time `json:"issuedAt"`
}

// CheckedPayload is the credential shape rendered by the check endpoint,
// returning the raw worker tag for audit consumers.
type CheckedPayload struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Worker   string    `json:"worker"`
	IssuedAt time.Time `json:"issuedAt"`
}

// ToIssuedPayload converts a stored credential to the issue response shape.
func ToIssuedPayload(c *Credential) IssuedPayload {
	return IssuedPayload{
		ID:       c.ID,
		Username: c.Username,
		Password: c.Password,
		IssuedBy: fmt.Sprintf("credential issued by %s", c.Worker),
		IssuedAt: c.IssuedAt,
	}
}

// ToCheckedPayload converts a stored credential to the check response shape.
func ToCheckedPayload(c *Credential) CheckedPayload {
	return CheckedPayload{
		ID:       c.ID,
		Username: c.Username,
		Password: c.Password,
		Worker:   c.Worker,
		IssuedAt: c.IssuedAt,
	}
}
