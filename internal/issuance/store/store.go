// Package store persists credentials. Implementations are interface-driven so
// the orchestrator stays testable and backends can be swapped without
// rewiring business code.
package store

import (
	"context"

	"credmint/internal/issuance/models"
)

// Store is the durable mapping from username to credential record.
//
// InsertIfAbsent is the single atomic primitive closing the check-then-act
// window on first issuance: exactly one of any number of concurrent inserts
// for the same username wins, and every loser receives the stored record with
// inserted=false. The store assigns ID and IssuedAt to the winning record.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
	FindByPair(ctx context.Context, username, password string) (*models.Credential, error)
	InsertIfAbsent(ctx context.Context, credential *models.Credential) (*models.Credential, bool, error)
}
