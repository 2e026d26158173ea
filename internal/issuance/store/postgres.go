package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"credmint/internal/issuance/models"
	"credmint/pkg/platform/sentinel"
)

// Postgres persists credentials in PostgreSQL. Uniqueness per username is a
// database constraint, so InsertIfAbsent is atomic across instances.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, worker, issued_at
		FROM credentials
		WHERE username = $1
	`, username)
	return scanCredential(row, "find credential by username")
}

func (s *Postgres) FindByPair(ctx context.Context, username, password string) (*models.Credential, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, worker, issued_at
		FROM credentials
		WHERE username = $1 AND password = $2
	`, username, password)
	return scanCredential(row, "find credential by pair")
}

// InsertIfAbsent relies on the username UNIQUE constraint: ON CONFLICT DO
// NOTHING returns no row when another writer got there first, in which case
// the existing record is fetched and returned with inserted=false.
func (s *Postgres) InsertIfAbsent(ctx context.Context, credential *models.Credential) (*models.Credential, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO credentials (id, username, password, worker)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, username, password, worker, issued_at
	`, uuid.New(), credential.Username, credential.Password, credential.Worker)

	stored, err := scanCredential(row, "insert credential")
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, err
	}

	existing, err := s.FindByUsername(ctx, credential.Username)
	if err != nil {
		return nil, false, fmt.Errorf("fetch existing after conflict: %w", err)
	}
	return existing, false, nil
}

func scanCredential(row *sql.Row, op string) (*models.Credential, error) {
	var cred models.Credential
	err := row.Scan(&cred.ID, &cred.Username, &cred.Password, &cred.Worker, &cred.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cred, nil
}
