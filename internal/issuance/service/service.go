// Package service owns the create-or-return-existing issuance protocol and
// the internal credential check.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"credmint/internal/audit"
	"credmint/internal/issuance/metrics"
	"credmint/internal/issuance/models"
	"credmint/internal/issuance/store"
	dErrors "credmint/pkg/domain-errors"
	"credmint/pkg/platform/sentinel"
)

// Generator mints candidate credentials. It must be pure with respect to the
// store: issuance decides persistence, the generator only produces secrets.
type Generator interface {
	Generate(username string) (*models.Credential, error)
	Worker() string
}

// AuditPublisher records issuance lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// IssueResult is the outcome of an issue call. Replayed distinguishes an
// existing credential being returned from a fresh creation; both are
// successes.
type IssueResult struct {
	Credential *models.Credential
	Replayed   bool
}

// Service orchestrates credential issuance and verification lookups.
type Service struct {
	store     store.Store
	generator Generator
	logger    *slog.Logger
	audit     AuditPublisher
	metrics   *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(credentials store.Store, generator Generator, opts ...Option) *Service {
	s := &Service{store: credentials, generator: generator, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns the credential for username, minting one on first call.
//
// The protocol is safely repeatable: a caller that never learned whether a
// prior attempt succeeded can re-issue and will get the original secret back
// with Replayed=true instead of an error or a second credential. Concurrent
// first issuances are collapsed by the store's InsertIfAbsent, so a lost race
// folds into the replay branch.
func (s *Service) Issue(ctx context.Context, username string) (*IssueResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Please provide a username")
	}

	existing, err := s.store.FindByUsername(ctx, username)
	if err == nil {
		s.emitAudit(ctx, audit.EventCredentialReplayed, existing)
		s.metrics.IncReplay()
		return &IssueResult{Credential: existing, Replayed: true}, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, s.storageFailure(ctx, "credential lookup failed", username, err)
	}

	candidate, err := s.generator.Generate(username)
	if err != nil {
		return nil, s.storageFailure(ctx, "credential generation failed", username, err)
	}

	stored, inserted, err := s.store.InsertIfAbsent(ctx, candidate)
	if err != nil {
		return nil, s.storageFailure(ctx, "credential insert failed", username, err)
	}
	if !inserted {
		// Another request won the first-issuance race; its credential is
		// the credential.
		s.emitAudit(ctx, audit.EventCredentialReplayed, stored)
		s.metrics.IncReplay()
		return &IssueResult{Credential: stored, Replayed: true}, nil
	}

	s.emitAudit(ctx, audit.EventCredentialIssued, stored)
	s.metrics.IncIssued()
	return &IssueResult{Credential: stored, Replayed: false}, nil
}

// Check performs an exact-match lookup of the (username, password) pair.
// A miss is a single undifferentiated not-found: callers cannot learn whether
// the username or the password was wrong.
func (s *Service) Check(ctx context.Context, username, password string) (*models.Credential, error) {
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Please enter a username and password to verify your credential")
	}

	cred, err := s.store.FindByPair(ctx, username, password)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncCheck("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "Invalid username or password. Requested credential not found.")
		}
		s.metrics.IncCheck("error")
		s.metrics.IncStoreFailure()
		s.logger.ErrorContext(ctx, "credential check failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Something went wrong while checking your credential. Please try again.")
	}

	s.metrics.IncCheck("found")
	s.emitAudit(ctx, audit.EventCredentialChecked, cred)
	return cred, nil
}

// storageFailure logs the real cause and returns the generic retryable error;
// callers never see persistence detail.
func (s *Service) storageFailure(ctx context.Context, msg, username string, err error) error {
	s.metrics.IncStoreFailure()
	s.logger.ErrorContext(ctx, msg, "username", username, "error", err)
	return dErrors.Wrap(err, dErrors.CodeInternal, "Something went wrong while saving your credentials. Please try again.")
}

func (s *Service) emitAudit(ctx context.Context, eventType audit.EventType, cred *models.Credential) {
	if s.audit == nil {
		return
	}
	event := audit.Event{Type: eventType, Username: cred.Username, Worker: cred.Worker}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "type", string(eventType), "error", err)
	}
}
