package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the audit sink. It is append-only so tests can swap sinks easily.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUsername(ctx context.Context, username string) ([]Event, error)
}

// Publisher captures structured audit events and persists them through the
// storage layer.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, username string) ([]Event, error) {
	return p.store.ListByUsername(ctx, username)
}
