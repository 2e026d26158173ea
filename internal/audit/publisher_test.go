package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_FillsIDAndTimestamp(t *testing.T) {
	sink := NewInMemoryStore()
	publisher := NewPublisher(sink)
	ctx := context.Background()

	err := publisher.Emit(ctx, Event{Type: EventCredentialIssued, Username: "alice", Worker: "worker-1"})
	require.NoError(t, err)

	events, err := publisher.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEqual(t, uuid.Nil, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "worker-1", events[0].Worker)
}

func TestInMemoryStore_ListFiltersByUsername(t *testing.T) {
	sink := NewInMemoryStore()
	ctx := context.Background()

	for _, username := range []string{"alice", "bob", "alice"} {
		require.NoError(t, sink.Append(ctx, Event{Type: EventCredentialChecked, Username: username}))
	}

	events, err := sink.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestWorker_DrainsInbox(t *testing.T) {
	sink := NewInMemoryStore()
	inbox := make(chan Event, 1)
	worker := NewWorker(sink, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{ID: uuid.New(), Type: EventCredentialIssued, Username: "carol", Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		events, err := sink.ListByUsername(context.Background(), "carol")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
