package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_PasswordShape(t *testing.T) {
	gen := New("worker-1")

	cred, err := gen.Generate("alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, "worker-1", cred.Worker)
	assert.Len(t, cred.Password, PasswordLength)
	// ID and IssuedAt belong to the store, not the generator.
	assert.True(t, cred.IssuedAt.IsZero())
}

func TestGenerate_PasswordsAreUnique(t *testing.T) {
	gen := New("worker-1")

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		cred, err := gen.Generate("alice")
		require.NoError(t, err)
		seen[cred.Password] = struct{}{}
	}

	assert.Len(t, seen, 1000, "expected 1000 distinct passwords from 1000 generations")
}

func TestNew_WorkerFallback(t *testing.T) {
	assert.Equal(t, DefaultWorker, New("").Worker())
	assert.Equal(t, "worker-7", New("worker-7").Worker())
}
