package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/dinekit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.Get(ctx, "missing")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 1))
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	s.mu.Lock()
	s.data["k"].expire = time.Now().Add(-time.Second)
	s.mu.Unlock()

	_, err = s.Get(ctx, "k")
	assert.True(t, core.IsStoreNotFound(err))
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close(), "close is idempotent")
}
