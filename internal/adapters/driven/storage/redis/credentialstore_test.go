package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
)

// setupTestStore starts an in-process Redis and connects a store to it.
func setupTestStore(t *testing.T) *CredentialStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := NewCredentialStore(Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewCredentialStore_RequiresAddr(t *testing.T) {
	_, err := NewCredentialStore(Config{})

	require.Error(t, err)
}

func TestNewCredentialStore_PingFailure(t *testing.T) {
	// Nothing listens here; construction should fail fast.
	_, err := NewCredentialStore(Config{Addr: "127.0.0.1:1"})

	require.Error(t, err)
}

func TestCredentialStore_SetAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "registry.example.com", "alice", "hunter2")
	require.NoError(t, err)

	value, err := store.Get(ctx, "registry.example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
}

func TestCredentialStore_Set_Overwrite(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "svc", "acct", "first"))
	require.NoError(t, store.Set(ctx, "svc", "acct", "second"))

	value, err := store.Get(ctx, "svc", "acct")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestCredentialStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "svc", "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCredentialStore_AccountsShareAServiceHash(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "svc", "alice", "one"))
	require.NoError(t, store.Set(ctx, "svc", "bob", "two"))

	value, err := store.Get(ctx, "svc", "alice")
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	value, err = store.Get(ctx, "svc", "bob")
	require.NoError(t, err)
	assert.Equal(t, "two", value)
}

func TestCredentialStore_SeparatorsInNamesDoNotCollide(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a:b", "c", "one"))
	require.NoError(t, store.Set(ctx, "a", "b:c", "two"))

	value, err := store.Get(ctx, "a:b", "c")
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	value, err = store.Get(ctx, "a", "b:c")
	require.NoError(t, err)
	assert.Equal(t, "two", value)
}

func TestCredentialStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "svc", "acct", "value"))
	require.NoError(t, store.Delete(ctx, "svc", "acct"))

	_, err := store.Get(ctx, "svc", "acct")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCredentialStore_Delete_AbsentIsNotAnError(t *testing.T) {
	store := setupTestStore(t)

	err := store.Delete(context.Background(), "svc", "never-stored")

	assert.NoError(t, err)
}
