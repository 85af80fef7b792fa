package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	data := &Data{Identity: &Identity{UserID: 1, Username: "john_doe"}}
	require.NoError(t, store.Set(ctx, "token", data))

	// Mutating the caller's copy does not leak into the store
	data.Identity.Username = "changed"

	got, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "john_doe", got.Identity.Username)

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting a missing token is fine
	require.NoError(t, store.Delete(ctx, "token"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Hour).(*memoryStore)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "token", &Data{Identity: &Identity{UserID: 1, Username: "john_doe"}}))

	now = now.Add(59 * time.Minute)
	_, err := store.Get(ctx, "token")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_AnonymousEntriesExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore(0).(*memoryStore)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "anonymous", &Data{Flashes: []Flash{{Category: "warning", Message: "hi"}}}))
	require.NoError(t, store.Set(ctx, "user", &Data{Identity: &Identity{UserID: 1, Username: "john_doe"}}))

	now = now.Add(AnonymousTTL + time.Minute)
	_, err := store.Get(ctx, "anonymous")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Get(ctx, "user")
	assert.NoError(t, err)
}

func TestMemoryStore_SweepsUnreadExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Hour).(*memoryStore)
	store.now = func() time.Time { return now }

	flashOnly := &Data{Flashes: []Flash{{Category: "warning", Message: "hi"}}}
	for i := 0; i < sweepInterval-1; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("stale-%d", i), flashOnly))
	}
	assert.Len(t, store.sessions, sweepInterval-1)

	now = now.Add(2 * time.Hour)
	require.NoError(t, store.Set(ctx, "fresh", flashOnly))

	assert.Len(t, store.sessions, 1)
	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
