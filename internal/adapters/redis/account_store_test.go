package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camixfedex/saludo-app/internal/testutil"
)

func TestAccountStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAccountStore(client)
	ctx := context.Background()

	acct := Account{
		UID:          "anon-uid-1",
		RefreshToken: "refresh-1",
		IDToken:      "id-token-1",
		CreatedAt:    time.Now(),
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, acct))

	got, err := store.Get(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, acct.UID, got.UID)
	assert.Equal(t, acct.RefreshToken, got.RefreshToken)
	assert.Equal(t, acct.IDToken, got.IDToken)
	assert.WithinDuration(t, acct.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestAccountStore_GetNonExistent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAccountStore(client)

	_, err := store.Get(context.Background(), "missing")
	assert.Equal(t, ErrNotFound, err)
}

func TestAccountStore_GetEmptyToken(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAccountStore(client)

	_, err := store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}

func TestAccountStore_SaveValidation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAccountStore(client)
	ctx := context.Background()

	err := store.Save(ctx, Account{ExpiresAt: time.Now().Add(time.Hour)})
	assert.Error(t, err, "missing refresh token must be rejected")

	err = store.Save(ctx, Account{RefreshToken: "r", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.Error(t, err, "expired account must be rejected")
}

func TestAccountStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewAccountStore(client)
	ctx := context.Background()

	acct := Account{RefreshToken: "refresh-1", UID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, acct))

	require.NoError(t, store.Delete(ctx, "refresh-1"))

	_, err := store.Get(ctx, "refresh-1")
	assert.Equal(t, ErrNotFound, err)

	// Deleting a missing or empty token is a no-op.
	assert.NoError(t, store.Delete(ctx, "refresh-1"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestAccountStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	a := NewAccountStoreWithPrefix(client, "ida:")
	b := NewAccountStoreWithPrefix(client, "idb:")

	require.NoError(t, a.Save(ctx, Account{RefreshToken: "r1", UID: "u1", ExpiresAt: time.Now().Add(time.Hour)}))

	_, err := b.Get(ctx, "r1")
	assert.Equal(t, ErrNotFound, err, "prefixes must isolate keyspaces")
}
