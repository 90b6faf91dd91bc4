package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "guest_cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "guest_cart", []byte(`{"items":[]}`)))

	value, ok, err := store.Get(ctx, "guest_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"items":[]}`, string(value))

	require.NoError(t, store.Delete(ctx, "guest_cart"))

	_, ok, err = store.Get(ctx, "guest_cart")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreDeleteMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "never-written"))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "guest_cart:4f2c/../evil"
	require.NoError(t, store.Set(ctx, key, []byte("x")))

	value, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", string(value))
}
