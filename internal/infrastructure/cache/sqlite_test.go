package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTierSnapshotReplace(t *testing.T) {
	tier := NewSQLiteTier(filepath.Join(t.TempDir(), "cache.db"), 1)
	defer tier.Close()
	ctx := context.Background()

	require.NoError(t, tier.Save(ctx, "cart", []Entry{
		{Key: "1", Value: []byte("a")},
		{Key: "2", Value: []byte("b")},
	}))

	// A second save replaces the whole snapshot, not merges into it.
	require.NoError(t, tier.Save(ctx, "cart", []Entry{
		{Key: "3", Value: []byte("c")},
	}))

	loaded, err := tier.Load(ctx, "cart")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "3", loaded[0].Key)
	assert.Equal(t, []byte("c"), loaded[0].Value)
}

func TestSQLiteTierCollectionsIndependent(t *testing.T) {
	tier := NewSQLiteTier(filepath.Join(t.TempDir(), "cache.db"), 1)
	defer tier.Close()
	ctx := context.Background()

	require.NoError(t, tier.Save(ctx, "cart", []Entry{{Key: "1", Value: []byte("a")}}))
	require.NoError(t, tier.Save(ctx, "favorites", []Entry{{Key: "9", Value: []byte("f")}}))
	require.NoError(t, tier.Clear(ctx, "cart"))

	cart, err := tier.Load(ctx, "cart")
	require.NoError(t, err)
	assert.Empty(t, cart)

	favorites, err := tier.Load(ctx, "favorites")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestSQLiteTierVersionBumpDropsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	tier := NewSQLiteTier(path, 1)
	require.NoError(t, tier.Save(ctx, "cart", []Entry{{Key: "1", Value: []byte("a")}}))
	require.NoError(t, tier.Close())

	upgraded := NewSQLiteTier(path, 2)
	defer upgraded.Close()

	loaded, err := upgraded.Load(ctx, "cart")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteTierOpenFailureIsSticky(t *testing.T) {
	// A directory path cannot be opened as a database file.
	tier := NewSQLiteTier(t.TempDir(), 1)
	ctx := context.Background()

	_, err := tier.Load(ctx, "cart")
	assert.Error(t, err)
	assert.Error(t, tier.Save(ctx, "cart", nil))
}
