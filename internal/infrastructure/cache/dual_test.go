package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingTier rejects every operation, standing in for a durable tier whose
// open request was refused.
type failingTier struct{}

func (failingTier) Save(ctx context.Context, collection string, entries []Entry) error {
	return errors.New("tier unavailable")
}

func (failingTier) Load(ctx context.Context, collection string) ([]Entry, error) {
	return nil, errors.New("tier unavailable")
}

func (failingTier) Clear(ctx context.Context, collection string) error {
	return errors.New("tier unavailable")
}

func (failingTier) Close() error { return nil }

func entryKeys(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

func TestDualCacheRoundTrip(t *testing.T) {
	cache := NewDualCache(NewMemoryTier(), NewMemoryTier())
	ctx := context.Background()

	items := []Entry{
		{Key: "1", Value: []byte(`{"id":1}`)},
		{Key: "2", Value: []byte(`{"id":2}`)},
	}
	require.NoError(t, cache.Save(ctx, "cart", items))

	loaded := cache.Load(ctx, "cart")
	assert.ElementsMatch(t, entryKeys(items), entryKeys(loaded))
}

func TestDualCachePrefersDurableTier(t *testing.T) {
	fast := NewMemoryTier()
	durable := NewMemoryTier()
	cache := NewDualCache(fast, durable)
	ctx := context.Background()

	// Seed the tiers out of band with diverging snapshots.
	require.NoError(t, fast.Save(ctx, "cart", []Entry{{Key: "stale", Value: []byte("x")}}))
	require.NoError(t, durable.Save(ctx, "cart", []Entry{{Key: "fresh", Value: []byte("y")}}))

	loaded := cache.Load(ctx, "cart")
	assert.Equal(t, []string{"fresh"}, entryKeys(loaded))
}

func TestDualCacheFallsBackWhenDurableEmpty(t *testing.T) {
	fast := NewMemoryTier()
	cache := NewDualCache(fast, NewMemoryTier())
	ctx := context.Background()

	require.NoError(t, fast.Save(ctx, "cart", []Entry{{Key: "1", Value: []byte("a")}}))

	loaded := cache.Load(ctx, "cart")
	assert.Equal(t, []string{"1"}, entryKeys(loaded))
}

func TestDualCacheSurvivesDurableFailure(t *testing.T) {
	cache := NewDualCache(NewMemoryTier(), failingTier{})
	ctx := context.Background()

	items := []Entry{{Key: "1", Value: []byte(`{"id":1,"quantity":2}`)}}

	// The durable write fails behind the scenes; Save still succeeds.
	require.NoError(t, cache.Save(ctx, "cart", items))

	loaded := cache.Load(ctx, "cart")
	assert.Equal(t, []string{"1"}, entryKeys(loaded))
}

func TestDualCacheEmptyWhenBothEmpty(t *testing.T) {
	cache := NewDualCache(NewMemoryTier(), failingTier{})

	loaded := cache.Load(context.Background(), "favorites")
	assert.Empty(t, loaded)
}

func TestDualCacheClear(t *testing.T) {
	cache := NewDualCache(NewMemoryTier(), NewMemoryTier())
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "cart", []Entry{{Key: "1", Value: []byte("a")}}))
	require.NoError(t, cache.Clear(ctx, "cart"))

	assert.Empty(t, cache.Load(ctx, "cart"))
}

func TestMemoryTierCopiesValues(t *testing.T) {
	tier := NewMemoryTier()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, tier.Save(ctx, "cart", []Entry{{Key: "1", Value: value}}))
	value[0] = 'X'

	loaded, err := tier.Load(ctx, "cart")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []byte("original"), loaded[0].Value)
}
