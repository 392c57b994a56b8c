package cache

import (
	"context"
	"sync"
)

// MemoryTier is the volatile fast tier: an in-process snapshot store that is
// always available and lost on restart.
type MemoryTier struct {
	mu          sync.RWMutex
	collections map[string][]Entry
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{
		collections: make(map[string][]Entry),
	}
}

func (t *MemoryTier) Save(ctx context.Context, collection string, entries []Entry) error {
	snapshot := make([]Entry, len(entries))
	for i, e := range entries {
		value := make([]byte, len(e.Value))
		copy(value, e.Value)
		snapshot[i] = Entry{Key: e.Key, Value: value}
	}

	t.mu.Lock()
	t.collections[collection] = snapshot
	t.mu.Unlock()
	return nil
}

func (t *MemoryTier) Load(ctx context.Context, collection string) ([]Entry, error) {
	t.mu.RLock()
	stored := t.collections[collection]
	t.mu.RUnlock()

	out := make([]Entry, len(stored))
	copy(out, stored)
	return out, nil
}

func (t *MemoryTier) Clear(ctx context.Context, collection string) error {
	t.mu.Lock()
	delete(t.collections, collection)
	t.mu.Unlock()
	return nil
}

func (t *MemoryTier) Close() error {
	return nil
}
