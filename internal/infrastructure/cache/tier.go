package cache

import (
	"context"
)

// Entry is one item in a collection snapshot. Values are opaque encoded
// payloads; tiers never look inside them.
type Entry struct {
	Key   string
	Value []byte
}

// Tier is a single local persistence layer holding whole-collection
// snapshots. Save replaces the collection's contents (there is no
// partial-update API), Load returns everything currently stored under the
// collection key.
type Tier interface {
	Save(ctx context.Context, collection string, entries []Entry) error
	Load(ctx context.Context, collection string) ([]Entry, error)
	Clear(ctx context.Context, collection string) error
	Close() error
}
