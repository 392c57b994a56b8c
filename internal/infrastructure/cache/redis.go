package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisTier is an alternative fast tier backed by a shared redis instance,
// for deployments where more than one process serves the same clients. Each
// collection maps to one hash.
type RedisTier struct {
	client *redis.Client
	prefix string
}

func NewRedisTier(client *redis.Client, prefix string) *RedisTier {
	if prefix == "" {
		prefix = "neohand:cache:"
	}
	return &RedisTier{
		client: client,
		prefix: prefix,
	}
}

func (t *RedisTier) key(collection string) string {
	return t.prefix + collection
}

func (t *RedisTier) Save(ctx context.Context, collection string, entries []Entry) error {
	key := t.key(collection)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		for _, e := range entries {
			pipe.HSet(ctx, key, e.Key, e.Value)
		}
		return nil
	})
	return err
}

func (t *RedisTier) Load(ctx context.Context, collection string) ([]Entry, error) {
	stored, err := t.client.HGetAll(ctx, t.key(collection)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(stored))
	for k, v := range stored {
		entries = append(entries, Entry{Key: k, Value: []byte(v)})
	}
	return entries, nil
}

func (t *RedisTier) Clear(ctx context.Context, collection string) error {
	return t.client.Del(ctx, t.key(collection)).Err()
}

func (t *RedisTier) Close() error {
	return t.client.Close()
}
