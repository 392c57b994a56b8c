package cache

import (
	"context"

	"neohand/pkg/logger"
)

// DualCache composes the fast and durable tiers with a fixed precedence
// policy: writes go to both, the fast tier being authoritative and the
// durable write best-effort; reads prefer a non-empty durable result and fall
// back to the fast tier. The two tiers are not transactional across each
// other; the read precedence is the only reconciliation mechanism.
type DualCache struct {
	fast    Tier
	durable Tier
}

func NewDualCache(fast, durable Tier) *DualCache {
	return &DualCache{
		fast:    fast,
		durable: durable,
	}
}

// Save writes the snapshot to both tiers. A fast-tier failure is returned to
// the caller; a durable-tier failure is logged and swallowed so the feature
// degrades instead of erroring.
func (c *DualCache) Save(ctx context.Context, collection string, entries []Entry) error {
	if err := c.fast.Save(ctx, collection, entries); err != nil {
		return err
	}

	if err := c.durable.Save(ctx, collection, entries); err != nil {
		logger.Warn("durable cache save failed for %s: %v", collection, err)
	}
	return nil
}

// Load returns the durable tier's snapshot when it has one, otherwise the
// fast tier's, otherwise an empty collection. Load never fails; tier errors
// are logged and treated as empty results.
func (c *DualCache) Load(ctx context.Context, collection string) []Entry {
	entries, err := c.durable.Load(ctx, collection)
	if err != nil {
		logger.Warn("durable cache unavailable for %s, using fast tier: %v", collection, err)
	} else if len(entries) > 0 {
		return entries
	}

	entries, err = c.fast.Load(ctx, collection)
	if err != nil {
		logger.Warn("fast cache load failed for %s: %v", collection, err)
		return nil
	}
	return entries
}

// Clear drops the collection from both tiers.
func (c *DualCache) Clear(ctx context.Context, collection string) error {
	if err := c.fast.Clear(ctx, collection); err != nil {
		return err
	}
	if err := c.durable.Clear(ctx, collection); err != nil {
		logger.Warn("durable cache clear failed for %s: %v", collection, err)
	}
	return nil
}

func (c *DualCache) Close() error {
	fastErr := c.fast.Close()
	if err := c.durable.Close(); err != nil {
		return err
	}
	return fastErr
}
