package cache

import (
	"context"
	"time"

	"github.com/matzehuels/carousel/pkg/observability"
)

// Observed reports the traffic of an inner cache to the registered
// observability cache hooks.
type Observed struct {
	inner   Cache
	keyType string
}

// NewObserved wraps inner. keyType labels every reported event, for example
// "frame".
func NewObserved(inner Cache, keyType string) Cache {
	return &Observed{inner: inner, keyType: keyType}
}

// Get implements Cache and reports a hit or miss.
func (c *Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, c.keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, c.keyType)
	}
	return data, ok, nil
}

// Set implements Cache and reports the stored size.
func (c *Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}

func (c *Observed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *Observed) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Observed)(nil)
