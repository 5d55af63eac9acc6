package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/values"
)

// DefaultCacheSize is the number of shared handles kept by default.
const DefaultCacheSize = 64

type cacheKey struct {
	op  string
	req ports.ImageRequest
}

// SharedCache decorates a loader and reuses handles for shared requests.
// Shared handles are owned by the system and identical across repeated
// loads. Requests without the Shared flag always reach the wrapped loader;
// LoadIcon and LoadCursor results are always shared.
type SharedCache struct {
	next   ports.PlatformLoader
	cache  *lru.Cache[cacheKey, values.Handle]
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// Compile-time safety: *SharedCache implements ports.PlatformLoader.
var _ ports.PlatformLoader = (*SharedCache)(nil)

// NewSharedCache wraps next with an LRU of size entries.
func NewSharedCache(next ports.PlatformLoader, size int, logger *slog.Logger) (*SharedCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[cacheKey, values.Handle](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared handle cache: %w", err)
	}
	return &SharedCache{next: next, cache: cache, logger: logger}, nil
}

// LoadImage serves shared requests from the cache.
func (c *SharedCache) LoadImage(ctx context.Context, req ports.ImageRequest) (values.Handle, error) {
	if !req.Flags.Has(values.FlagShared) {
		return c.next.LoadImage(ctx, req)
	}
	return c.load(ctx, cacheKey{op: OpImage, req: req}, func() (values.Handle, error) {
		return c.next.LoadImage(ctx, req)
	})
}

// LoadIcon serves icons from the cache.
func (c *SharedCache) LoadIcon(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	key := cacheKey{op: OpIcon, req: ports.ImageRequest{Module: module, Identifier: id}}
	return c.load(ctx, key, func() (values.Handle, error) {
		return c.next.LoadIcon(ctx, module, id)
	})
}

// LoadCursor serves cursors from the cache.
func (c *SharedCache) LoadCursor(ctx context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	key := cacheKey{op: OpCursor, req: ports.ImageRequest{Module: module, Identifier: id}}
	return c.load(ctx, key, func() (values.Handle, error) {
		return c.next.LoadCursor(ctx, module, id)
	})
}

// Stats returns cache hits and misses.
func (c *SharedCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached handles.
func (c *SharedCache) Len() int {
	return c.cache.Len()
}

func (c *SharedCache) load(ctx context.Context, key cacheKey, load func() (values.Handle, error)) (values.Handle, error) {
	if h, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		c.logger.DebugContext(ctx, "shared handle reused", "op", key.op, "identifier", key.req.Identifier.String())
		return h, nil
	}
	c.misses.Add(1)

	h, err := load()
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, h)
	return h, nil
}
