package access

import (
	"context"
	"sync"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// Cache collapses repeated share and volume lookups within one request,
// typically a directory listing that re-decides every child. It must be
// created per request and discarded afterwards; it is never a substitute
// for the stores and must not outlive the request that created it.
//
// Safe for concurrent use, so child decisions may run in parallel.
type Cache struct {
	mu      sync.Mutex
	shares  map[string]cacheEntry[*models.Share]
	volumes map[string]cacheEntry[*models.UserVolume]
}

type cacheEntry[T any] struct {
	value T
	err   error
}

// NewCache returns an empty request-scoped cache.
func NewCache() *Cache {
	return &Cache{
		shares:  make(map[string]cacheEntry[*models.Share]),
		volumes: make(map[string]cacheEntry[*models.UserVolume]),
	}
}

// shareByToken memoizes a share lookup, including its error outcome, so
// a listing with a missing share does not hammer the store per child.
func (c *Cache) shareByToken(ctx context.Context, token string, fetch func(context.Context, string) (*models.Share, error)) (*models.Share, error) {
	if c == nil {
		return fetch(ctx, token)
	}

	c.mu.Lock()
	entry, ok := c.shares[token]
	c.mu.Unlock()
	if ok {
		return entry.value, entry.err
	}

	share, err := fetch(ctx, token)

	c.mu.Lock()
	c.shares[token] = cacheEntry[*models.Share]{value: share, err: err}
	c.mu.Unlock()

	return share, err
}

// volumeByKey memoizes a user-volume lookup under an arbitrary key
// (volume ID, or userID+label for label lookups).
func (c *Cache) volumeByKey(ctx context.Context, key string, fetch func(context.Context) (*models.UserVolume, error)) (*models.UserVolume, error) {
	if c == nil {
		return fetch(ctx)
	}

	c.mu.Lock()
	entry, ok := c.volumes[key]
	c.mu.Unlock()
	if ok {
		return entry.value, entry.err
	}

	volume, err := fetch(ctx)

	c.mu.Lock()
	c.volumes[key] = cacheEntry[*models.UserVolume]{value: volume, err: err}
	c.mu.Unlock()

	return volume, err
}
