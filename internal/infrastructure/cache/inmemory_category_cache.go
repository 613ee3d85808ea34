package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
)

var _ ports.CategoryListCache = (*InMemoryCategoryCache)(nil)

// InMemoryCategoryCache caché por proceso, para una sola instancia o desarrollo.
type InMemoryCategoryCache struct {
	mu      sync.RWMutex
	data    []byte
	expires time.Time
	gen     uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryCategoryCache ttl <= 0 significa sin expiración.
func NewInMemoryCategoryCache(ttl time.Duration) *InMemoryCategoryCache {
	return &InMemoryCategoryCache{ttl: ttl, now: time.Now}
}

// Get devuelve una copia del listado si existe y no expiró.
func (c *InMemoryCategoryCache) Get(_ context.Context) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil, false, nil
	}
	if c.ttl > 0 && !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out, true, nil
}

// Generation devuelve el contador de invalidaciones.
func (c *InMemoryCategoryCache) Generation(_ context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen, nil
}

// Set guarda una copia del listado si nadie invalidó desde gen.
func (c *InMemoryCategoryCache) Set(_ context.Context, gen uint64, data []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false, nil
	}
	c.data = append([]byte(nil), data...)
	c.expires = c.now().Add(c.ttl)
	return true, nil
}

// Invalidate vacía la caché y avanza la generación.
func (c *InMemoryCategoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.gen++
	return nil
}
