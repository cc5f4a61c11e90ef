package insights

import (
	"sync"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/utils"
)

// Cache is a read-through store for computed insights, keyed by workspace.
type Cache[T any] interface {
	Get(workspaceId int) (T, bool)
	Set(workspaceId int, data T)
	Invalidate(workspaceId int)
	Size() int
}

type cacheItem[T any] struct {
	data      T
	expiresAt time.Time
}

// TTLCache expires entries a fixed duration after they were set. Time comes
// from the injected clock so expiry is testable.
type TTLCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock utils.Clock
	items map[int]cacheItem[T]
}

func NewTTLCache[T any](ttl time.Duration, clock utils.Clock) *TTLCache[T] {
	return &TTLCache[T]{
		ttl:   ttl,
		clock: clock,
		items: make(map[int]cacheItem[T]),
	}
}

func (c *TTLCache[T]) Get(workspaceId int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, exists := c.items[workspaceId]
	if !exists {
		return zero, false
	}
	if c.clock.Now().After(item.expiresAt) {
		delete(c.items, workspaceId)
		return zero, false
	}
	return item.data, true
}

func (c *TTLCache[T]) Set(workspaceId int, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[workspaceId] = cacheItem[T]{
		data:      data,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

func (c *TTLCache[T]) Invalidate(workspaceId int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, workspaceId)
}

func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
