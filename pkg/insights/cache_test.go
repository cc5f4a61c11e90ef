package insights

import (
	"testing"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestTTLCache_ExpiresWithoutRealTimePassing(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)}
	cache := NewTTLCache[string](5*time.Minute, clock)
	cache.Set(1, "fresh")

	// when still inside the TTL
	value, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "fresh", value)

	// when the clock advances past the TTL
	clock.Advance(5*time.Minute + time.Second)

	// then the entry is gone
	_, ok = cache.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestTTLCache_SetRefreshesExpiry(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)}
	cache := NewTTLCache[string](5*time.Minute, clock)
	cache.Set(1, "first")
	clock.Advance(4 * time.Minute)

	// when re-set near the end of the window
	cache.Set(1, "second")
	clock.Advance(4 * time.Minute)

	// then the refreshed entry is still alive
	value, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestTTLCache_Invalidate(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)}
	cache := NewTTLCache[string](5*time.Minute, clock)
	cache.Set(1, "workspace one")
	cache.Set(2, "workspace two")

	// when
	cache.Invalidate(1)

	// then only the invalidated workspace is dropped
	_, ok := cache.Get(1)
	assert.False(t, ok)
	value, ok := cache.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "workspace two", value)
}
