package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"nutrilog/internal/structures"
)

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, 5*time.Second), &testLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, 5*time.Second), &testLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &testLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_DefaultTTL(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &testLogger{})
	assert.Equal(t, int(defaultCacheTTL.Seconds()), c.(*CacheProvider).ttl)

	c = NewCacheProvider(cacheConfig(true, 1, 100*time.Millisecond), &testLogger{})
	assert.Equal(t, 1, c.(*CacheProvider).ttl)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &testLogger{})

	c.Set("totals:1", []byte(`{"calories":140}`))
	val, ok := c.Get("totals:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"calories":140}`), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &testLogger{})

	_, ok := c.Get("totals:2")
	assert.False(t, ok)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &testLogger{})

	c.Set("k", []byte("v1"))
	c.Set("k", []byte("v2"))
	val, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("totals:7"), unsafeStringToBytes("totals:7"))
}
