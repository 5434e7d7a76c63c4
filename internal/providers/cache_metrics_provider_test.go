package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCacheProvider_HitAndMiss(t *testing.T) {
	metrics := &testMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, 5*time.Second), &testLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, c)

	_, ok := c.Get("totals:1")
	assert.False(t, ok)
	c.Set("totals:1", []byte("{}"))
	_, ok = c.Get("totals:1")
	assert.True(t, ok)

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_DisabledCountsNothing(t *testing.T) {
	metrics := &testMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, 5*time.Second), &testLogger{}, metrics)
	assert.IsType(t, &noopCache{}, c)

	_, _ = c.Get("totals:1")
	assert.Equal(t, 0, metrics.misses)
}
