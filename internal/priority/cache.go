package priority

import (
	"maps"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/metrics"
)

// orderCache keeps computed orders per (pool signature, threshold, mode).
// Overrides are never cached; they belong to the preference store.
type orderCache struct {
	lru *expirable.LRU[string, domain.PriorityOrder]
}

func newOrderCache(size int, ttl time.Duration) *orderCache {
	return &orderCache{
		lru: expirable.NewLRU[string, domain.PriorityOrder](size, nil, ttl),
	}
}

func cacheKey(signature string, minSetPrice float64, mode domain.PriorityMode) string {
	return signature + "#" + strconv.FormatFloat(minSetPrice, 'f', -1, 64) + "#" + string(mode)
}

// Get returns a copy so callers cannot corrupt the cached order.
func (c *orderCache) Get(key string) (domain.PriorityOrder, bool) {
	order, ok := c.lru.Get(key)
	if !ok {
		metrics.PriorityCacheTotal.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}
	metrics.PriorityCacheTotal.WithLabelValues(metrics.ResultHit).Inc()
	return maps.Clone(order), true
}

func (c *orderCache) Set(key string, order domain.PriorityOrder) {
	c.lru.Add(key, maps.Clone(order))
}

func (c *orderCache) Len() int {
	return c.lru.Len()
}

func (c *orderCache) Clear() {
	c.lru.Purge()
}
