package service

import (
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/ultraboard/internal/metrics"
)

// ChartCache provides in-memory caching for computed chart datasets.
// Keys embed the snapshot ID, so entries from a previous edition load
// can never be served after a switch; they simply stop being asked
// for and age out.
type ChartCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewChartCache creates a chart cache with the given entry lifetime
// and size bound.
func NewChartCache(ttl time.Duration, maxSize int) *ChartCache {
	return &ChartCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached dataset, or nil on a miss.
func (cc *ChartCache) Get(key string) *ChartDataset {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if entry, found := cc.cache.Get(key); found {
		cc.hitCount++
		cc.updateMetrics()
		if ds, ok := entry.(*ChartDataset); ok {
			return ds
		}
	}

	cc.missCount++
	cc.updateMetrics()
	return nil
}

// Set stores a computed dataset.
func (cc *ChartCache) Set(key string, ds *ChartDataset) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.cache.ItemCount() >= cc.maxSize {
		cc.cache.DeleteExpired()
	}
	cc.cache.Set(key, ds, cc.ttl)
}

// InvalidateSnapshot drops every entry computed against the given
// snapshot ID.
func (cc *ChartCache) InvalidateSnapshot(snapshotID string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	prefix := snapshotID + ":"
	for k := range cc.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			cc.cache.Delete(k)
		}
	}
}

// Stats returns hit/miss counters and the current entry count.
func (cc *ChartCache) Stats() (hits, misses uint64, size int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.hitCount, cc.missCount, cc.cache.ItemCount()
}

func (cc *ChartCache) updateMetrics() {
	total := cc.hitCount + cc.missCount
	if total == 0 {
		return
	}
	metrics.UpdateChartCacheHitRatio(float64(cc.hitCount) / float64(total))
}
