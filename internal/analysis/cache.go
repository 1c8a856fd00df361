package analysis

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// CacheKey identifies one CVA computation. Floats are keyed by their IEEE-754
// bit patterns so NaN and -0 behave deterministically and map hashing stays
// honest.
type CacheKey struct {
	Pair         string
	ZoneCount    int
	DecayBits    uint64
	Ranges       string
	PriceMinBits uint64
	PriceMaxBits uint64
}

func newCacheKey(pair string, zoneCount int, decay float64, ranges []models.IndexRange, priceMin, priceMax float64) CacheKey {
	var sb strings.Builder
	for _, r := range ranges {
		fmt.Fprintf(&sb, "%d:%d;", r.Start, r.End)
	}
	return CacheKey{
		Pair:         pair,
		ZoneCount:    zoneCount,
		DecayBits:    math.Float64bits(decay),
		Ranges:       sb.String(),
		PriceMinBits: math.Float64bits(priceMin),
		PriceMaxBits: math.Float64bits(priceMax),
	}
}

// ResultCache memoizes CVA computations. The mutex covers only map lookup and
// insert; folding runs outside any lock, so two concurrent misses on the same
// key both compute and the last insert wins. The one-job-per-pair discipline
// upstream makes that race rare in practice, and it is harmless when it
// happens.
type ResultCache struct {
	mu      sync.Mutex
	entries map[CacheKey]*models.CVACore
	access  map[CacheKey]time.Time
	maxSize int
}

// NewResultCache creates a cache evicting least-recently-used entries beyond
// maxSize. maxSize <= 0 means unbounded.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		entries: make(map[CacheKey]*models.CVACore),
		access:  make(map[CacheKey]time.Time),
		maxSize: maxSize,
	}
}

// GetCVAResults returns the memoized CVA for bit-identical parameters, or
// folds the candles and stores the result. Hits share the same underlying
// allocation.
func (c *ResultCache) GetCVAResults(series *models.OhlcvTimeSeries, ranges []models.IndexRange, params Params, priceMin, priceMax float64) (*models.CVACore, error) {
	key := newCacheKey(series.Pair.Name, params.ZoneCount, params.TimeDecayFactor, ranges, priceMin, priceMax)

	c.mu.Lock()
	if cva, ok := c.entries[key]; ok {
		c.access[key] = time.Now()
		c.mu.Unlock()
		return cva, nil
	}
	c.mu.Unlock()

	cva, err := FoldCandles(series, ranges, params, priceMin, priceMax)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}
	c.entries[key] = cva
	c.access[key] = time.Now()
	c.mu.Unlock()
	return cva, nil
}

// Len reports the number of cached computations.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResultCache) evictLRU() {
	var oldestKey CacheKey
	var oldestTime time.Time
	first := true
	for key, at := range c.access {
		if first || at.Before(oldestTime) {
			oldestKey, oldestTime = key, at
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
		delete(c.access, oldestKey)
	}
}
