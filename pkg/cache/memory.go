package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data     []byte
	expireAt time.Time // zero means no expiry
	accessed time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// MemoryCache keeps snapshots in process memory with LRU eviction. It is the
// whole series cache when Redis is disabled and the L1 layer otherwise; the
// bound matters because one entry is a full multi-year candle snapshot.
type MemoryCache struct {
	mutex         sync.Mutex
	entries       map[string]*memoryEntry
	maxSize       int
	cleanupTicker *time.Ticker
}

// NewMemoryCache creates an in-memory snapshot cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		entries:       make(map[string]*memoryEntry),
		maxSize:       cfg.MaxSize,
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
	}

	go mc.cleanupExpired()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if _, exists := mc.entries[key]; !exists && len(mc.entries) >= mc.maxSize {
		mc.evictLRU()
	}

	now := time.Now()
	entry := &memoryEntry{data: data, accessed: now}
	if expiration > 0 {
		entry.expireAt = now.Add(expiration)
	}
	mc.entries[key] = entry
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	entry, exists := mc.entries[key]
	if !exists || entry.expired(time.Now()) {
		if exists {
			delete(mc.entries, key)
		}
		return ErrCacheMiss
	}

	entry.accessed = time.Now()
	return decode(entry.data, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.entries, key)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := time.Now()
	for _, key := range keys {
		if entry, ok := mc.entries[key]; ok && !entry.expired(now) {
			return true, nil
		}
	}
	return false, nil
}

// evictLRU drops the least recently read entry. Caller holds the lock.
func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range mc.entries {
		if oldestKey == "" || entry.accessed.Before(oldestTime) {
			oldestTime = entry.accessed
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(mc.entries, oldestKey)
	}
}

func (mc *MemoryCache) cleanupExpired() {
	for range mc.cleanupTicker.C {
		mc.mutex.Lock()
		now := time.Now()
		for key, entry := range mc.entries {
			if entry.expired(now) {
				delete(mc.entries, key)
			}
		}
		mc.mutex.Unlock()
	}
}

// Close stops the cleanup ticker.
func (mc *MemoryCache) Close() error {
	if mc.cleanupTicker != nil {
		mc.cleanupTicker.Stop()
	}
	return nil
}
