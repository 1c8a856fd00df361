package prices

import (
	"sync"
	"time"
)

// Store is the shared live-price map: written by the websocket stream, read
// by the engine and HTTP handlers. Reads are instantaneous snapshots under a
// read lock, never partial values.
type Store struct {
	mu        sync.RWMutex
	prices    map[string]float64
	updatedAt map[string]time.Time
	suspended bool
}

func NewStore() *Store {
	return &Store{
		prices:    make(map[string]float64),
		updatedAt: make(map[string]time.Time),
	}
}

// Set records a fresh price for a pair. Updates are dropped while the store
// is suspended, so a paused stream cannot move zone occupancy underneath the
// engine.
func (s *Store) Set(pair string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suspended {
		return
	}
	s.prices[pair] = price
	s.updatedAt[pair] = time.Now()
}

// Price returns the last observed price for a pair.
func (s *Store) Price(pair string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[pair]
	return p, ok
}

// UpdatedAt returns when a pair's price was last written.
func (s *Store) UpdatedAt(pair string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.updatedAt[pair]
	return t, ok
}

// Suspend stops accepting price updates until Resume.
func (s *Store) Suspend() {
	s.mu.Lock()
	s.suspended = true
	s.mu.Unlock()
}

// Resume re-enables price updates.
func (s *Store) Resume() {
	s.mu.Lock()
	s.suspended = false
	s.mu.Unlock()
}

// Suspended reports whether updates are currently dropped.
func (s *Store) Suspended() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suspended
}
