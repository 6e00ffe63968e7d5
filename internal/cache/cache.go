// Package cache provides the shared TTL cache that every fetch result
// flows through. The store is injected, never ambient, so tests and
// independent instances can each carry their own.
package cache

import (
	"sync"
	"time"
)

// Store is the minimal keyed TTL contract. Get reports a miss when the
// key is absent or the entry is at least ttl old; stale data is never
// returned. Implementations must not hold internal locks across I/O.
type Store interface {
	Get(key string, ttl time.Duration) (interface{}, bool)
	Put(key string, data interface{})
}

type entry struct {
	data interface{}
	ts   time.Time
}

// Memory is the in-process Store. A single short-held mutex serializes
// access; both paths are pure map reads/writes. There is no eviction
// beyond TTL staleness since the key space is small and fixed.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached data for key if it is younger than ttl.
func (m *Memory) Get(key string, ttl time.Duration) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.ts) >= ttl {
		return nil, false
	}
	return e.data, true
}

// Put stores data under key with the current timestamp.
func (m *Memory) Put(key string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{data: data, ts: m.now()}
}

// Len reports the number of entries, fresh or stale.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
