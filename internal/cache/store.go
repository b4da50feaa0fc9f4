// Package cache provides the in-process TTL cache shared by the corpus
// snapshot and the per-query page results.
package cache

import (
	"sort"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
	expiresAt time.Time
}

// expired reports whether the entry is past its TTL at now. An entry written
// with a zero or negative TTL expires at its own creation instant, so it is
// never readable.
func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// Store is a string-keyed cache with per-entry TTL and a hard capacity bound.
// Inserting a new key into a full store evicts exactly one entry, the one
// with the oldest insertion time; overwriting an existing key never evicts.
// Expired entries are treated as absent and removed lazily on read;
// SweepExpired exists for periodic cleanup independent of read traffic.
// All methods are safe for concurrent use.
type Store[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	capacity int
}

// New creates a store bounded to capacity entries. A capacity below one is
// raised to one.
func New[V any](capacity int) *Store[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Store[V]{
		entries:  make(map[string]entry[V], capacity),
		capacity: capacity,
	}
}

// Get returns the value stored under key. A missing or expired entry is a
// miss, never an error.
func (s *Store[V]) Get(key string) (V, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(now) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl. It always succeeds: an existing entry
// for the same key is overwritten, and when the store is full one oldest
// entry is evicted to make room.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[key] = entry[V]{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

// Has reports whether key holds an unexpired entry, removing it if expired.
func (s *Store[V]) Has(key string) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if e.expired(now) {
		delete(s.entries, key)
		return false
	}
	return true
}

// Delete removes key unconditionally.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear removes every entry.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V], s.capacity)
}

// Len returns the number of physically stored entries, expired or not.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SweepExpired removes every entry past its TTL and returns how many were
// removed. Intended to run on a fixed interval so peak memory stays bounded
// even when reads are rare.
func (s *Store[V]) SweepExpired() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store[V]) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, e := range s.entries {
		if !found || e.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.createdAt
			found = true
		}
	}
	if found {
		delete(s.entries, oldestKey)
	}
}

// EntryStat describes one live entry for diagnostics.
type EntryStat struct {
	Key       string
	Age       time.Duration
	ExpiresIn time.Duration
}

// Stats is a point-in-time snapshot of the store.
type Stats struct {
	Size     int
	Capacity int
	Entries  []EntryStat
}

// Stats returns a snapshot of the store, entries sorted by key. ExpiresIn is
// negative for entries that have expired but not yet been removed.
func (s *Store[V]) Stats() Stats {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Size:     len(s.entries),
		Capacity: s.capacity,
		Entries:  make([]EntryStat, 0, len(s.entries)),
	}
	for key, e := range s.entries {
		stats.Entries = append(stats.Entries, EntryStat{
			Key:       key,
			Age:       now.Sub(e.createdAt),
			ExpiresIn: e.expiresAt.Sub(now),
		})
	}
	sort.Slice(stats.Entries, func(i, j int) bool {
		return stats.Entries[i].Key < stats.Entries[j].Key
	})
	return stats
}
