package auth

import (
	"sync"
	"time"
)

// CounterEntry is one fixed-window counter: how many hits so far and when the
// window ends.
type CounterEntry struct {
	Count   int
	Expires time.Time
}

// CounterStore is the storage seam for the rate limiter. The in-memory
// implementation below keeps limits per process instance; a shared external
// counter (e.g. Redis) can be swapped in without touching call sites.
type CounterStore interface {
	Get(key string) (CounterEntry, bool)
	Set(key string, entry CounterEntry)
	Increment(key string) CounterEntry
}

type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]CounterEntry
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{entries: make(map[string]CounterEntry)}
}

func (s *MemoryCounterStore) Get(key string) (CounterEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	return entry, ok
}

func (s *MemoryCounterStore) Set(key string, entry CounterEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

func (s *MemoryCounterStore) Increment(key string) CounterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[key]
	entry.Count++
	s.entries[key] = entry
	return entry
}

// RateLimiter counts requests in discrete, non-overlapping windows per
// (action, client key) pair. Entries are overwritten when their window lapses;
// keys are low-cardinality (action × client IP), which bounds growth.
type RateLimiter struct {
	mu    sync.Mutex
	store CounterStore
	now   func() time.Time
}

func NewRateLimiter(store CounterStore) *RateLimiter {
	return &RateLimiter{store: store, now: time.Now}
}

// Check reports whether a call for the given key is allowed. The first call
// of a window initializes the counter; calls at or past maxAttempts within
// the window are denied without incrementing further.
func (l *RateLimiter) Check(clientKey, action string, maxAttempts int, window time.Duration) bool {
	// Lock around the whole read-check-increment sequence so parallel
	// requests cannot slip past the limit between Get and Increment.
	l.mu.Lock()
	defer l.mu.Unlock()

	key := action + ":" + clientKey
	now := l.now()

	entry, ok := l.store.Get(key)
	if !ok || now.After(entry.Expires) {
		l.store.Set(key, CounterEntry{Count: 1, Expires: now.Add(window)})
		return true
	}

	if entry.Count >= maxAttempts {
		return false
	}

	l.store.Increment(key)
	return true
}
