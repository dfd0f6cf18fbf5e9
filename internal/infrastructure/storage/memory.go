package storage

import (
	"context"
	"sync"
	"time"

	"github.com/tdpro/backend/internal/domain"
)

// memoryItem represents a single stored value with optional expiration
type memoryItem struct {
	Value      []byte
	Expiration time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.Expiration.IsZero() && now.After(i.Expiration)
}

// MemoryStore is a thread-safe in-memory key-value store with optional TTL
type MemoryStore struct {
	data  map[string]memoryItem
	ttl   time.Duration
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a new in-memory store. A zero ttl keeps values forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		data: make(map[string]memoryItem),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	// Expired entries are swept every 10 minutes
	if ttl > 0 {
		go store.cleanupExpired(10 * time.Minute)
	}

	return store
}

// Get retrieves a copy of the value stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.data[key]
	if !exists || item.expired(time.Now()) {
		return nil, domain.ErrNotFound
	}

	return append([]byte(nil), item.Value...), nil
}

// Set replaces the value under key. Readers never observe a partial value.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item := memoryItem{Value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		item.Expiration = time.Now().Add(s.ttl)
	}
	s.data[key] = item

	return nil
}

// Delete removes a value
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// cleanupExpired removes expired entries periodically until Close
func (s *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for key, item := range s.data {
		if item.expired(now) {
			delete(s.data, key)
		}
	}
}

// Size returns the current number of items (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}
