package memory

import (
	"context"
	"sync"

	"ailearn-quiz-service/internal/domain"
)

// KVStore is an in-memory implementation of app.KeyValueStore. A byte
// capacity can be set to emulate quota-limited stores; writes that would push
// the total payload past it fail with domain.ErrQuotaExceeded.
type KVStore struct {
	mu       sync.RWMutex
	data     map[string]string
	capacity int // total bytes across keys and values; 0 means unlimited
	used     int
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// NewKVStoreWithCapacity bounds the store to capacity bytes.
func NewKVStoreWithCapacity(capacity int) *KVStore {
	return &KVStore{data: make(map[string]string), capacity: capacity}
}

func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projected := s.used + len(key) + len(value)
	if existing, ok := s.data[key]; ok {
		projected -= len(key) + len(existing)
	}
	if s.capacity > 0 && projected > s.capacity {
		return domain.ErrQuotaExceeded
	}

	s.data[key] = value
	s.used = projected
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[key]; ok {
		s.used -= len(key) + len(existing)
		delete(s.data, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
