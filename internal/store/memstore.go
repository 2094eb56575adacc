package store

import (
	"sync"

	"github.com/vaiellony/key-value-db/pkg/kv"
)

// MemStore is an in-memory implementation of the kv.Store interface.
// It uses a map protected by a RWMutex for thread-safe operations.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// Compile-time check to ensure MemStore implements kv.Store.
var _ kv.Store = (*MemStore)(nil)

// NewMemStore creates and returns a new MemStore instance.
func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string]any),
	}
}

// Get retrieves a value by key from the store.
// Returns the value and true if found, nil and false otherwise.
func (s *MemStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// Set stores a key-value pair in the store.
// Returns the replaced value and true if the key already existed.
func (s *MemStore) Set(key string, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[key]
	s.data[key] = value
	return prev, existed
}

// Delete removes a key from the store.
// Returns the removed value and true if the key existed.
func (s *MemStore) Delete(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, existed := s.data[key]
	if existed {
		delete(s.data, key)
	}
	return val, existed
}

// Len reports the number of entries currently held.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
