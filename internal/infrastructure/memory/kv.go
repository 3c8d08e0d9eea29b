// Package memory provides an in-memory credential store, used in tests and
// single-node development runs.
package memory

import (
	"context"
	"sync"

	"github.com/trackassure/compliance-api/internal/domain/repository"
)

var _ repository.KVStore = (*KV)(nil)

// KV is a mutex-guarded map implementing the credential-store port.
type KV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKV builds an empty store.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// Get returns the stored value; ok is false when the key is absent.
func (s *KV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores a value.
func (s *KV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *KV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len reports the number of stored records (test helper).
func (s *KV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
