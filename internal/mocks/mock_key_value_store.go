package mocks

import (
	"context"
	"time"

	"github.com/you/localhub/domain"
)

// MockKeyValueStore implements domain.KeyValueStore interface for testing
// failure paths; use memorystore for the happy path.
type MockKeyValueStore struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DelFunc func(ctx context.Context, key string) error
}

// Get reads key
func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, false, nil
}

// Set writes key
func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return nil
}

// Del removes key
func (m *MockKeyValueStore) Del(ctx context.Context, key string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.KeyValueStore = (*MockKeyValueStore)(nil)
