package mocks

import (
	"context"
	"sync"

	"github.com/you/localhub/domain"
)

// MockSessionStore implements domain.SessionStore interface for testing
type MockSessionStore struct {
	SetFunc   func(ctx context.Context, session *domain.AuthSession) error
	ClearFunc func(ctx context.Context) error

	mu      sync.Mutex
	session *domain.AuthSession
}

// NewMockSessionStore creates a store holding session; nil means logged out
func NewMockSessionStore(session *domain.AuthSession) *MockSessionStore {
	return &MockSessionStore{session: session}
}

// Current returns the stored session
func (m *MockSessionStore) Current(ctx context.Context) (*domain.AuthSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Valid() {
		return nil, false
	}
	s := *m.session
	return &s, true
}

// Set stores session
func (m *MockSessionStore) Set(ctx context.Context, session *domain.AuthSession) error {
	if m.SetFunc != nil {
		if err := m.SetFunc(ctx, session); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	return nil
}

// Clear removes the stored session
func (m *MockSessionStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		if err := m.ClearFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
