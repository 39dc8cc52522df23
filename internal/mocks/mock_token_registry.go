package mocks

import (
	"context"
	"sync"

	"github.com/you/localhub/domain"
)

// MockTokenRegistry implements domain.TokenRegistry interface for testing.
// Every call is recorded by method name; arguments go to Args.
type MockTokenRegistry struct {
	StoreFunc   func(ctx context.Context, token *domain.PushToken) error
	RestoreFunc func(ctx context.Context) error

	mu      sync.Mutex
	calls   []string
	Args    []string
	current *domain.PushToken
}

// NewMockTokenRegistry creates a new MockTokenRegistry with default behaviors
func NewMockTokenRegistry() *MockTokenRegistry {
	return &MockTokenRegistry{}
}

func (m *MockTokenRegistry) record(name, arg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	m.Args = append(m.Args, arg)
}

// Calls returns the recorded method names in order
func (m *MockTokenRegistry) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockTokenRegistry) OnPermissionGranted(ctx context.Context) {
	m.record("OnPermissionGranted", "")
}

func (m *MockTokenRegistry) OnTokenRefreshed(ctx context.Context, token string) {
	m.record("OnTokenRefreshed", token)
}

func (m *MockTokenRegistry) Store(ctx context.Context, token *domain.PushToken) error {
	m.record("Store", token.Value)
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, token)
	}
	m.mu.Lock()
	m.current = token.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MockTokenRegistry) Associate(ctx context.Context, userID string) {
	m.record("Associate", userID)
}

func (m *MockTokenRegistry) Disassociate(ctx context.Context) {
	m.record("Disassociate", "")
}

func (m *MockTokenRegistry) CurrentToken() *domain.PushToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

func (m *MockTokenRegistry) Restore(ctx context.Context) error {
	m.record("Restore", "")
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil
}

func (m *MockTokenRegistry) Resume(ctx context.Context) {
	m.record("Resume", "")
}

// Compile-time interface compliance verification
var _ domain.TokenRegistry = (*MockTokenRegistry)(nil)
