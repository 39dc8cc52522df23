package mocks

import (
	"context"
	"sync"

	"github.com/you/localhub/domain"
)

// PushCall records one RemoteSync.Push invocation
type PushCall struct {
	Token  string
	UserID string
	Bearer string
}

// MockRemoteSync implements domain.RemoteSync interface for testing
type MockRemoteSync struct {
	PushFunc func(ctx context.Context, token string, auth *domain.AuthSession) error

	mu    sync.Mutex
	calls []PushCall
}

// NewMockRemoteSync creates a new MockRemoteSync with default behaviors
func NewMockRemoteSync() *MockRemoteSync {
	return &MockRemoteSync{}
}

// Push registers a push token
func (m *MockRemoteSync) Push(ctx context.Context, token string, auth *domain.AuthSession) error {
	call := PushCall{Token: token}
	if auth != nil {
		call.UserID = auth.UserID
		call.Bearer = auth.BearerToken
	}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.PushFunc != nil {
		return m.PushFunc(ctx, token, auth)
	}
	// Default behavior: backend accepts the token
	return nil
}

// Calls returns a copy of the recorded pushes
func (m *MockRemoteSync) Calls() []PushCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PushCall(nil), m.calls...)
}

// Compile-time interface compliance verification
var _ domain.RemoteSync = (*MockRemoteSync)(nil)
