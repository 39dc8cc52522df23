package mocks

import (
	"context"
	"sync"

	"github.com/you/localhub/domain"
)

// MockPushProvider implements domain.PushProvider interface for testing
type MockPushProvider struct {
	CurrentTokenFunc         func(ctx context.Context) (string, error)
	SetExternalUserIDFunc    func(ctx context.Context, userID string) error
	RemoveExternalUserIDFunc func(ctx context.Context) error
	ClearNotificationsFunc   func(ctx context.Context) error

	mu             sync.Mutex
	ExternalUserID string
	Cleared        int
}

// NewMockPushProvider creates a provider whose current token is token
func NewMockPushProvider(token string) *MockPushProvider {
	return &MockPushProvider{
		CurrentTokenFunc: func(ctx context.Context) (string, error) {
			return token, nil
		},
	}
}

// CurrentToken returns the device push token
func (m *MockPushProvider) CurrentToken(ctx context.Context) (string, error) {
	if m.CurrentTokenFunc != nil {
		return m.CurrentTokenFunc(ctx)
	}
	return "", domain.ErrTokenUnavailable
}

// SetExternalUserID associates the device with userID
func (m *MockPushProvider) SetExternalUserID(ctx context.Context, userID string) error {
	if m.SetExternalUserIDFunc != nil {
		if err := m.SetExternalUserIDFunc(ctx, userID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExternalUserID = userID
	return nil
}

// RemoveExternalUserID clears the device association
func (m *MockPushProvider) RemoveExternalUserID(ctx context.Context) error {
	if m.RemoveExternalUserIDFunc != nil {
		if err := m.RemoveExternalUserIDFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExternalUserID = ""
	return nil
}

// ClearNotifications dismisses delivered notifications
func (m *MockPushProvider) ClearNotifications(ctx context.Context) error {
	if m.ClearNotificationsFunc != nil {
		if err := m.ClearNotificationsFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleared++
	return nil
}

// Compile-time interface compliance verification
var _ domain.PushProvider = (*MockPushProvider)(nil)
