package mocks

import (
	"context"

	"github.com/you/localhub/domain"
)

// MockPushTokenRepository implements domain.PushTokenRepository interface for testing
type MockPushTokenRepository struct {
	SaveFunc func(ctx context.Context, userID, token string) error
	FindFunc func(ctx context.Context, userID string) (string, bool, error)
}

// Save stores a token
func (m *MockPushTokenRepository) Save(ctx context.Context, userID, token string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, token)
	}
	return nil
}

// Find looks a token up
func (m *MockPushTokenRepository) Find(ctx context.Context, userID string) (string, bool, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	// Default behavior: not found
	return "", false, nil
}

// Compile-time interface compliance verification
var _ domain.PushTokenRepository = (*MockPushTokenRepository)(nil)
