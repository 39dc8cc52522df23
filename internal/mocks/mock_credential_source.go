package mocks

import (
	"context"
	"sync/atomic"

	"github.com/you/localhub/domain"
)

// MockCredentialSource implements domain.CredentialSource interface for testing
type MockCredentialSource struct {
	FetchCredentialsFunc func(ctx context.Context) (*domain.CredentialBundle, error)

	calls atomic.Int32
}

// NewMockCredentialSource creates a source that always returns bundle
func NewMockCredentialSource(bundle *domain.CredentialBundle) *MockCredentialSource {
	return &MockCredentialSource{
		FetchCredentialsFunc: func(ctx context.Context) (*domain.CredentialBundle, error) {
			return bundle, nil
		},
	}
}

// FetchCredentials fetches the credential bundle
func (m *MockCredentialSource) FetchCredentials(ctx context.Context) (*domain.CredentialBundle, error) {
	m.calls.Add(1)
	if m.FetchCredentialsFunc != nil {
		return m.FetchCredentialsFunc(ctx)
	}
	// Default behavior: nothing configured on the backend
	return &domain.CredentialBundle{}, nil
}

// Calls returns how many times FetchCredentials was invoked
func (m *MockCredentialSource) Calls() int {
	return int(m.calls.Load())
}

// Compile-time interface compliance verification
var _ domain.CredentialSource = (*MockCredentialSource)(nil)
