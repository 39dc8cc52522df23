package mocks

import (
	"context"
	"sync"

	"github.com/you/localhub/domain"
)

// VerificationCall records one provider invocation
type VerificationCall struct {
	ServiceSID string
	To         string
	Arg        string // channel for start, code for check
}

// MockVerificationProvider implements domain.VerificationProvider interface for testing
type MockVerificationProvider struct {
	StartVerificationFunc func(ctx context.Context, serviceSID, to, channel string) (domain.VerificationStatus, error)
	CheckVerificationFunc func(ctx context.Context, serviceSID, to, code string) (domain.VerificationStatus, error)

	mu     sync.Mutex
	Starts []VerificationCall
	Checks []VerificationCall
}

// NewMockVerificationProvider creates a provider that starts pending and approves code
func NewMockVerificationProvider(code string) *MockVerificationProvider {
	return &MockVerificationProvider{
		StartVerificationFunc: func(ctx context.Context, serviceSID, to, channel string) (domain.VerificationStatus, error) {
			return domain.VerificationPending, nil
		},
		CheckVerificationFunc: func(ctx context.Context, serviceSID, to, c string) (domain.VerificationStatus, error) {
			if c == code {
				return domain.VerificationApproved, nil
			}
			return domain.VerificationPending, nil
		},
	}
}

// StartVerification starts a verification
func (m *MockVerificationProvider) StartVerification(ctx context.Context, serviceSID, to, channel string) (domain.VerificationStatus, error) {
	m.mu.Lock()
	m.Starts = append(m.Starts, VerificationCall{ServiceSID: serviceSID, To: to, Arg: channel})
	m.mu.Unlock()
	if m.StartVerificationFunc != nil {
		return m.StartVerificationFunc(ctx, serviceSID, to, channel)
	}
	return domain.VerificationPending, nil
}

// CheckVerification checks a code
func (m *MockVerificationProvider) CheckVerification(ctx context.Context, serviceSID, to, code string) (domain.VerificationStatus, error) {
	m.mu.Lock()
	m.Checks = append(m.Checks, VerificationCall{ServiceSID: serviceSID, To: to, Arg: code})
	m.mu.Unlock()
	if m.CheckVerificationFunc != nil {
		return m.CheckVerificationFunc(ctx, serviceSID, to, code)
	}
	return domain.VerificationPending, nil
}

// Compile-time interface compliance verification
var _ domain.VerificationProvider = (*MockVerificationProvider)(nil)
