package domain

import (
	"errors"
	"fmt"
)

// Credential errors
var (
	ErrNotInitialized     = errors.New("verification service not initialized")
	ErrCredentialsTimeout = errors.New("timed out waiting for credentials")
	ErrCredentialsInvalid = errors.New("credential bundle is incomplete")
)

// Verification errors
var (
	ErrInvalidCode            = errors.New("invalid verification code")
	ErrVerificationNotPending = errors.New("failed to send verification code")
	ErrResendThrottled        = errors.New("verification code resend limit exceeded")
)

// Push token errors
var (
	ErrNoAuthSession    = errors.New("no auth session available")
	ErrTokenUnavailable = errors.New("push token unavailable")
	ErrDispatcherClosed = errors.New("event dispatcher closed")
)

// VerificationError is returned when the provider rejects or fails a send/check call
type VerificationError struct {
	Op     string
	Phone  string
	Status VerificationStatus
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s %s: status %q: %v", e.Op, e.Phone, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Phone, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// SyncError is returned when the backend refuses or never receives a push token registration
type SyncError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SyncError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("push token registration failed: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("push token registration failed: %v", e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
