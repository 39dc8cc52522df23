package domain

import (
	"context"
	"time"
)

// CredentialSource fetches the provider credential bundle from the backend
type CredentialSource interface {
	FetchCredentials(ctx context.Context) (*CredentialBundle, error)
}

// CredentialLoader exposes the process-wide credential bundle
type CredentialLoader interface {
	Load(ctx context.Context) error
	Start(ctx context.Context)
	IsReady() bool
	Bundle() (*CredentialBundle, bool)
	AwaitReady(ctx context.Context, maxAttempts int, interval time.Duration) (*CredentialBundle, error)
}

// VerificationProvider wraps the OTP provider's start/check calls
type VerificationProvider interface {
	StartVerification(ctx context.Context, serviceSID, to, channel string) (VerificationStatus, error)
	CheckVerification(ctx context.Context, serviceSID, to, code string) (VerificationStatus, error)
}

// VerificationProviderFactory builds a provider once credentials are known
type VerificationProviderFactory func(bundle *CredentialBundle) (VerificationProvider, error)

// VerificationService defines phone verification operations
type VerificationService interface {
	Initialize(ctx context.Context) error
	SendCode(ctx context.Context, phone string) (*VerificationResult, error)
	CheckCode(ctx context.Context, phone, code string) (*VerificationResult, error)
}

// PushProvider is the device push SDK (token source and external user id holder)
type PushProvider interface {
	CurrentToken(ctx context.Context) (string, error)
	SetExternalUserID(ctx context.Context, userID string) error
	RemoveExternalUserID(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
}

// RemoteSync registers a push token with the backend
type RemoteSync interface {
	Push(ctx context.Context, token string, auth *AuthSession) error
}

// SessionSource provides the current auth session, if any
type SessionSource interface {
	Current(ctx context.Context) (*AuthSession, bool)
}

// SessionStore is a SessionSource that the login/logout flow can update
type SessionStore interface {
	SessionSource
	Set(ctx context.Context, session *AuthSession) error
	Clear(ctx context.Context) error
}

// KeyValueStore is the local persistent storage used for tokens and sessions
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// TokenRegistry defines push token lifecycle operations
type TokenRegistry interface {
	OnPermissionGranted(ctx context.Context)
	OnTokenRefreshed(ctx context.Context, token string)
	Store(ctx context.Context, token *PushToken) error
	Associate(ctx context.Context, userID string)
	Disassociate(ctx context.Context)
	CurrentToken() *PushToken
	Restore(ctx context.Context) error
	Resume(ctx context.Context)
}

// UISink receives events on the UI side of the native/UI boundary
type UISink interface {
	Ready() bool
	Deliver(name, payload string) error
}

// Announcer emits named events across the native/UI boundary
type Announcer interface {
	Emit(name, payload string)
}

// Clock abstracts time so bounded waits can be tested
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// TokenClaims represents bearer token claims issued by the backend
type TokenClaims struct {
	UserID    string `json:"user_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenService issues and validates backend bearer tokens
type TokenService interface {
	GenerateAccessToken(userID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PushTokenRepository stores registered push tokens on the backend side
type PushTokenRepository interface {
	Save(ctx context.Context, userID, token string) error
	Find(ctx context.Context, userID string) (string, bool, error)
}
