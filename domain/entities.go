package domain

import "time"

// CredentialBundle holds the verification provider credentials served by the backend
type CredentialBundle struct {
	AccountSID       string `json:"accountSid"`
	AuthToken        string `json:"authToken"`
	VerifyServiceSID string `json:"verifyServiceSid"`
}

// Complete reports whether every field needed to talk to the provider is present
func (b *CredentialBundle) Complete() bool {
	return b != nil && b.AccountSID != "" && b.AuthToken != "" && b.VerifyServiceSID != ""
}

// VerificationStatus is the provider-side state of a verification session
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationCanceled VerificationStatus = "canceled"
	VerificationDenied   VerificationStatus = "denied"
)

// VerificationChannelSMS is the only delivery channel used for codes
const VerificationChannelSMS = "sms"

// VerificationResult represents a successful send or check outcome
type VerificationResult struct {
	Phone   string
	Status  VerificationStatus
	Message string
}

// PushToken represents the device push registration token and its owner
type PushToken struct {
	Value       string    `json:"value"`
	OwnerUserID *string   `json:"owner_user_id,omitempty"`
	CapturedAt  time.Time `json:"captured_at"`
}

// Owner returns the owner user id or an empty string
func (t *PushToken) Owner() string {
	if t == nil || t.OwnerUserID == nil {
		return ""
	}
	return *t.OwnerUserID
}

// Clone returns a deep copy so callers never share the owner pointer
func (t *PushToken) Clone() *PushToken {
	if t == nil {
		return nil
	}
	c := *t
	if t.OwnerUserID != nil {
		owner := *t.OwnerUserID
		c.OwnerUserID = &owner
	}
	return &c
}

// AuthSession represents the bearer credential of the signed-in user
type AuthSession struct {
	UserID      string `json:"user_id"`
	BearerToken string `json:"bearer_token"`
}

// Valid reports whether the session can authorize backend calls
func (s *AuthSession) Valid() bool {
	return s != nil && s.BearerToken != ""
}

// NavigationKind identifies where a notification click should lead
type NavigationKind string

const (
	NavigateChat                 NavigationKind = "chat"
	NavigateGenericNotifications NavigationKind = "generic_notifications"
)

// NavigationIntent represents the screen a notification click resolves to
type NavigationIntent struct {
	Kind     NavigationKind `json:"kind"`
	TargetID string         `json:"target_id,omitempty"`
}
