package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
	"github.com/you/localhub/domain"
)

// verifyAPI is the subset of the Twilio Verify v2 service used here
type verifyAPI interface {
	CreateVerification(serviceSid string, params *verify.CreateVerificationParams) (*verify.VerifyV2Verification, error)
	CreateVerificationCheck(serviceSid string, params *verify.CreateVerificationCheckParams) (*verify.VerifyV2VerificationCheck, error)
}

// TwilioVerifyProvider implements domain.VerificationProvider with Twilio Verify
type TwilioVerifyProvider struct {
	api verifyAPI
}

// NewTwilioVerifyProvider creates a provider authenticated with the bundle's account credentials
func NewTwilioVerifyProvider(bundle *domain.CredentialBundle) (domain.VerificationProvider, error) {
	if !bundle.Complete() {
		return nil, domain.ErrCredentialsInvalid
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: bundle.AccountSID,
		Password: bundle.AuthToken,
	})
	return &TwilioVerifyProvider{api: client.VerifyV2}, nil
}

// StartVerification implements domain.VerificationProvider
func (p *TwilioVerifyProvider) StartVerification(ctx context.Context, serviceSID, to, channel string) (domain.VerificationStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &verify.CreateVerificationParams{}
	params.SetTo(to)
	params.SetChannel(channel)

	v, err := p.api.CreateVerification(serviceSID, params)
	if err != nil {
		return "", fmt.Errorf("failed to create verification: %w", err)
	}
	return statusOf(v.Status), nil
}

// CheckVerification implements domain.VerificationProvider
func (p *TwilioVerifyProvider) CheckVerification(ctx context.Context, serviceSID, to, code string) (domain.VerificationStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(to)
	params.SetCode(code)

	check, err := p.api.CreateVerificationCheck(serviceSID, params)
	if err != nil {
		return "", fmt.Errorf("failed to create verification check: %w", err)
	}
	return statusOf(check.Status), nil
}

func statusOf(s *string) domain.VerificationStatus {
	if s == nil {
		return ""
	}
	return domain.VerificationStatus(*s)
}

var _ domain.VerificationProvider = (*TwilioVerifyProvider)(nil)
