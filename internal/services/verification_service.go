package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// VerificationConfig controls phone formatting and credential waiting
type VerificationConfig struct {
	DefaultCountryCode string
	AwaitAttempts      int
	AwaitInterval      time.Duration
	// ResendWindow throttles repeated sends to the same number; zero disables it.
	ResendWindow time.Duration
}

// VerificationServiceImpl implements domain.VerificationService on top of the OTP provider
type VerificationServiceImpl struct {
	loader  domain.CredentialLoader
	factory domain.VerificationProviderFactory
	kv      domain.KeyValueStore
	config  VerificationConfig
	log     logrus.FieldLogger

	mu       sync.Mutex
	provider domain.VerificationProvider
}

// NewVerificationService creates a verification service. kv may be nil when
// config.ResendWindow is zero.
func NewVerificationService(
	loader domain.CredentialLoader,
	factory domain.VerificationProviderFactory,
	kv domain.KeyValueStore,
	config VerificationConfig,
	log logrus.FieldLogger,
) *VerificationServiceImpl {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &VerificationServiceImpl{
		loader:  loader,
		factory: factory,
		kv:      kv,
		config:  config,
		log:     log.WithField("component", "verification"),
	}
}

// Initialize waits for credentials and prepares the provider client
func (s *VerificationServiceImpl) Initialize(ctx context.Context) error {
	bundle, err := s.loader.AwaitReady(ctx, s.config.AwaitAttempts, s.config.AwaitInterval)
	if err != nil {
		s.log.WithError(err).Errorln("Failed to initialize verification: credentials not loaded")
		return err
	}
	if _, err := s.providerFor(bundle); err != nil {
		return err
	}
	s.log.Debugln("Verification initialized successfully")
	return nil
}

// SendCode starts an SMS verification for phone
func (s *VerificationServiceImpl) SendCode(ctx context.Context, phone string) (*domain.VerificationResult, error) {
	bundle, provider, err := s.ready()
	if err != nil {
		return nil, err
	}

	formatted := NormalizePhone(phone, s.config.DefaultCountryCode)
	log := s.log.WithField("phone", formatted)
	log.Debugln("Sending verification code")

	if err := s.checkResend(ctx, formatted); err != nil {
		return nil, err
	}

	status, err := provider.StartVerification(ctx, bundle.VerifyServiceSID, formatted, domain.VerificationChannelSMS)
	if err != nil {
		log.WithError(err).Errorln("Error sending verification code")
		return nil, &domain.VerificationError{Op: "send code", Phone: formatted, Err: err}
	}
	if status != domain.VerificationPending {
		log.WithField("status", status).Errorln("Verification not pending after send")
		return nil, &domain.VerificationError{Op: "send code", Phone: formatted, Status: status, Err: domain.ErrVerificationNotPending}
	}

	s.markSent(ctx, formatted)

	return &domain.VerificationResult{
		Phone:   formatted,
		Status:  status,
		Message: "Verification code sent successfully to " + formatted,
	}, nil
}

// CheckCode validates a user-supplied code for phone
func (s *VerificationServiceImpl) CheckCode(ctx context.Context, phone, code string) (*domain.VerificationResult, error) {
	bundle, provider, err := s.ready()
	if err != nil {
		return nil, err
	}

	formatted := NormalizePhone(phone, s.config.DefaultCountryCode)
	log := s.log.WithField("phone", formatted)
	log.Debugln("Verifying code")

	status, err := provider.CheckVerification(ctx, bundle.VerifyServiceSID, formatted, code)
	if err != nil {
		log.WithError(err).Errorln("Error verifying code")
		return nil, &domain.VerificationError{Op: "check code", Phone: formatted, Err: err}
	}
	if status != domain.VerificationApproved {
		log.WithField("status", status).Infoln("Verification code rejected")
		return nil, &domain.VerificationError{Op: "check code", Phone: formatted, Status: status, Err: domain.ErrInvalidCode}
	}

	return &domain.VerificationResult{
		Phone:   formatted,
		Status:  status,
		Message: "Phone number verified successfully",
	}, nil
}

// ready fails fast when credentials are absent; it never waits
func (s *VerificationServiceImpl) ready() (*domain.CredentialBundle, domain.VerificationProvider, error) {
	bundle, ok := s.loader.Bundle()
	if !ok {
		return nil, nil, domain.ErrNotInitialized
	}
	provider, err := s.providerFor(bundle)
	if err != nil {
		return nil, nil, err
	}
	return bundle, provider, nil
}

// providerFor builds the provider once; the bundle never rotates
func (s *VerificationServiceImpl) providerFor(bundle *domain.CredentialBundle) (domain.VerificationProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider != nil {
		return s.provider, nil
	}
	provider, err := s.factory(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification provider: %w", err)
	}
	s.provider = provider
	return provider, nil
}

func resendKey(phone string) string {
	return "otp:res:" + phone
}

func (s *VerificationServiceImpl) checkResend(ctx context.Context, phone string) error {
	if s.config.ResendWindow <= 0 || s.kv == nil {
		return nil
	}
	_, found, err := s.kv.Get(ctx, resendKey(phone))
	if err != nil {
		// throttle state is advisory
		s.log.WithError(err).Warnln("Failed to read resend throttle")
		return nil
	}
	if found {
		return &domain.VerificationError{Op: "send code", Phone: phone, Err: domain.ErrResendThrottled}
	}
	return nil
}

func (s *VerificationServiceImpl) markSent(ctx context.Context, phone string) {
	if s.config.ResendWindow <= 0 || s.kv == nil {
		return
	}
	if err := s.kv.Set(ctx, resendKey(phone), []byte("1"), s.config.ResendWindow); err != nil {
		s.log.WithError(err).Warnln("Failed to set resend throttle")
	}
}

var _ domain.VerificationService = (*VerificationServiceImpl)(nil)
