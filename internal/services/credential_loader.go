package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// CredentialLoaderImpl implements domain.CredentialLoader.
// The bundle is written at most once per process.
type CredentialLoaderImpl struct {
	source domain.CredentialSource
	clock  domain.Clock
	log    logrus.FieldLogger

	bundle atomic.Pointer[domain.CredentialBundle]
}

// NewCredentialLoader creates a loader backed by the given source
func NewCredentialLoader(source domain.CredentialSource, clock domain.Clock, log logrus.FieldLogger) *CredentialLoaderImpl {
	if clock == nil {
		clock = SystemClock()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CredentialLoaderImpl{
		source: source,
		clock:  clock,
		log:    log.WithField("component", "credential_loader"),
	}
}

// Load issues a single fetch and stores the bundle on success.
// Failures leave the loader not ready; nothing is retried here.
func (l *CredentialLoaderImpl) Load(ctx context.Context) error {
	bundle, err := l.source.FetchCredentials(ctx)
	if err != nil {
		l.log.WithError(err).Errorln("Error loading provider credentials")
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if !bundle.Complete() {
		l.log.Errorln("Failed to load provider credentials: incomplete bundle")
		return domain.ErrCredentialsInvalid
	}

	stored := *bundle
	if !l.bundle.CompareAndSwap(nil, &stored) {
		l.log.Warnln("Provider credentials already loaded, keeping the first bundle")
		return nil
	}

	l.log.Debugln("Provider credentials loaded successfully")
	return nil
}

// Start runs Load in the background
func (l *CredentialLoaderImpl) Start(ctx context.Context) {
	go func() {
		_ = l.Load(ctx)
	}()
}

// IsReady reports whether a bundle has been loaded
func (l *CredentialLoaderImpl) IsReady() bool {
	return l.bundle.Load() != nil
}

// Bundle returns a copy of the loaded bundle
func (l *CredentialLoaderImpl) Bundle() (*domain.CredentialBundle, bool) {
	b := l.bundle.Load()
	if b == nil {
		return nil, false
	}
	c := *b
	return &c, true
}

// AwaitReady waits up to maxAttempts intervals for the bundle to appear
func (l *CredentialLoaderImpl) AwaitReady(ctx context.Context, maxAttempts int, interval time.Duration) (*domain.CredentialBundle, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if b, ok := l.Bundle(); ok {
			return b, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.clock.After(interval):
		}
	}

	if b, ok := l.Bundle(); ok {
		return b, nil
	}

	l.log.WithFields(logrus.Fields{
		"attempts": maxAttempts,
		"interval": interval,
	}).Errorln("Credentials not loaded in time")
	return nil, domain.ErrCredentialsTimeout
}

var _ domain.CredentialLoader = (*CredentialLoaderImpl)(nil)
