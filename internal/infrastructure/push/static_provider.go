package push

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// StaticProvider is a push provider for hosts without a native SDK (CLI, dev).
// The token is supplied by the host and the external user id is only recorded.
type StaticProvider struct {
	appID string
	log   logrus.FieldLogger

	mu             sync.Mutex
	token          string
	externalUserID string
}

// NewStaticProvider creates a provider for appID returning token
func NewStaticProvider(appID, token string, log logrus.FieldLogger) *StaticProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StaticProvider{
		appID: appID,
		token: token,
		log:   log.WithFields(logrus.Fields{"component": "push_provider", "app_id": appID}),
	}
}

// SetToken replaces the token the provider reports
func (p *StaticProvider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
}

// CurrentToken implements domain.PushProvider
func (p *StaticProvider) CurrentToken(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, nil
}

// SetExternalUserID implements domain.PushProvider
func (p *StaticProvider) SetExternalUserID(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.externalUserID = userID
	p.log.WithField("user_id", userID).Debugln("External user id set")
	return nil
}

// RemoveExternalUserID implements domain.PushProvider
func (p *StaticProvider) RemoveExternalUserID(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.externalUserID = ""
	p.log.Debugln("External user id removed")
	return nil
}

// ClearNotifications implements domain.PushProvider
func (p *StaticProvider) ClearNotifications(context.Context) error {
	p.log.Debugln("Notifications cleared")
	return nil
}

// ExternalUserID returns the recorded external user id
func (p *StaticProvider) ExternalUserID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.externalUserID
}

var _ domain.PushProvider = (*StaticProvider)(nil)
