package backend

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

type pushTokenRequest struct {
	PushToken string `json:"push_token"`
}

// PushTokenClient implements domain.RemoteSync
type PushTokenClient struct {
	client *resty.Client
	log    logrus.FieldLogger
}

// NewPushTokenClient creates the push token registration client
func NewPushTokenClient(client *resty.Client, log logrus.FieldLogger) *PushTokenClient {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PushTokenClient{
		client: client,
		log:    log.WithField("component", "remote_sync"),
	}
}

// Push registers token for the session's user. It does not retry.
func (c *PushTokenClient) Push(ctx context.Context, token string, auth *domain.AuthSession) error {
	if !auth.Valid() {
		return &domain.SyncError{Err: domain.ErrNoAuthSession}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(auth.BearerToken).
		SetBody(pushTokenRequest{PushToken: token}).
		Post(pushTokenPath)

	log := c.log.WithField("user_id", auth.UserID)
	if err != nil {
		syncErr := &domain.SyncError{Err: err}
		log.WithError(syncErr).Errorln("Error registering push token")
		return syncErr
	}
	if resp.IsError() {
		syncErr := &domain.SyncError{StatusCode: resp.StatusCode(), Body: resp.String()}
		log.WithError(syncErr).Errorln("Failed to register push token")
		return syncErr
	}

	log.Debugln("Successfully registered push token")
	return nil
}

var _ domain.RemoteSync = (*PushTokenClient)(nil)
