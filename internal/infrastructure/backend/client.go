package backend

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	credentialsPath = "/api/twilio/config"
	pushTokenPath   = "/api/users/push-token"
)

// ClientConfig configures the backend HTTP client
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
	// Logger receives resty's retry and transport warnings; nil means the standard logger
	Logger logrus.FieldLogger
}

// NewRestyClient builds the shared resty client for backend calls
func NewRestyClient(cfg ClientConfig) *resty.Client {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(log.WithField("component", "resty"))

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount)
		if cfg.RetryWait > 0 {
			client.SetRetryWaitTime(cfg.RetryWait)
		}
	}
	return client
}
