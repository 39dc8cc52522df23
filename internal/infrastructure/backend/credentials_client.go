package backend

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/you/localhub/domain"
)

// CredentialsClient implements domain.CredentialSource against the backend
type CredentialsClient struct {
	client   *resty.Client
	sessions domain.SessionSource
}

// NewCredentialsClient creates a credential source. sessions may be nil; when a
// session is present its bearer token is sent.
func NewCredentialsClient(client *resty.Client, sessions domain.SessionSource) *CredentialsClient {
	return &CredentialsClient{client: client, sessions: sessions}
}

// FetchCredentials implements domain.CredentialSource
func (c *CredentialsClient) FetchCredentials(ctx context.Context) (*domain.CredentialBundle, error) {
	var bundle domain.CredentialBundle

	req := c.client.R().
		SetContext(ctx).
		SetResult(&bundle)

	if c.sessions != nil {
		if session, ok := c.sessions.Current(ctx); ok {
			req.SetAuthToken(session.BearerToken)
		}
	}

	resp, err := req.Get(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("credentials request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("credentials request failed: %s", resp.Status())
	}
	return &bundle, nil
}

var _ domain.CredentialSource = (*CredentialsClient)(nil)
