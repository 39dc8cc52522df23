package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/localhub/domain"
	httpx "github.com/you/localhub/internal/http"
	"github.com/you/localhub/internal/http/handlers"
	"github.com/you/localhub/internal/http/middleware"
	"github.com/you/localhub/internal/infrastructure/auth"
	"github.com/you/localhub/internal/infrastructure/repositories"
	"github.com/you/localhub/internal/infrastructure/storage/memorystore"
	"github.com/you/localhub/internal/mocks"
)

type testBackend struct {
	server *httptest.Server
	tokens domain.TokenService
	repo   *repositories.PushTokenRepositoryImpl
}

// newTestBackend serves the dev router so clients talk real HTTP
func newTestBackend(t *testing.T, bundle *domain.CredentialBundle) *testBackend {
	t.Helper()

	gin.SetMode(gin.TestMode)
	tokens := auth.NewJWTService("test-secret", "localhub", time.Hour)
	repo := repositories.NewPushTokenRepository(memorystore.NewKV())
	router := httpx.BuildRouter(handlers.NewBackendHandlers(bundle, repo, nil), middleware.NewAuthMW(tokens))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testBackend{server: server, tokens: tokens, repo: repo}
}

func TestCredentialsClient_FetchCredentials(t *testing.T) {
	tests := []struct {
		name        string
		bundle      *domain.CredentialBundle
		expectError bool
	}{
		{
			name:   "configured backend",
			bundle: &domain.CredentialBundle{AccountSID: "AC1", AuthToken: "tok", VerifyServiceSID: "VA1"},
		},
		{
			name:        "unconfigured backend",
			bundle:      &domain.CredentialBundle{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t, tt.bundle)
			client := NewCredentialsClient(NewRestyClient(ClientConfig{BaseURL: backend.server.URL + "/", Timeout: time.Second}), nil)

			got, err := client.FetchCredentials(context.Background())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bundle, got)
		})
	}
}

func TestCredentialsClient_SendsBearerWhenLoggedIn(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountSid":"AC1","authToken":"tok","verifyServiceSid":"VA1"}`))
	}))
	defer server.Close()

	sessions := mocks.NewMockSessionStore(&domain.AuthSession{UserID: "7", BearerToken: "bearer"})
	client := NewCredentialsClient(NewRestyClient(ClientConfig{BaseURL: server.URL}), sessions)

	_, err := client.FetchCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer bearer", seen)
}

func TestPushTokenClient_Push(t *testing.T) {
	backend := newTestBackend(t, nil)
	valid, err := backend.tokens.GenerateAccessToken("7")
	require.NoError(t, err)

	tests := []struct {
		name           string
		session        *domain.AuthSession
		expectedStatus int
		expectedErr    error
	}{
		{
			name:    "registered",
			session: &domain.AuthSession{UserID: "7", BearerToken: valid},
		},
		{
			name:           "rejected bearer",
			session:        &domain.AuthSession{UserID: "7", BearerToken: "stale"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "no session",
			expectedErr: domain.ErrNoAuthSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			client := NewPushTokenClient(NewRestyClient(ClientConfig{BaseURL: backend.server.URL}), log)

			err := client.Push(context.Background(), "device-token", tt.session)
			if tt.expectedStatus == 0 && tt.expectedErr == nil {
				require.NoError(t, err)
				got, found, err := backend.repo.Find(context.Background(), "7")
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, "device-token", got)
				return
			}

			var syncErr *domain.SyncError
			require.ErrorAs(t, err, &syncErr)
			assert.Equal(t, tt.expectedStatus, syncErr.StatusCode)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
			}
		})
	}
}

func TestPushTokenClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	log, hook := test.NewNullLogger()
	client := NewPushTokenClient(NewRestyClient(ClientConfig{BaseURL: url, Timeout: time.Second}), log)

	err := client.Push(context.Background(), "device-token", &domain.AuthSession{UserID: "7", BearerToken: "b"})

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Zero(t, syncErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(syncErr))
	assert.Equal(t, "Error registering push token", hook.LastEntry().Message)
}

func TestNewRestyClient_LogsThroughConfiguredLogger(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	log, hook := test.NewNullLogger()
	client := NewRestyClient(ClientConfig{BaseURL: url, Timeout: time.Second, RetryCount: 1, RetryWait: time.Millisecond, Logger: log})

	_, err := client.R().Get(credentialsPath)
	require.Error(t, err)

	var attempts int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "Attempt") {
			attempts++
			assert.Equal(t, "resty", entry.Data["component"])
		}
	}
	assert.Positive(t, attempts)
}
