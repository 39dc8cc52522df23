package httpx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/localhub/domain"
	"github.com/you/localhub/internal/http/handlers"
	"github.com/you/localhub/internal/http/middleware"
	"github.com/you/localhub/internal/infrastructure/auth"
	"github.com/you/localhub/internal/infrastructure/repositories"
	"github.com/you/localhub/internal/infrastructure/storage/memorystore"
)

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewJWTService("secret", "localhub", time.Hour)
	repo := repositories.NewPushTokenRepository(memorystore.NewKV())
	bundle := &domain.CredentialBundle{AccountSID: "AC1", AuthToken: "tok", VerifyServiceSID: "VA1"}
	r := BuildRouter(handlers.NewBackendHandlers(bundle, repo, nil), middleware.NewAuthMW(tokens))

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("config is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/twilio/config", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("push token requires bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/push-token", bytes.NewBufferString(`{"push_token":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("push token stored under caller", func(t *testing.T) {
		bearer, err := tokens.GenerateAccessToken("99")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/users/push-token", bytes.NewBufferString(`{"push_token":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+bearer)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		got, found, err := repo.Find(context.Background(), "99")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "abc", got)
	})
}
