package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/localhub/domain"
	"github.com/you/localhub/internal/config"
	httpx "github.com/you/localhub/internal/http"
	"github.com/you/localhub/internal/http/handlers"
	"github.com/you/localhub/internal/http/middleware"
	"github.com/you/localhub/internal/infrastructure/auth"
	"github.com/you/localhub/internal/infrastructure/repositories"
)

// NewLogger configures a logger from cfg
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// NewDevTokenService builds the bearer token service shared by the dev
// server and the dev-token command
func NewDevTokenService(cfg *config.Config) domain.TokenService {
	return auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
}

// BuildDevServer wires the development backend on store
func BuildDevServer(cfg *config.Config, store domain.KeyValueStore, log logrus.FieldLogger) *gin.Engine {
	bundle := &domain.CredentialBundle{
		AccountSID:       cfg.TwilioSID,
		AuthToken:        cfg.TwilioToken,
		VerifyServiceSID: cfg.TwilioServiceSID,
	}
	if !bundle.Complete() {
		log.Warnln("Twilio credentials not configured, /api/twilio/config will return 503")
	}

	bh := handlers.NewBackendHandlers(bundle, repositories.NewPushTokenRepository(store), log)
	jwtMW := middleware.NewAuthMW(NewDevTokenService(cfg))
	return httpx.BuildRouter(bh, jwtMW)
}

// RunDevServer serves the development backend until ctx ends
func RunDevServer(ctx context.Context, cfg *config.Config, store domain.KeyValueStore, log logrus.FieldLogger) error {
	gin.SetMode(cfg.GinMode)

	srv := &http.Server{
		Addr:              ":" + cfg.DevPort,
		Handler:           BuildDevServer(cfg, store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Infoln("Development backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
