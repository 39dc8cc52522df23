package app

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/you/localhub/domain"
	"github.com/you/localhub/internal/config"
	"github.com/you/localhub/internal/infrastructure/backend"
	"github.com/you/localhub/internal/infrastructure/database"
	"github.com/you/localhub/internal/infrastructure/notifications"
	"github.com/you/localhub/internal/infrastructure/push"
	"github.com/you/localhub/internal/infrastructure/repositories"
	"github.com/you/localhub/internal/infrastructure/storage/filestore"
	"github.com/you/localhub/internal/infrastructure/storage/memorystore"
	"github.com/you/localhub/internal/infrastructure/storage/redisstore"
	"github.com/you/localhub/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *logrus.Logger

	// Infrastructure
	RedisClient     *database.RedisClient
	Store           domain.KeyValueStore
	CredentialsHTTP *resty.Client
	PushHTTP        *resty.Client

	// Repositories
	Sessions *repositories.SessionRepositoryImpl

	// Providers
	PushProvider *push.StaticProvider

	// Services
	Loader       *services.CredentialLoaderImpl
	Verification *services.VerificationServiceImpl
	Dispatcher   *services.Dispatcher
	Registry     *services.TokenRegistryImpl
	Gate         *services.PermissionGate
	Bridge       *services.NotificationBridge

	cancel  context.CancelFunc
	runDone chan struct{}
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, log *logrus.Logger) (*Container, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	container := &Container{Config: cfg, Logger: log}

	// Initialize infrastructure
	if err := container.initStore(); err != nil {
		return nil, err
	}
	container.initHTTP()

	// Initialize repositories
	container.Sessions = repositories.NewSessionRepository(container.Store, cfg.Namespace)

	// Initialize services
	container.initServices()

	return container, nil
}

func (c *Container) initStore() error {
	switch c.Config.StorageDriver {
	case "redis":
		c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
		c.Store = redisstore.NewKV(c.RedisClient.Client)
	case "memory":
		c.Store = memorystore.NewKV()
	case "file", "":
		kv, err := filestore.NewKV(c.Config.StoragePath)
		if err != nil {
			return err
		}
		c.Store = kv
	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.StorageDriver)
	}
	return nil
}

// initHTTP builds one client per backend call; push registration is never retried
func (c *Container) initHTTP() {
	c.CredentialsHTTP = backend.NewRestyClient(backend.ClientConfig{
		BaseURL:    c.Config.BackendURL,
		Timeout:    c.Config.BackendTimeout,
		RetryCount: c.Config.BackendRetryCount,
		RetryWait:  c.Config.BackendRetryWait,
		Logger:     c.Logger,
	})
	c.PushHTTP = backend.NewRestyClient(backend.ClientConfig{
		BaseURL: c.Config.BackendURL,
		Timeout: c.Config.BackendTimeout,
		Logger:  c.Logger,
	})
}

func (c *Container) initServices() {
	log := c.Logger

	c.Loader = services.NewCredentialLoader(
		backend.NewCredentialsClient(c.CredentialsHTTP, c.Sessions),
		services.SystemClock(),
		log,
	)
	c.Verification = services.NewVerificationService(
		c.Loader,
		notifications.NewTwilioVerifyProvider,
		c.Store,
		services.VerificationConfig{
			DefaultCountryCode: c.Config.DefaultCountryCode,
			AwaitAttempts:      c.Config.AwaitAttempts,
			AwaitInterval:      c.Config.AwaitInterval,
			ResendWindow:       c.Config.ResendWindow,
		},
		log,
	)

	c.PushProvider = push.NewStaticProvider(c.Config.PushAppID, "", log)
	c.Dispatcher = services.NewDispatcher(64, log)
	c.Bridge = services.NewNotificationBridge(c.PushProvider, c.Dispatcher, log)
	c.Registry = services.NewTokenRegistry(services.TokenRegistryDeps{
		Provider:  c.PushProvider,
		Store:     c.Store,
		Sync:      backend.NewPushTokenClient(c.PushHTTP, log),
		Sessions:  c.Sessions,
		Announcer: c.Bridge,
		Logger:    log,
	}, c.Config.Namespace)
	c.Gate = services.NewPermissionGate(c.Registry, c.Sessions, log)

	c.Gate.Register(c.Dispatcher)
	c.Bridge.Register(c.Dispatcher)
}

// Start restores persisted state, begins the credential fetch and runs the dispatcher
func (c *Container) Start(ctx context.Context) error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx, c.Config.BackendTimeout); err != nil {
			return fmt.Errorf("redis unavailable: %w", err)
		}
	}
	if err := c.Registry.Restore(ctx); err != nil {
		c.Logger.WithError(err).Warnln("Failed to restore push token")
	}

	c.Loader.Start(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.runDone = make(chan struct{})
	go func() {
		defer close(c.runDone)
		c.Dispatcher.Run(runCtx)
	}()
	return nil
}

// Close finishes queued events and closes all connections
func (c *Container) Close() error {
	c.Dispatcher.Close()
	if c.runDone != nil {
		<-c.runDone
		c.cancel()
	}

	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
