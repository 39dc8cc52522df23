package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// PermissionGate is the only path from host events to TokenRegistry updates
type PermissionGate struct {
	registry domain.TokenRegistry
	sessions domain.SessionStore
	log      logrus.FieldLogger

	mu      sync.Mutex
	granted bool
}

// NewPermissionGate creates a gate driving registry
func NewPermissionGate(registry domain.TokenRegistry, sessions domain.SessionStore, log logrus.FieldLogger) *PermissionGate {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PermissionGate{
		registry: registry,
		sessions: sessions,
		log:      log.WithField("component", "permission_gate"),
	}
}

// Register subscribes the gate to the dispatcher
func (g *PermissionGate) Register(d *Dispatcher) {
	d.Subscribe(domain.PermissionChangedEvent, g.handlePermission)
	d.Subscribe(domain.TokenRefreshedEvent, g.handleRefresh)
	d.Subscribe(domain.AppResumedEvent, g.handleResume)
	d.Subscribe(domain.UserLoggedInEvent, g.handleLogin)
	d.Subscribe(domain.UserLoggedOutEvent, g.handleLogout)
}

// Granted reports the last observed permission state
func (g *PermissionGate) Granted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.granted
}

func (g *PermissionGate) handlePermission(ctx context.Context, event *domain.Event) {
	g.mu.Lock()
	wasGranted := g.granted
	g.granted = event.Granted
	g.mu.Unlock()

	g.log.WithField("granted", event.Granted).Debugln("Notification permission changed")

	if event.Granted && !wasGranted {
		g.registry.OnPermissionGranted(ctx)
	}
}

func (g *PermissionGate) handleRefresh(ctx context.Context, event *domain.Event) {
	g.registry.OnTokenRefreshed(ctx, event.Token)
}

func (g *PermissionGate) handleResume(ctx context.Context, _ *domain.Event) {
	g.registry.Resume(ctx)
}

func (g *PermissionGate) handleLogin(ctx context.Context, event *domain.Event) {
	if event.Session != nil {
		if err := g.sessions.Set(ctx, event.Session); err != nil {
			g.log.WithError(err).Errorln("Failed to store auth session")
		}
	}
	if event.UserID == "" {
		g.log.Warnln("Login event without user id")
		return
	}
	g.registry.Associate(ctx, event.UserID)
}

// handleLogout drops the token's owner only; the stored session belongs to
// the auth subsystem and is cleared by it
func (g *PermissionGate) handleLogout(ctx context.Context, _ *domain.Event) {
	g.registry.Disassociate(ctx)
}
