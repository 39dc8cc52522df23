package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// NotificationBridge relays named events between the native side and the UI.
// Delivery is best effort: events emitted while no ready sink is attached are lost.
type NotificationBridge struct {
	provider   domain.PushProvider
	dispatcher *Dispatcher
	log        logrus.FieldLogger

	mu   sync.RWMutex
	sink domain.UISink
}

// NewNotificationBridge creates a bridge; dispatcher receives UI-originated events
func NewNotificationBridge(provider domain.PushProvider, dispatcher *Dispatcher, log logrus.FieldLogger) *NotificationBridge {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationBridge{
		provider:   provider,
		dispatcher: dispatcher,
		log:        log.WithField("component", "notification_bridge"),
	}
}

// Attach sets the UI sink; nil detaches it
func (b *NotificationBridge) Attach(sink domain.UISink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink = sink
}

// Emit delivers a named event to the UI without acknowledgment
func (b *NotificationBridge) Emit(name, payload string) {
	b.mu.RLock()
	sink := b.sink
	b.mu.RUnlock()

	log := b.log.WithField("event", name)
	if sink == nil || !sink.Ready() {
		log.Debugln("UI not ready, dropping bridge event")
		return
	}
	if err := sink.Deliver(name, payload); err != nil {
		log.WithError(err).Warnln("Failed to deliver bridge event")
	}
}

// RequestExit asks the UI to close the app
func (b *NotificationBridge) RequestExit() {
	b.Emit(domain.BridgeExitApp, "")
}

// RouteNotificationClick maps a notification type tag to a navigation intent
func RouteNotificationClick(notificationType, targetID string) domain.NavigationIntent {
	if notificationType == "chat" {
		return domain.NavigationIntent{Kind: domain.NavigateChat, TargetID: targetID}
	}
	return domain.NavigationIntent{Kind: domain.NavigateGenericNotifications}
}

// Register subscribes the bridge to notification events on the dispatcher
func (b *NotificationBridge) Register(d *Dispatcher) {
	d.Subscribe(domain.NotificationOpenedEvent, b.handleNotificationOpened)
	d.Subscribe(domain.ClearNotificationsEvent, b.handleClearNotifications)
}

func (b *NotificationBridge) handleNotificationOpened(_ context.Context, event *domain.Event) {
	intent := RouteNotificationClick(event.Data["type"], event.Data["target_id"])
	payload, err := json.Marshal(intent)
	if err != nil {
		b.log.WithError(err).Errorln("Failed to encode navigation intent")
		return
	}
	b.Emit(domain.BridgeNotificationClicked, string(payload))
}

func (b *NotificationBridge) handleClearNotifications(ctx context.Context, _ *domain.Event) {
	if err := b.provider.ClearNotifications(ctx); err != nil {
		b.log.WithError(err).Warnln("Failed to clear notifications")
	}
}

// HandleUIEvent converts a UI-originated event into a dispatcher event
func (b *NotificationBridge) HandleUIEvent(ctx context.Context, name, payload string) error {
	switch name {
	case domain.BridgeSetExternalUserID:
		if payload == "" {
			return b.dispatcher.Publish(ctx, domain.UserLoggedOut())
		}
		// the auth subsystem owns the session; only the identity changes here
		event := domain.NewEvent(domain.UserLoggedInEvent)
		event.UserID = payload
		return b.dispatcher.Publish(ctx, event)
	case domain.BridgeClearNotifications:
		return b.dispatcher.Publish(ctx, domain.ClearNotifications())
	default:
		b.log.WithField("event", name).Warnln("Unknown UI event")
		return nil
	}
}

var _ domain.Announcer = (*NotificationBridge)(nil)
