package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/localhub/domain"
	"github.com/you/localhub/internal/mocks"
)

func TestRouteNotificationClick(t *testing.T) {
	tests := []struct {
		name             string
		notificationType string
		targetID         string
		expected         domain.NavigationIntent
	}{
		{"chat", "chat", "42", domain.NavigationIntent{Kind: domain.NavigateChat, TargetID: "42"}},
		{"unknown type", "promo", "42", domain.NavigationIntent{Kind: domain.NavigateGenericNotifications}},
		{"missing type", "", "", domain.NavigationIntent{Kind: domain.NavigateGenericNotifications}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RouteNotificationClick(tt.notificationType, tt.targetID))
		})
	}
}

func TestNotificationBridge_Emit(t *testing.T) {
	t.Run("dropped without sink", func(t *testing.T) {
		log, hook := newTestLogger(t)
		bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), nil, log)
		bridge.Emit(domain.BridgePushTokenReceived, "A")
		assert.True(t, hasEntry(hook, logrus.DebugLevel, "UI not ready, dropping bridge event"))
	})

	t.Run("dropped while sink not ready", func(t *testing.T) {
		sink := mocks.NewMockUISink(false)
		bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), nil, nil)
		bridge.Attach(sink)

		bridge.Emit(domain.BridgePushTokenReceived, "A")
		sink.SetReady(true)
		bridge.Emit(domain.BridgePushTokenReceived, "B")

		assert.Equal(t, []mocks.Delivery{{Name: domain.BridgePushTokenReceived, Payload: "B"}}, sink.Deliveries())
	})

	t.Run("delivery failure logged", func(t *testing.T) {
		log, hook := newTestLogger(t)
		sink := mocks.NewMockUISink(true)
		sink.DeliverFunc = func(name, payload string) error { return errors.New("webview gone") }
		bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), nil, log)
		bridge.Attach(sink)

		bridge.RequestExit()
		assert.True(t, hasEntry(hook, logrus.WarnLevel, "Failed to deliver bridge event"))
	})

	t.Run("exit request", func(t *testing.T) {
		sink := mocks.NewMockUISink(true)
		bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), nil, nil)
		bridge.Attach(sink)

		bridge.RequestExit()
		assert.Equal(t, []mocks.Delivery{{Name: domain.BridgeExitApp}}, sink.Deliveries())
	})
}

func TestNotificationBridge_NotificationEvents(t *testing.T) {
	ctx := context.Background()
	provider := mocks.NewMockPushProvider("")
	sink := mocks.NewMockUISink(true)
	d := NewDispatcher(4, nil)
	bridge := NewNotificationBridge(provider, d, nil)
	bridge.Attach(sink)
	bridge.Register(d)

	d.deliver(ctx, domain.NotificationOpened(map[string]string{"type": "chat", "target_id": "42"}))
	d.deliver(ctx, domain.NotificationOpened(map[string]string{"type": "system"}))
	d.deliver(ctx, domain.ClearNotifications())

	assert.Equal(t, []mocks.Delivery{
		{Name: domain.BridgeNotificationClicked, Payload: `{"kind":"chat","target_id":"42"}`},
		{Name: domain.BridgeNotificationClicked, Payload: `{"kind":"generic_notifications"}`},
	}, sink.Deliveries())
	assert.Equal(t, 1, provider.Cleared)
}

func TestNotificationBridge_HandleUIEvent(t *testing.T) {
	tests := []struct {
		name         string
		event        string
		payload      string
		expectedType domain.EventType
		expectUserID string
	}{
		{"login identity", domain.BridgeSetExternalUserID, "7", domain.UserLoggedInEvent, "7"},
		{"logout", domain.BridgeSetExternalUserID, "", domain.UserLoggedOutEvent, ""},
		{"clear tray", domain.BridgeClearNotifications, "", domain.ClearNotificationsEvent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(1, nil)
			bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), d, nil)

			require.NoError(t, bridge.HandleUIEvent(context.Background(), tt.event, tt.payload))

			select {
			case event := <-d.queue:
				assert.Equal(t, tt.expectedType, event.Type)
				assert.Equal(t, tt.expectUserID, event.UserID)
				assert.Nil(t, event.Session)
			case <-time.After(time.Second):
				t.Fatal("no event published")
			}
		})
	}

	t.Run("unknown event ignored", func(t *testing.T) {
		d := NewDispatcher(1, nil)
		bridge := NewNotificationBridge(mocks.NewMockPushProvider(""), d, nil)
		assert.NoError(t, bridge.HandleUIEvent(context.Background(), "vibrate", ""))
		assert.Empty(t, d.queue)
	})
}
