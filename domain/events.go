package domain

import (
	"time"
)

// EventType identifies a host event routed through the dispatcher
type EventType string

const (
	// Push provider events
	PermissionChangedEvent  EventType = "PERMISSION_CHANGED"
	TokenRefreshedEvent     EventType = "TOKEN_REFRESHED"
	NotificationOpenedEvent EventType = "NOTIFICATION_OPENED"
	ClearNotificationsEvent EventType = "CLEAR_NOTIFICATIONS"

	// App lifecycle events
	AppResumedEvent EventType = "APP_RESUMED"

	// Identity events
	UserLoggedInEvent  EventType = "USER_LOGGED_IN"
	UserLoggedOutEvent EventType = "USER_LOGGED_OUT"
)

// Bridge event names (native -> UI)
const (
	BridgePushTokenReceived   = "pushTokenReceived"
	BridgeExitApp             = "exitApp"
	BridgeNotificationClicked = "notificationClicked"
)

// Bridge event names (UI -> native)
const (
	BridgeSetExternalUserID  = "setExternalUserId"
	BridgeClearNotifications = "clearNotifications"
)

// Event is a typed host event. Only the fields relevant to Type are set.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Granted   bool              `json:"granted,omitempty"`
	Token     string            `json:"token,omitempty"`
	UserID    string            `json:"user_id,omitempty"`
	Session   *AuthSession      `json:"-"`
	Data      map[string]string `json:"data,omitempty"`
}

// NewEvent creates an event stamped with the current time
func NewEvent(eventType EventType) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// PermissionChanged creates a permission transition event
func PermissionChanged(granted bool) *Event {
	e := NewEvent(PermissionChangedEvent)
	e.Granted = granted
	return e
}

// TokenRefreshed creates a provider token refresh event
func TokenRefreshed(token string) *Event {
	e := NewEvent(TokenRefreshedEvent)
	e.Token = token
	return e
}

// AppResumed creates an app resume event
func AppResumed() *Event {
	return NewEvent(AppResumedEvent)
}

// UserLoggedIn creates a login event carrying the new session
func UserLoggedIn(session *AuthSession) *Event {
	e := NewEvent(UserLoggedInEvent)
	if session != nil {
		e.UserID = session.UserID
		e.Session = session
	}
	return e
}

// UserLoggedOut creates a logout event
func UserLoggedOut() *Event {
	return NewEvent(UserLoggedOutEvent)
}

// NotificationOpened creates a notification click event from the provider's additional data
func NotificationOpened(data map[string]string) *Event {
	e := NewEvent(NotificationOpenedEvent)
	e.Data = data
	return e
}

// ClearNotifications creates a request to clear the notification tray
func ClearNotifications() *Event {
	return NewEvent(ClearNotificationsEvent)
}
