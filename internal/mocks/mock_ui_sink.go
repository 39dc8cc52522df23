package mocks

import (
	"sync"

	"github.com/you/localhub/domain"
)

// Delivery is one event received by a MockUISink
type Delivery struct {
	Name    string
	Payload string
}

// MockUISink implements domain.UISink interface for testing
type MockUISink struct {
	DeliverFunc func(name, payload string) error

	mu         sync.Mutex
	ready      bool
	deliveries []Delivery
}

// NewMockUISink creates a sink in the given readiness state
func NewMockUISink(ready bool) *MockUISink {
	return &MockUISink{ready: ready}
}

// SetReady changes readiness
func (m *MockUISink) SetReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = ready
}

// Ready reports whether the UI accepts events
func (m *MockUISink) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Deliver records the event
func (m *MockUISink) Deliver(name, payload string) error {
	if m.DeliverFunc != nil {
		if err := m.DeliverFunc(name, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, Delivery{Name: name, Payload: payload})
	return nil
}

// Deliveries returns a copy of everything delivered so far
func (m *MockUISink) Deliveries() []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Delivery(nil), m.deliveries...)
}

// Compile-time interface compliance verification
var _ domain.UISink = (*MockUISink)(nil)
