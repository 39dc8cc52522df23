package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// EventHandler handles one dispatched event
type EventHandler func(ctx context.Context, event *domain.Event)

// Dispatcher serializes host events onto a single goroutine.
// Handlers for an event run in subscription order, events in arrival order.
type Dispatcher struct {
	queue chan *domain.Event
	done  chan struct{}
	log   logrus.FieldLogger

	// closeMu orders Close against publishers checking closed
	closeMu  sync.RWMutex
	closed   bool
	inflight sync.WaitGroup

	mu       sync.RWMutex
	handlers map[domain.EventType][]EventHandler
}

// NewDispatcher creates a dispatcher with the given queue capacity
func NewDispatcher(capacity int, log logrus.FieldLogger) *Dispatcher {
	if capacity <= 0 {
		capacity = 64
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{
		queue:    make(chan *domain.Event, capacity),
		done:     make(chan struct{}),
		log:      log.WithField("component", "dispatcher"),
		handlers: make(map[domain.EventType][]EventHandler),
	}
}

// Subscribe registers handler for eventType
func (d *Dispatcher) Subscribe(eventType domain.EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Publish queues event, blocking until there is room, ctx ends or the dispatcher closes
func (d *Dispatcher) Publish(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	d.closeMu.RLock()
	if d.closed {
		d.closeMu.RUnlock()
		return domain.ErrDispatcherClosed
	}
	d.inflight.Add(1)
	d.closeMu.RUnlock()
	defer d.inflight.Done()

	select {
	case d.queue <- event:
		return nil
	case <-d.done:
		return domain.ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run delivers queued events until ctx is cancelled or Close is called.
// After Close, events already queued are delivered before Run returns;
// after cancellation they are dropped.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			d.drain(ctx)
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	// publishers admitted before Close either enqueue or see done
	d.inflight.Wait()
	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

// Close rejects further publishes and lets Run finish the queue
func (d *Dispatcher) Close() {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.done)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event *domain.Event) {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.Type]...)
	d.mu.RUnlock()

	log := d.log.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
	})
	if len(handlers) == 0 {
		log.Debugln("No handlers for event")
		return
	}

	for _, h := range handlers {
		d.safeCall(ctx, log, h, event)
	}
}

func (d *Dispatcher) safeCall(ctx context.Context, log *logrus.Entry, h EventHandler, event *domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Errorln("Event handler panicked")
		}
	}()
	h(ctx, event)
}
