package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/localhub/domain"
)

// startDispatcher runs d until the test ends
func startDispatcher(t *testing.T, d *Dispatcher) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	d := NewDispatcher(8, nil)

	var mu sync.Mutex
	var seen []string
	record := func(tag string) EventHandler {
		return func(ctx context.Context, event *domain.Event) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, tag+":"+event.Token)
		}
	}
	d.Subscribe(domain.TokenRefreshedEvent, record("first"))
	d.Subscribe(domain.TokenRefreshedEvent, record("second"))
	startDispatcher(t, d)

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, domain.TokenRefreshed("A")))
	require.NoError(t, d.Publish(ctx, domain.TokenRefreshed("B")))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 4
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first:A", "second:A", "first:B", "second:B"}, seen)
}

func TestDispatcher_AssignsEventID(t *testing.T) {
	d := NewDispatcher(1, nil)
	event := domain.AppResumed()

	require.NoError(t, d.Publish(context.Background(), event))
	assert.NotEmpty(t, event.ID)
}

func TestDispatcher_RecoversFromPanic(t *testing.T) {
	log, hook := newTestLogger(t)
	d := NewDispatcher(4, log)

	delivered := make(chan struct{}, 1)
	d.Subscribe(domain.AppResumedEvent, func(ctx context.Context, event *domain.Event) {
		panic("handler bug")
	})
	d.Subscribe(domain.AppResumedEvent, func(ctx context.Context, event *domain.Event) {
		delivered <- struct{}{}
	})
	startDispatcher(t, d)

	require.NoError(t, d.Publish(context.Background(), domain.AppResumed()))

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second handler not called after panic")
	}
	assert.True(t, hasEntry(hook, logrus.ErrorLevel, "Event handler panicked"))
}

func TestDispatcher_Close(t *testing.T) {
	d := NewDispatcher(1, nil)
	d.Close()
	d.Close()

	err := d.Publish(context.Background(), domain.AppResumed())
	assert.ErrorIs(t, err, domain.ErrDispatcherClosed)
}

func TestDispatcher_PublishHonoursContext(t *testing.T) {
	d := NewDispatcher(1, nil)
	require.NoError(t, d.Publish(context.Background(), domain.AppResumed()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// queue is full and nothing drains it
	err := d.Publish(ctx, domain.AppResumed())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	d := NewDispatcher(4, nil)

	var got []string
	d.Subscribe(domain.TokenRefreshedEvent, func(ctx context.Context, event *domain.Event) {
		got = append(got, event.Token)
	})

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, domain.TokenRefreshed("A")))
	require.NoError(t, d.Publish(ctx, domain.TokenRefreshed("B")))
	d.Close()

	// Run returns only after the queued events are handled
	d.Run(ctx)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestDispatcher_CloseWhilePublishing(t *testing.T) {
	d := NewDispatcher(2, nil)

	var delivered atomic.Int64
	d.Subscribe(domain.AppResumedEvent, func(ctx context.Context, event *domain.Event) {
		delivered.Add(1)
	})

	runDone := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(runDone)
	}()

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				err := d.Publish(context.Background(), domain.AppResumed())
				if err == nil {
					accepted.Add(1)
					continue
				}
				assert.ErrorIs(t, err, domain.ErrDispatcherClosed)
				return
			}
		}()
	}

	time.Sleep(time.Millisecond)
	d.Close()
	wg.Wait()
	<-runDone

	// every publish that returned nil reached the handler
	assert.Equal(t, accepted.Load(), delivered.Load())
}
