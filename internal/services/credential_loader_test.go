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

func TestCredentialLoaderImpl_Load(t *testing.T) {
	tests := []struct {
		name        string
		fetch       func(ctx context.Context) (*domain.CredentialBundle, error)
		expectReady bool
		expectErr   error
		expectLog   string
	}{
		{
			name: "complete bundle",
			fetch: func(ctx context.Context) (*domain.CredentialBundle, error) {
				return &domain.CredentialBundle{AccountSID: "AC1", AuthToken: "tok", VerifyServiceSID: "VA1"}, nil
			},
			expectReady: true,
		},
		{
			name: "backend failure",
			fetch: func(ctx context.Context) (*domain.CredentialBundle, error) {
				return nil, errors.New("503 Service Unavailable")
			},
			expectLog: "Error loading provider credentials",
		},
		{
			name: "incomplete bundle",
			fetch: func(ctx context.Context) (*domain.CredentialBundle, error) {
				return &domain.CredentialBundle{AccountSID: "AC1"}, nil
			},
			expectErr: domain.ErrCredentialsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := newTestLogger(t)
			source := &mocks.MockCredentialSource{FetchCredentialsFunc: tt.fetch}
			loader := NewCredentialLoader(source, mocks.NewFakeClock(time.Now()), log)

			err := loader.Load(context.Background())
			if tt.expectReady {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			}
			if tt.expectLog != "" {
				assert.True(t, hasEntry(hook, logrus.ErrorLevel, tt.expectLog))
			}
			assert.Equal(t, tt.expectReady, loader.IsReady())
			assert.Equal(t, 1, source.Calls())
		})
	}
}

func TestCredentialLoaderImpl_FirstBundleWins(t *testing.T) {
	ctx := context.Background()
	first := createTestBundle(t)
	second := &domain.CredentialBundle{AccountSID: "AC2", AuthToken: "other", VerifyServiceSID: "VA2"}

	bundles := []*domain.CredentialBundle{first, second}
	source := &mocks.MockCredentialSource{
		FetchCredentialsFunc: func(ctx context.Context) (*domain.CredentialBundle, error) {
			b := bundles[0]
			bundles = bundles[1:]
			return b, nil
		},
	}
	loader := NewCredentialLoader(source, nil, nil)

	require.NoError(t, loader.Load(ctx))
	require.NoError(t, loader.Load(ctx))

	got, ok := loader.Bundle()
	require.True(t, ok)
	assert.Equal(t, first, got)

	// callers receive copies
	got.AuthToken = "mutated"
	again, _ := loader.Bundle()
	assert.Equal(t, first.AuthToken, again.AuthToken)
}

func TestCredentialLoaderImpl_AwaitReady(t *testing.T) {
	t.Run("already loaded returns without waiting", func(t *testing.T) {
		clock := mocks.NewFakeClock(time.Now())
		loader := NewCredentialLoader(mocks.NewMockCredentialSource(createTestBundle(t)), clock, nil)
		require.NoError(t, loader.Load(context.Background()))

		b, err := loader.AwaitReady(context.Background(), 10, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "VA00000000000000000000000000000000", b.VerifyServiceSID)
		assert.Empty(t, clock.Waits())
	})

	t.Run("becomes ready mid-wait", func(t *testing.T) {
		clock := mocks.NewFakeClock(time.Now())
		loader := NewCredentialLoader(mocks.NewMockCredentialSource(createTestBundle(t)), clock, nil)
		clock.OnAfter = func(waits int) {
			if waits == 3 {
				_ = loader.Load(context.Background())
			}
		}

		b, err := loader.AwaitReady(context.Background(), 10, time.Second)
		require.NoError(t, err)
		assert.NotNil(t, b)
		assert.Len(t, clock.Waits(), 3)
	})

	t.Run("times out after bounded attempts", func(t *testing.T) {
		clock := mocks.NewFakeClock(time.Now())
		log, hook := newTestLogger(t)
		loader := NewCredentialLoader(mocks.NewMockCredentialSource(nil), clock, log)

		_, err := loader.AwaitReady(context.Background(), 10, time.Second)
		assert.ErrorIs(t, err, domain.ErrCredentialsTimeout)
		assert.Len(t, clock.Waits(), 10)
		for _, w := range clock.Waits() {
			assert.Equal(t, time.Second, w)
		}
		assert.True(t, hasEntry(hook, logrus.ErrorLevel, "Credentials not loaded in time"))
	})

	t.Run("load completing on the last wait still succeeds", func(t *testing.T) {
		clock := mocks.NewFakeClock(time.Now())
		loader := NewCredentialLoader(mocks.NewMockCredentialSource(createTestBundle(t)), clock, nil)
		clock.OnAfter = func(waits int) {
			if waits == 10 {
				_ = loader.Load(context.Background())
			}
		}

		_, err := loader.AwaitReady(context.Background(), 10, time.Second)
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		loader := NewCredentialLoader(mocks.NewMockCredentialSource(nil), mocks.NewFakeClock(time.Now()), nil)

		_, err := loader.AwaitReady(ctx, 10, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCredentialLoaderImpl_Start(t *testing.T) {
	loader := NewCredentialLoader(mocks.NewMockCredentialSource(createTestBundle(t)), nil, nil)
	loader.Start(context.Background())

	assert.Eventually(t, loader.IsReady, time.Second, 5*time.Millisecond)
}
