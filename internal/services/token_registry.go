package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// TokenRegistryImpl implements domain.TokenRegistry.
// It owns the single current push token; every write replaces it wholesale.
type TokenRegistryImpl struct {
	provider  domain.PushProvider
	kv        domain.KeyValueStore
	remote    domain.RemoteSync
	sessions  domain.SessionSource
	announcer domain.Announcer
	clock     domain.Clock
	key       string
	log       logrus.FieldLogger

	mu      sync.Mutex
	current *domain.PushToken
}

// TokenRegistryDeps groups the collaborators of the registry
type TokenRegistryDeps struct {
	Provider  domain.PushProvider
	Store     domain.KeyValueStore
	Sync      domain.RemoteSync
	Sessions  domain.SessionSource
	Announcer domain.Announcer
	Clock     domain.Clock
	Logger    logrus.FieldLogger
}

// PushTokenKey returns the storage key of the push token under namespace
func PushTokenKey(namespace string) string {
	return namespace + ":push_token"
}

// NewTokenRegistry creates a registry persisting under the given namespace
func NewTokenRegistry(deps TokenRegistryDeps, namespace string) *TokenRegistryImpl {
	if deps.Clock == nil {
		deps.Clock = SystemClock()
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &TokenRegistryImpl{
		provider:  deps.Provider,
		kv:        deps.Store,
		remote:    deps.Sync,
		sessions:  deps.Sessions,
		announcer: deps.Announcer,
		clock:     deps.Clock,
		key:       PushTokenKey(namespace),
		log:       deps.Logger.WithField("component", "token_registry"),
	}
}

// OnPermissionGranted reads the provider token and registers it
func (r *TokenRegistryImpl) OnPermissionGranted(ctx context.Context) {
	value, err := r.provider.CurrentToken(ctx)
	if err != nil {
		r.log.WithError(err).Warnln("Failed to read push token from provider")
		return
	}
	if value == "" {
		r.log.Infoln("Push provider returned no token, waiting for next trigger")
		return
	}
	r.accept(ctx, value)
}

// OnTokenRefreshed registers a token issued by the provider's refresh callback
func (r *TokenRegistryImpl) OnTokenRefreshed(ctx context.Context, token string) {
	if token == "" {
		r.log.Warnln("Ignoring empty refreshed push token")
		return
	}
	r.log.Debugln("Refreshed push token received")
	r.accept(ctx, token)
}

func (r *TokenRegistryImpl) accept(ctx context.Context, value string) {
	r.mu.Lock()
	token := &domain.PushToken{Value: value, CapturedAt: r.clock.Now().UTC()}
	if r.current != nil && r.current.OwnerUserID != nil {
		owner := *r.current.OwnerUserID
		token.OwnerUserID = &owner
	}
	r.mu.Unlock()

	if err := r.Store(ctx, token); err != nil {
		r.log.WithError(err).Errorln("Failed to persist push token")
	}
	r.announce(token.Value)
	r.push(ctx, token.Value)
}

// Store overwrites the persisted and in-memory token
func (r *TokenRegistryImpl) Store(ctx context.Context, token *domain.PushToken) error {
	if token == nil {
		return domain.ErrTokenUnavailable
	}
	stored := token.Clone()

	r.mu.Lock()
	r.current = stored
	r.mu.Unlock()

	return r.persist(ctx, stored)
}

func (r *TokenRegistryImpl) persist(ctx context.Context, token *domain.PushToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal push token: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, data, 0); err != nil {
		return fmt.Errorf("failed to store push token: %w", err)
	}
	return nil
}

// Associate tags the current token with userID and re-sends it under the new session
func (r *TokenRegistryImpl) Associate(ctx context.Context, userID string) {
	if err := r.provider.SetExternalUserID(ctx, userID); err != nil {
		r.log.WithError(err).Warnln("Failed to set external user id")
	}

	token := r.setOwner(ctx, &userID)
	if token == nil {
		r.log.WithField("user_id", userID).Debugln("No push token to associate yet")
		return
	}
	r.push(ctx, token.Value)
}

// Disassociate clears the owner tag but keeps the token value
func (r *TokenRegistryImpl) Disassociate(ctx context.Context) {
	if err := r.provider.RemoveExternalUserID(ctx); err != nil {
		r.log.WithError(err).Warnln("Failed to remove external user id")
	}
	r.setOwner(ctx, nil)
}

func (r *TokenRegistryImpl) setOwner(ctx context.Context, userID *string) *domain.PushToken {
	r.mu.Lock()
	if r.current == nil {
		r.mu.Unlock()
		return nil
	}
	updated := r.current.Clone()
	updated.OwnerUserID = nil
	if userID != nil {
		owner := *userID
		updated.OwnerUserID = &owner
	}
	r.current = updated
	r.mu.Unlock()

	if err := r.persist(ctx, updated); err != nil {
		r.log.WithError(err).Errorln("Failed to persist push token owner")
	}
	return updated.Clone()
}

// CurrentToken returns a copy of the current token or nil
func (r *TokenRegistryImpl) CurrentToken() *domain.PushToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// Restore loads the persisted token on cold start without contacting the provider
func (r *TokenRegistryImpl) Restore(ctx context.Context) error {
	data, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return fmt.Errorf("failed to read push token: %w", err)
	}
	if !found {
		return nil
	}

	var token domain.PushToken
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to unmarshal push token: %w", err)
	}

	r.mu.Lock()
	if r.current == nil {
		r.current = &token
	}
	r.mu.Unlock()
	return nil
}

// Resume re-announces the existing token and retries its registration
func (r *TokenRegistryImpl) Resume(ctx context.Context) {
	token := r.CurrentToken()
	if token == nil {
		r.log.Debugln("No push token to re-announce on resume")
		return
	}
	r.announce(token.Value)
	r.push(ctx, token.Value)
}

func (r *TokenRegistryImpl) announce(value string) {
	if r.announcer != nil {
		r.announcer.Emit(domain.BridgePushTokenReceived, value)
	}
}

// push never fails the caller; registration is best effort
func (r *TokenRegistryImpl) push(ctx context.Context, value string) {
	session, ok := r.sessions.Current(ctx)
	if !ok || !session.Valid() {
		r.log.Debugln("No auth token found, skipping token registration")
		return
	}
	if err := r.remote.Push(ctx, value, session); err != nil {
		r.log.WithError(err).Warnln("Push token registration failed, will retry on next trigger")
	}
}

var _ domain.TokenRegistry = (*TokenRegistryImpl)(nil)
