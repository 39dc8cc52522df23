package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/you/localhub/domain"
)

// SessionRepositoryImpl implements domain.SessionStore on the local key-value store
type SessionRepositoryImpl struct {
	store domain.KeyValueStore
	key   string
}

// NewSessionRepository creates a session repository under namespace
func NewSessionRepository(store domain.KeyValueStore, namespace string) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{
		store: store,
		key:   namespace + ":auth_session",
	}
}

// Current implements domain.SessionSource
func (r *SessionRepositoryImpl) Current(ctx context.Context) (*domain.AuthSession, bool) {
	data, found, err := r.store.Get(ctx, r.key)
	if err != nil || !found {
		return nil, false
	}

	var session domain.AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	if !session.Valid() {
		return nil, false
	}
	return &session, true
}

// Set implements domain.SessionStore
func (r *SessionRepositoryImpl) Set(ctx context.Context, session *domain.AuthSession) error {
	if !session.Valid() {
		return domain.ErrNoAuthSession
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.store.Set(ctx, r.key, data, 0)
}

// Clear implements domain.SessionStore
func (r *SessionRepositoryImpl) Clear(ctx context.Context) error {
	return r.store.Del(ctx, r.key)
}

var _ domain.SessionStore = (*SessionRepositoryImpl)(nil)
