package repositories

import (
	"context"

	"github.com/you/localhub/domain"
)

// PushTokenRepositoryImpl implements domain.PushTokenRepository on a key-value store
type PushTokenRepositoryImpl struct {
	store  domain.KeyValueStore
	prefix string
}

// NewPushTokenRepository creates a backend-side push token repository
func NewPushTokenRepository(store domain.KeyValueStore) *PushTokenRepositoryImpl {
	return &PushTokenRepositoryImpl{
		store:  store,
		prefix: "push_token:",
	}
}

// Save implements domain.PushTokenRepository; the latest token per user wins
func (r *PushTokenRepositoryImpl) Save(ctx context.Context, userID, token string) error {
	return r.store.Set(ctx, r.prefix+userID, []byte(token), 0)
}

// Find implements domain.PushTokenRepository
func (r *PushTokenRepositoryImpl) Find(ctx context.Context, userID string) (string, bool, error) {
	data, found, err := r.store.Get(ctx, r.prefix+userID)
	if err != nil || !found {
		return "", false, err
	}
	return string(data), true, nil
}

var _ domain.PushTokenRepository = (*PushTokenRepositoryImpl)(nil)
