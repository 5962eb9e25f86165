package session

import (
	"context"
	stderrors "errors"
	"time"

	"user-admin-console/internal/common/cache"
	"user-admin-console/internal/common/errors"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/features/user/service"
)

// SnapshotStore persists JSON snapshots; *cache.CacheService implements it.
type SnapshotStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Touch(ctx context.Context, key string, ttl time.Duration) error
}

// RedisRegistry keeps controllers live in process and writes their state to
// the store after every action, so a restarted console picks sessions up
// where they were left. The create form password is never written.
type RedisRegistry struct {
	live  *live
	store SnapshotStore
	ttl   time.Duration
}

func NewRedisRegistry(api service.UserAPI, store SnapshotStore, ttl time.Duration) *RedisRegistry {
	r := &RedisRegistry{store: store, ttl: ttl}
	r.live = newLive(ttl, func(ctx context.Context, id string) (*service.Controller, error) {
		var state service.State
		err := store.Get(ctx, id, &state)
		switch {
		case err == nil:
			logger.Debug().Str("session", id).Msg("Session restored from snapshot")
			return service.Restore(api, state), nil
		case stderrors.Is(err, cache.ErrMiss):
		default:
			logger.Warn().Err(err).Str("session", id).Msg("Session snapshot unreadable, starting fresh")
		}

		c := fresh(ctx, api, id)
		if err := r.Save(ctx, id, c); err != nil {
			logger.Warn().Err(err).Str("session", id).Msg("Session snapshot not written")
		}
		return c, nil
	})
	return r
}

// Get also extends the snapshot ttl, so a session that is only viewed
// expires no sooner than one that is acted on.
func (r *RedisRegistry) Get(ctx context.Context, id string) (*service.Controller, error) {
	c, err := r.live.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Touch(ctx, id, r.ttl); err != nil {
		logger.Debug().Err(err).Str("session", id).Msg("Session snapshot ttl not extended")
	}
	return c, nil
}

func (r *RedisRegistry) Save(ctx context.Context, id string, c *service.Controller) error {
	if err := r.store.Set(ctx, id, c.Snapshot().State, r.ttl); err != nil {
		return errors.NewSessionError("save", err)
	}
	return nil
}

func (r *RedisRegistry) Close() error {
	r.live.items.Flush()
	return nil
}
