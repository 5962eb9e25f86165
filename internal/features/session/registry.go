// Package session maps browser sessions to their console controllers.
package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"user-admin-console/internal/common/errors"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/features/user/service"
)

// Registry returns the controller bound to a session id. A session seen for
// the first time gets a fresh controller that has already loaded page 0.
type Registry interface {
	Get(ctx context.Context, id string) (*service.Controller, error)
	// Save persists the controller state after an action. Backends that keep
	// state only in process may treat it as a no-op.
	Save(ctx context.Context, id string, c *service.Controller) error
	Close() error
}

type loadFunc func(ctx context.Context, id string) (*service.Controller, error)

// live holds the controllers of active sessions. Entries expire after ttl
// without access.
type live struct {
	items *gocache.Cache
	group singleflight.Group
	load  loadFunc
}

func newLive(ttl time.Duration, load loadFunc) *live {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &live{
		items: gocache.New(ttl, cleanup),
		load:  load,
	}
}

func (l *live) get(ctx context.Context, id string) (*service.Controller, error) {
	if v, ok := l.items.Get(id); ok {
		c := v.(*service.Controller)
		l.items.SetDefault(id, c)
		return c, nil
	}

	v, err, _ := l.group.Do(id, func() (interface{}, error) {
		if v, ok := l.items.Get(id); ok {
			return v, nil
		}
		// detached: the load is shared by every caller waiting on id
		c, err := l.load(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		l.items.SetDefault(id, c)
		return c, nil
	})
	if err != nil {
		return nil, errors.NewSessionError("load", err)
	}
	return v.(*service.Controller), nil
}

// fresh builds a controller for a new session and runs its first load. A
// failed load is kept in the controller state, not returned.
func fresh(ctx context.Context, api service.UserAPI, id string) *service.Controller {
	c := service.NewController(api)
	if err := c.Init(ctx); err != nil {
		logger.Debug().Err(err).Str("session", id).Msg("Initial load failed")
	}
	return c
}

// MemoryRegistry keeps sessions in process only.
type MemoryRegistry struct {
	live *live
}

func NewMemoryRegistry(api service.UserAPI, ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		live: newLive(ttl, func(ctx context.Context, id string) (*service.Controller, error) {
			return fresh(ctx, api, id), nil
		}),
	}
}

func (r *MemoryRegistry) Get(ctx context.Context, id string) (*service.Controller, error) {
	return r.live.get(ctx, id)
}

func (r *MemoryRegistry) Save(context.Context, string, *service.Controller) error {
	return nil
}

// Len is the number of live sessions.
func (r *MemoryRegistry) Len() int {
	return r.live.items.ItemCount()
}

func (r *MemoryRegistry) Close() error {
	r.live.items.Flush()
	return nil
}
