package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"user-admin-console/internal/common/cache"
	"user-admin-console/internal/common/envelope"
	"user-admin-console/internal/common/middleware"
	"user-admin-console/internal/features/user/models"
	"user-admin-console/internal/features/user/service"
	"user-admin-console/internal/features/user/service/mocks"
)

var ada = models.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org", Active: true}

func expectInit(api *mocks.UserAPI) {
	api.On("List", mock.Anything, models.DefaultListQuery()).Return(envelope.Envelope[models.PagedResponse[models.User]]{
		Success: true,
		Data: &models.PagedResponse[models.User]{
			Items: []models.User{ada},
			Meta:  &models.PageMeta{TotalElements: 1, Size: models.DefaultPageSize},
		},
	}, nil).Once()
	api.On("Stats", mock.Anything).Return(envelope.Envelope[models.UserStats]{
		Success: true,
		Data:    &models.UserStats{CreatedLast24h: 1},
	}, nil).Once()
}

type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	touched map[string]int
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, touched: map[string]int{}}
}

func (s *memoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	raw, ok := s.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *memoryStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memoryStore) Touch(_ context.Context, key string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[key]; ok {
		s.touched[key]++
	}
	return nil
}

func TestMemoryRegistry_InitOnFirstGet(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)

	r := NewMemoryRegistry(api, time.Hour)
	defer r.Close()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)

	view := c.Snapshot()
	assert.Equal(t, []models.User{ada}, view.Items)
	require.NotNil(t, view.Stats)
	assert.Equal(t, int64(1), view.Stats.CreatedLast24h)

	again, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Same(t, c, again)
	assert.Equal(t, 1, r.Len())
}

func TestMemoryRegistry_ConcurrentFirstGetLoadsOnce(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)

	r := NewMemoryRegistry(api, time.Hour)
	defer r.Close()

	var wg sync.WaitGroup
	got := make([]*service.Controller, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := r.Get(context.Background(), "s1")
			assert.NoError(t, err)
			got[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}
}

func TestMemoryRegistry_SessionsAreIsolated(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)
	expectInit(api)

	r := NewMemoryRegistry(api, time.Hour)
	defer r.Close()

	a, err := r.Get(context.Background(), "a")
	require.NoError(t, err)
	b, err := r.Get(context.Background(), "b")
	require.NoError(t, err)

	a.DismissToast()
	a.RequestDelete(ada, true)
	assert.True(t, a.Snapshot().Confirm.Open)
	assert.False(t, b.Snapshot().Confirm.Open)
}

func TestMemoryRegistry_FailedInitIsKeptInState(t *testing.T) {
	api := mocks.NewUserAPI(t)
	api.On("List", mock.Anything, models.DefaultListQuery()).
		Return(envelope.Envelope[models.PagedResponse[models.User]]{}, envelope.Transport(errors.New("connection refused"))).Once()
	api.On("Stats", mock.Anything).
		Return(envelope.Envelope[models.UserStats]{}, envelope.Transport(errors.New("connection refused"))).Once()

	r := NewMemoryRegistry(api, time.Hour)
	defer r.Close()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "connection refused", c.Snapshot().ListError)
}

func TestRedisRegistry_SavesWithoutPassword(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)
	store := newMemoryStore()

	r := NewRedisRegistry(api, store, time.Hour)
	defer r.Close()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Contains(t, store.data, "s1")

	c.SetForm(service.CreateForm{FirstName: "Grace", Email: "grace@example.org", Password: "Secret#123"})
	require.NoError(t, r.Save(context.Background(), "s1", c))

	assert.NotContains(t, string(store.data["s1"]), "Secret#123")
	assert.Contains(t, string(store.data["s1"]), "grace@example.org")
}

func TestRedisRegistry_RestoresWithoutAPICalls(t *testing.T) {
	store := newMemoryStore()
	state := service.NewState()
	state.Items = []models.User{ada}
	state.Meta = models.PageMeta{TotalElements: 31, Page: 2, Size: 10}
	state.Query.Page = 2
	state.Loading = true
	require.NoError(t, store.Set(context.Background(), "s1", state, time.Hour))

	api := mocks.NewUserAPI(t)
	r := NewRedisRegistry(api, store, time.Hour)
	defer r.Close()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)

	view := c.Snapshot()
	assert.Equal(t, []models.User{ada}, view.Items)
	assert.Equal(t, 2, view.Meta.Page)
	assert.False(t, view.Loading)
	assert.Equal(t, 4, view.TotalPages)
	api.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRedisRegistry_UnreadableStoreStartsFresh(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)
	store := newMemoryStore()
	store.err = errors.New("redis down")

	r := NewRedisRegistry(api, store, time.Hour)
	defer r.Close()

	c, err := r.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []models.User{ada}, c.Snapshot().Items)

	err = r.Save(context.Background(), "s1", c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_ERROR")
}

func TestMemoryRegistry_LoadSurvivesCanceledRequest(t *testing.T) {
	detached := mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil && middleware.RequestIDFromContext(ctx) == "req-1"
	})
	api := mocks.NewUserAPI(t)
	api.On("List", detached, models.DefaultListQuery()).Return(envelope.Envelope[models.PagedResponse[models.User]]{
		Success: true,
		Data: &models.PagedResponse[models.User]{
			Items: []models.User{ada},
			Meta:  &models.PageMeta{TotalElements: 1, Size: models.DefaultPageSize},
		},
	}, nil).Once()
	api.On("Stats", detached).Return(envelope.Envelope[models.UserStats]{Success: true, Data: &models.UserStats{}}, nil).Once()

	r := NewMemoryRegistry(api, time.Hour)
	defer r.Close()

	ctx, cancel := context.WithCancel(middleware.ContextWithRequestID(context.Background(), "req-1"))
	cancel()

	c, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	view := c.Snapshot()
	assert.Equal(t, []models.User{ada}, view.Items)
	assert.Empty(t, view.ListError)
}

func TestRedisRegistry_GetExtendsSnapshotTTL(t *testing.T) {
	api := mocks.NewUserAPI(t)
	expectInit(api)
	store := newMemoryStore()

	r := NewRedisRegistry(api, store, time.Hour)
	defer r.Close()

	for i := 0; i < 3; i++ {
		_, err := r.Get(context.Background(), "s1")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.touched["s1"])
}
