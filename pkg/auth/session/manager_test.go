package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
)

type mockStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(accessID string) string {
	return "sess:" + accessID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestOpenHasRevoke(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	manager := newTestManager(store)

	require.NoError(t, manager.Open(ctx, "a1", 5))
	require.NoError(t, manager.Open(ctx, "a2", 5))
	assert.Equal(t, "5", store.data["sess:a1"])
	assert.Equal(t, time.Hour, store.ttls["sess:a1"])

	ok, err := manager.HasSession(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, manager.Revoke(ctx, "a1"))
	ok, err = manager.HasSession(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = manager.HasSession(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, ok, "revoking one token leaves the user's other sessions open")
}

func TestEmptyAccessIDRejected(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(newMockStore())
	assert.Error(t, manager.Open(ctx, " ", 1))
	assert.Error(t, manager.Revoke(ctx, ""))
	_, err := manager.HasSession(ctx, "")
	assert.Error(t, err)
}

func TestStoreErrorsPropagate(t *testing.T) {
	store := newMockStore()
	store.failErr = errors.New("redis down")
	manager := newTestManager(store)

	_, err := manager.HasSession(context.Background(), "a1")
	assert.EqualError(t, err, "redis down")
	assert.EqualError(t, manager.Open(context.Background(), "a1", 1), "redis down")
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{ExpirationMinutes: 10})
	assert.Error(t, err)
	assert.NotEqual(t, NewAccessID(), NewAccessID())
}
