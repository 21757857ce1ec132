package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	redisclient "github.com/angelmondragon/orderdesk-backend/pkg/redis"
)

var errAccessIDRequired = errors.New("access id is required")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(accessID string) string
}

// Manager tracks which access tokens are still live. An access token is honoured
// only while the entry named by its jti exists.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker is the read-only surface used by the auth middleware.
type Checker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager builds a Redis-backed manager whose entries live as long as the tokens.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, keyer: client, ttl: ttl}, nil
}

// Open records a session for accessID owned by userID.
func (m *Manager) Open(ctx context.Context, accessID string, userID uint64) error {
	if strings.TrimSpace(accessID) == "" {
		return errAccessIDRequired
	}
	return m.store.Set(ctx, m.keyer.SessionKey(accessID), strconv.FormatUint(userID, 10), m.ttl)
}

// HasSession reports whether accessID has not been revoked or expired.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, errAccessIDRequired
	}
	return m.store.Exists(ctx, m.keyer.SessionKey(accessID))
}

// Revoke ends the session for accessID. Other sessions of the same user stay open.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return errAccessIDRequired
	}
	return m.store.Del(ctx, m.keyer.SessionKey(accessID))
}

// NewAccessID produces the identifier used as JWT jti and session key.
func NewAccessID() string {
	return uuid.NewString()
}
