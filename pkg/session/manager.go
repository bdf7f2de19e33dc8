package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the subset of the redis client used for session bookkeeping.
type Store interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	SessionKey(sessionID string) string
}

// Manager mints anonymous shopper session ids and keeps their liveness in Redis.
// The cookie at the transport boundary and the redis entry share the same TTL.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager builds a session manager. A nil store is allowed; sessions then live only
// in the cookie.
func NewManager(store Store, ttl time.Duration) (*Manager, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Mint generates a fresh session id and registers it.
func (m *Manager) Mint(ctx context.Context) string {
	id := uuid.NewString()
	m.Touch(ctx, id)
	return id
}

// Touch records session liveness, extending the TTL on repeat visits. Redis being down
// must not block shopping, so failures are swallowed.
func (m *Manager) Touch(ctx context.Context, sessionID string) {
	if m.store == nil || sessionID == "" {
		return
	}
	key := m.store.SessionKey(sessionID)
	created, err := m.store.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), m.ttl)
	if err != nil {
		return
	}
	if !created {
		_, _ = m.store.Expire(ctx, key, m.ttl)
	}
}
