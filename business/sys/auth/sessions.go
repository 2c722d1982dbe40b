package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemorySessions keeps live sessions in process memory.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewMemorySessions constructs an empty session registry.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]time.Time),
	}
}

// Add registers the session until the ttl passes.
func (ms *MemorySessions) Add(ctx context.Context, sessionID string, userID string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for id, exp := range ms.sessions {
		if now.After(exp) {
			delete(ms.sessions, id)
		}
	}

	ms.sessions[sessionID] = now.Add(ttl)
	return nil
}

// Exists reports whether the session is registered and not expired.
func (ms *MemorySessions) Exists(ctx context.Context, sessionID string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	exp, exists := ms.sessions[sessionID]
	if !exists {
		return false, nil
	}

	if time.Now().After(exp) {
		delete(ms.sessions, sessionID)
		return false, nil
	}

	return true, nil
}

// Revoke removes the session.
func (ms *MemorySessions) Revoke(ctx context.Context, sessionID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.sessions, sessionID)
	return nil
}

// =============================================================================

// RedisSessions keeps live sessions in redis so they survive a restart and
// are shared between service instances.
type RedisSessions struct {
	client *redis.Client
}

// NewRedisSessions constructs a session registry over the redis client.
func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{
		client: client,
	}
}

func (rs *RedisSessions) key(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Add registers the session until the ttl passes.
func (rs *RedisSessions) Add(ctx context.Context, sessionID string, userID string, ttl time.Duration) error {
	return rs.client.Set(ctx, rs.key(sessionID), userID, ttl).Err()
}

// Exists reports whether the session is registered.
func (rs *RedisSessions) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, err := rs.client.Get(ctx, rs.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes the session.
func (rs *RedisSessions) Revoke(ctx context.Context, sessionID string) error {
	return rs.client.Del(ctx, rs.key(sessionID)).Err()
}
