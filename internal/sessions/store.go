package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the set of active session token ids in Redis.
// A token is valid only while its id is present; logout deletes the id.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a new RedisStore instance.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(tokenID uuid.UUID) string {
	return fmt.Sprintf("session:%s", tokenID)
}

// Save registers a token id as an active session with the store TTL.
func (s *RedisStore) Save(ctx context.Context, tokenID uuid.UUID) error {
	return s.rdb.Set(ctx, sessionKey(tokenID), "1", s.ttl).Err()
}

// Exists reports whether the token id is still an active session.
func (s *RedisStore) Exists(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete revokes a session.
func (s *RedisStore) Delete(ctx context.Context, tokenID uuid.UUID) error {
	return s.rdb.Del(ctx, sessionKey(tokenID)).Err()
}

// MemoryStore is the in-process fallback session registry used when Redis
// is unreachable at startup. Sessions do not survive a restart.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[uuid.UUID]time.Time // token id -> expiry
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[uuid.UUID]time.Time)}
}

// Save registers a token id as an active session.
func (s *MemoryStore) Save(ctx context.Context, tokenID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[tokenID] = time.Now().Add(s.ttl)
	return nil
}

// Exists reports whether the token id is still an active session.
func (s *MemoryStore) Exists(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.m[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.m, tokenID)
		return false, nil
	}
	return true, nil
}

// Delete revokes a session.
func (s *MemoryStore) Delete(ctx context.Context, tokenID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, tokenID)
	return nil
}
