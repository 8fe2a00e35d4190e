package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Store persists session snapshots. Save is a single atomic write of the
// whole snapshot; Load returns nil when no snapshot exists.
type Store interface {
	Save(ctx context.Context, key string, snap Snapshot) error
	Load(ctx context.Context, key string) (*Snapshot, error)
	Clear(ctx context.Context, key string) error
}

// RedisStore keeps snapshots as JSON blobs in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, key string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snap, nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, sessionKeyPrefix+key).Err()
}

// MemoryStore is an in-process Store used in tests and single-node setups.
// It goes through the same JSON encoding as RedisStore so snapshots
// round-trip identically.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, key string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snap, nil
}

func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
