package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists raw settings documents per profile. Get returns nil data and
// no error when nothing is saved.
type Store interface {
	Get(ctx context.Context, profile string) ([]byte, error)
	Put(ctx context.Context, profile string, data []byte) error
}

// RedisStore keeps settings under settings:<profile> with no expiry.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(profile string) string {
	return "settings:" + profile
}

func (s *RedisStore) Get(ctx context.Context, profile string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, profile string, data []byte) error {
	if err := s.client.Set(ctx, s.key(profile), data, 0).Err(); err != nil {
		return fmt.Errorf("set settings: %w", err)
	}
	return nil
}

// MemoryStore is the in-process fallback when Redis is unavailable.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, profile string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[profile]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Put(_ context.Context, profile string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[profile] = append([]byte(nil), data...)
	return nil
}
