package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisSlot connection.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	Namespace string // key prefix, "<namespace>:<key>"
}

// RedisSlot stores the value under a single Redis string key.
type RedisSlot struct {
	client redis.UniversalClient
	key    string
}

var _ Slot = (*RedisSlot)(nil)

// NewRedisSlot connects lazily; call Ping to check the server.
func NewRedisSlot(opts RedisOptions, key string) *RedisSlot {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisSlotWithClient(client, opts.Namespace, key)
}

// NewRedisSlotWithClient wraps an existing client.
func NewRedisSlotWithClient(client redis.UniversalClient, namespace, key string) *RedisSlot {
	if namespace != "" {
		key = namespace + ":" + key
	}
	return &RedisSlot{client: client, key: key}
}

// Key returns the full Redis key.
func (s *RedisSlot) Key() string {
	return s.key
}

// Ping checks the connection.
func (s *RedisSlot) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSlot) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSlot) Close() error {
	return s.client.Close()
}
