package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each name as a plain redis string under Prefix.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{Client: client, Prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	if s.Prefix == "" {
		return name
	}
	return s.Prefix + ":" + name
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	v, err := s.Client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, name string, value []byte) error {
	return s.Client.Set(ctx, s.key(name), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.Client.Del(ctx, s.key(name)).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
