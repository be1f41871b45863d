package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps each blob as a string key under a prefix.
type RedisBlobStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBlobStore wraps a redis client.
func NewRedisBlobStore(client redis.Cmdable, prefix string) *RedisBlobStore {
	return &RedisBlobStore{client: client, prefix: prefix}
}

func (s *RedisBlobStore) key(key string) string {
	return s.prefix + key
}

// Get returns the stored bytes.
func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return value, nil
}

// Put stores the bytes without expiry.
func (s *RedisBlobStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the key.
func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
