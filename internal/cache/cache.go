package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrClosed       = errors.New("cache is closed")
	ErrInvalidKey   = errors.New("invalid cache key")
)

// Cache is a read-through store for listing-API responses. Values must
// be *string or implement encoding.BinaryMarshaler/BinaryUnmarshaler.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL: 5 * time.Minute,
	}
}

// Disabled returns a cache on which every Get misses and every write is
// dropped. Used when no Redis address is configured and in tests.
func Disabled() Cache {
	return disabled{}
}

type disabled struct{}

func (disabled) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (disabled) Get(ctx context.Context, key string, value interface{}) error {
	return ErrNotFound
}

func (disabled) Delete(ctx context.Context, key string) error { return nil }

func (disabled) Clear(ctx context.Context) error { return nil }

func (disabled) Close() error { return nil }
