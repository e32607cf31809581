package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the key/value store used for short lived state such as search sessions.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key, with TTL. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
	// Close releases background workers and connections.
	Close() error
}

// Config selects and tunes a backend.
type Config struct {
	Backend       string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	PoolSize      int           `yaml:"pool_size" env:"REDIS_POOL_SIZE" env-default:"20"`
	OpTimeout     time.Duration `yaml:"op_timeout" env:"REDIS_OP_TIMEOUT" env-default:"100ms"`
	Shards        int           `yaml:"shards" env:"CACHE_SHARDS" env-default:"64"`
	JanitorPeriod time.Duration `yaml:"janitor_period" env:"CACHE_JANITOR_PERIOD" env-default:"30s"`
}

// RedisOptions converts the redis part of the config.
func (c *Config) RedisOptions() *RedisOptions {
	return &RedisOptions{
		Addr:            c.RedisAddr,
		Password:        c.RedisPassword,
		DB:              c.RedisDB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    1,
		MaxRetries:      2,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 256 * time.Millisecond,
		OpTimeout:       c.OpTimeout,
	}
}

// New builds the backend named by cfg.Backend.
func New[V any](cfg *Config) (Cache[V], error) {
	switch cfg.Backend {
	case RedisBackend:
		return NewRedisCache[V](cfg.RedisOptions()), nil
	case MemoryBackend, "":
		shards := cfg.Shards
		if shards <= 0 {
			shards = 64
		}
		period := cfg.JanitorPeriod
		if period <= 0 {
			period = 30 * time.Second
		}
		return NewMemoryCacheWithOptions[V](shards, period), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
