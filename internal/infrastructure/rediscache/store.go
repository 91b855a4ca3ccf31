package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
)

type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Dial connects to Redis and verifies the connection with a PING.
func Dial(ctx context.Context, cfg Config) (*redis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis addr=%s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Key is a cache key with a stable text form.
type Key interface {
	comparable
	String() string
}

// Store is a TTL cache shared between processes. Values are stored as JSON with a Redis
// expiry. Redis failures degrade to cache misses and are logged.
type Store[K Key, V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logging.Logger
}

func New[K Key, V any](client *redis.Client, prefix string, ttl time.Duration, logger *logging.Logger) *Store[K, V] {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store[K, V]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *Store[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zero V

	raw, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache get failed", "key", key.String(), "error", err)
		return zero, false
	}

	var value V
	if err := sonic.Unmarshal(raw, &value); err != nil {
		s.logger.WarnContext(ctx, "redis cache entry is not decodable", "key", key.String(), "error", err)
		return zero, false
	}
	return value, true
}

func (s *Store[K, V]) Set(ctx context.Context, key K, value V) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache encode failed", "key", key.String(), "error", err)
		return
	}
	if err := s.client.Set(ctx, s.redisKey(key), raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache set failed", "key", key.String(), "error", err)
	}
}

func (s *Store[K, V]) Delete(ctx context.Context, key K) {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache delete failed", "key", key.String(), "error", err)
	}
}

func (s *Store[K, V]) redisKey(key K) string {
	return s.prefix + key.String()
}
