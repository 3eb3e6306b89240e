package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/trivia/internal/quiz"
)

// DefaultRedisPrefix namespaces cache keys.
const DefaultRedisPrefix = "trivia:quiz:"

// RedisConfig holds connection settings for the Redis cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// Redis stores quizzes as JSON strings with a TTL.
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis connects to cfg.Addr and checks the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisFromClient(rdb, cfg.Prefix, cfg.TTL), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key Key) (*quiz.Quiz, error) {
	raw, err := r.rdb.Get(ctx, r.prefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	q, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode cached quiz %s: %w", key, err)
	}
	return q, nil
}

func (r *Redis) Put(ctx context.Context, key Key, q *quiz.Quiz) error {
	raw, err := encode(q)
	if err != nil {
		return fmt.Errorf("encode quiz %s: %w", key, err)
	}
	if err := r.rdb.Set(ctx, r.prefix+key.String(), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
