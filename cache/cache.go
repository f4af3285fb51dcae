// Package cache is an optional read-through cache for the public catalog top lists.
package cache

import (
	"byway/config"
	"byway/utils/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const catalogPrefix = "catalog:"

type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// InvalidateCatalog drops every key written under CatalogKey.
	InvalidateCatalog(ctx context.Context) error
}

// CatalogKey joins the parts into a key under the catalog namespace.
func CatalogKey(parts ...interface{}) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	return catalogPrefix + strings.Join(strs, ":")
}

// GetOrLoad serves key from the cache or calls load and stores its result.
// Cache failures never fail the request.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, load func() (T, error)) (T, error) {
	var cached T
	if ok, err := c.Get(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	_ = c.Set(ctx, key, v)
	return v, nil
}

// New returns a redis cache when REDIS_ADDR is set and a no-op cache otherwise.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (Cache, error) {
	if cfg.RedisAddr == "" {
		return Noop{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return Noop{}, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return NewRedis(rdb, cfg.CacheTTL, log), nil
}

type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error { return nil }
func (Noop) InvalidateCatalog(context.Context) error { return nil }

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Redis{rdb: rdb, ttl: ttl, log: log.With("component", "cache")}
}

func (r *Redis) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		r.log.Warn("Cache read failed", "key", key, "error", err)
		return false, err
	}
	if err := sonic.Unmarshal(val, dst); err != nil {
		r.log.Warn("Cache entry undecodable", "key", key, "error", err)
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Warn("Cache write failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *Redis) InvalidateCatalog(ctx context.Context) error {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, catalogPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}
