package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCacheTTL is used when the cache is created with a non-positive TTL.
const DefaultCacheTTL = 10 * time.Minute

const cacheKeyPrefix = "careerpath:advice:"

// Cache stores normalized advice between requests.
type Cache interface {
	Get(ctx context.Context, key string) (*advice.Advice, bool)
	Set(ctx context.Context, key string, adv *advice.Advice)
}

// RedisCache is a Cache backed by Redis. A nil *RedisCache, or one whose
// server was unreachable at startup, bypasses every call.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisCache connects to addr and pings it. When Redis cannot be reached
// the returned cache is a pass-through and the failure is logged once.
func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing advice cache", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return &RedisCache{ttl: ttl, logger: logger}
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) unavailable() bool {
	return c == nil || c.client == nil
}

func (c *RedisCache) warnOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.Warn("redis error, bypassing advice cache", zap.Error(err))
	}
}

// Available reports whether the cache is connected.
func (c *RedisCache) Available() bool {
	return !c.unavailable()
}

// Get returns the cached advice for key. Misses, decode failures and Redis
// errors all report false.
func (c *RedisCache) Get(ctx context.Context, key string) (*advice.Advice, bool) {
	if c.unavailable() {
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnOnce(err)
		}
		return nil, false
	}
	if len(b) == 0 {
		return nil, false
	}
	var adv advice.Advice
	if err := json.Unmarshal(b, &adv); err != nil {
		c.logger.Debug("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &adv, true
}

// Set stores adv under key with the configured TTL. Errors are logged, not
// returned; the cache never fails a request.
func (c *RedisCache) Set(ctx context.Context, key string, adv *advice.Advice) {
	if c.unavailable() || adv == nil {
		return
	}
	b, err := json.Marshal(adv)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.warnOnce(err)
	}
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	if c.unavailable() {
		return nil
	}
	return c.client.Close()
}

// CacheKey derives the cache key for a request. Skills are compared
// case-insensitively after trimming, so "Go, SQL" and "go,sql" share an
// entry; order is kept because it shapes the diagram.
func CacheKey(model, prompt string, skills []string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	for _, s := range skills {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(s))))
		h.Write([]byte{0})
	}
	h.Write([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
