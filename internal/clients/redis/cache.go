package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eduforge/eduforge-backend/internal/platform/envutil"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

// ContentCache is a read-through cache in front of the generated_content
// table. It is optional: when REDIS_ADDR is unset the service layer runs
// without it and every lookup goes to Postgres.
type ContentCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type contentCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewContentCache(log *logger.Logger) (ContentCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(envutil.String("REDIS_ADDR", ""))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &contentCache{
		log: log.With("service", "RedisContentCache"),
		rdb: rdb,
		ttl: envutil.Seconds("REDIS_CONTENT_TTL_SECONDS", 24*time.Hour),
	}, nil
}

// CacheKey builds the cache key for one user's generated lesson.
func CacheKey(userID, topic, difficulty string) string {
	return fmt.Sprintf("content:%s:%s:%s", userID, strings.ToLower(strings.TrimSpace(topic)), difficulty)
}

// Get returns (nil, nil) on a cache miss.
func (c *contentCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func (c *contentCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}

func (c *contentCache) Close() error {
	return c.rdb.Close()
}
