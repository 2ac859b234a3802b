// Package cache implements the headline cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hoanghai1803/newslens/internal/feeds"
	"github.com/hoanghai1803/newslens/internal/models"
	"github.com/redis/go-redis/v9"
)

// Compile-time interface check.
var _ feeds.HeadlineCache = (*RedisCache)(nil)

const keyPrefix = "newslens:headlines"

// RedisCache stores headline batches as JSON with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr, which is either host:port or a
// redis:// URL, and verifies the connection with PING.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func headlineKey(region models.Region, category models.Category) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, region, category)
}

// Get returns the cached batch for the pair. A missing key is reported as
// ok == false with a nil error.
func (c *RedisCache) Get(ctx context.Context, region models.Region, category models.Category) ([]models.Article, bool, error) {
	raw, err := c.client.Get(ctx, headlineKey(region, category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached headlines: %w", err)
	}

	var articles []models.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, false, fmt.Errorf("decoding cached headlines: %w", err)
	}
	return articles, true, nil
}

// Set stores the batch for the pair, replacing any previous entry.
func (c *RedisCache) Set(ctx context.Context, region models.Region, category models.Category, articles []models.Article) error {
	raw, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encoding headlines: %w", err)
	}
	if err := c.client.Set(ctx, headlineKey(region, category), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached headlines: %w", err)
	}
	return nil
}
