package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds configuration for the scrape cache.
type Config struct {
	// URL is the redis connection URL. Empty disables caching.
	URL string `mapstructure:"url" default:""`
	// TTLSeconds is how long cached pages stay valid.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"3600"`
}

// Cache is a thin redis-backed page cache. When redis is not configured
// or unreachable it degrades to a no-op so the pipeline keeps working.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
}

// New creates a cache from the configuration. Connection failures are
// logged but never fatal.
func New(cfg Config, log *zap.Logger) *Cache {
	if cfg.URL == "" {
		return &Cache{}
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Warn("Invalid cache URL, caching disabled", zap.Error(err))
		return &Cache{}
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("Cache unreachable, caching disabled", zap.Error(err))
		return &Cache{}
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	log.Info("Scrape cache connected")
	return &Cache{client: client, ttl: ttl, enabled: true}
}

// Get returns the cached value for key, or "" on miss or when disabled.
// A nil cache behaves as disabled.
func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil || !c.enabled {
		return ""
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set stores a value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil || !c.enabled {
		return
	}
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}
