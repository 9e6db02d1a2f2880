// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/config"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Cache is a best-effort read-through cache for query responses. Lookups
// and stores never fail a request; errors are logged and treated as misses.
type Cache interface {
	GetResponse(ctx context.Context, key string) (*models.MetricResponse, bool)
	SetResponse(ctx context.Context, key string, resp *models.MetricResponse)
}

// New returns a redis-backed cache, or a no-op cache when no redis host
// is configured.
func New(cfg config.RedisConfig) Cache {
	if cfg.Host == "" {
		nuts.L.Infof("[Cache] No redis host configured, response caching disabled")
		return NopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	nuts.L.Infof("[Cache] Using redis at %s:%d (ttl %s)", cfg.Host, cfg.Port, cfg.CacheTTL)
	return &RedisCache{client: client, ttl: cfg.CacheTTL}
}

// RedisCache stores serialized responses under a short TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *RedisCache) GetResponse(ctx context.Context, key string) (*models.MetricResponse, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[Cache] Get %s failed: %v", key, err)
		}
		return nil, false
	}

	var resp models.MetricResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		nuts.L.Warnf("[Cache] Corrupt entry at %s: %v", key, err)
		return nil, false
	}
	return &resp, true
}

func (c *RedisCache) SetResponse(ctx context.Context, key string, resp *models.MetricResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		nuts.L.Warnf("[Cache] Encode %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Set %s failed: %v", key, err)
	}
}

// NopCache misses every lookup.
type NopCache struct{}

func (NopCache) GetResponse(ctx context.Context, key string) (*models.MetricResponse, bool) {
	return nil, false
}

func (NopCache) SetResponse(ctx context.Context, key string, resp *models.MetricResponse) {}
