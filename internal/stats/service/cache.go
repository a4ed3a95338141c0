package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const statsCacheKeyPrefix = "stats:v1"

// Cache is a short-TTL Redis cache for stats responses. The dashboard polls
// aggressively; a minute of staleness is acceptable, recomputing the full
// three-source aggregation on every poll is not.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCache creates a stats cache. Returns nil when client is nil so callers
// can wire "no redis configured" as "no caching".
func NewCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// GetStats looks up a cached response for the query. Cache failures are
// treated as misses; the cache never breaks a stats call.
func (c *Cache) GetStats(ctx context.Context, query transport.StatsQuery) (transport.StatsResponse, bool) {
	payload, err := c.client.Get(ctx, statsKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil && c.log != nil {
			c.log.Warn("stats cache read failed", "error", err.Error())
		}
		return transport.StatsResponse{}, false
	}

	var response transport.StatsResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return transport.StatsResponse{}, false
	}
	return response, true
}

// SetStats stores a response under the query's key.
func (c *Cache) SetStats(ctx context.Context, query transport.StatsQuery, response transport.StatsResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(query), payload, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("stats cache write failed", "error", err.Error())
	}
}

func statsKey(query transport.StatsQuery) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d", statsCacheKeyPrefix, query.Filter, query.Date, query.Month, query.Year)
}
