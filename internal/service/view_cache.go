package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"participation-service/internal/metrics"
)

// ViewCache stores derived per-user views between mutations
type ViewCache interface {
	Get(ctx context.Context, view string, userID uuid.UUID, dest interface{}) bool
	Set(ctx context.Context, view string, userID uuid.UUID, value interface{})
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// cachedViews lists every view invalidated on mutation
var cachedViews = []string{metrics.ViewStatistics, metrics.ViewTracking}

func viewCacheKey(view string, userID uuid.UUID) string {
	return fmt.Sprintf("participation:%s:%s", view, userID.String())
}

type redisViewCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRedisViewCache creates a ViewCache backed by redis. Cache errors are logged and
// treated as misses so a redis outage only costs recomputation.
func NewRedisViewCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) ViewCache {
	return &redisViewCache{client: client, ttl: ttl, metrics: m, logger: logger}
}

func (c *redisViewCache) Get(ctx context.Context, view string, userID uuid.UUID, dest interface{}) bool {
	key := viewCacheKey(view, userID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read view cache", zap.String("key", key), zap.Error(err))
		}
		c.metrics.RecordViewCache(view, false)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Discarding undecodable view cache entry", zap.String("key", key), zap.Error(err))
		c.metrics.RecordViewCache(view, false)
		return false
	}

	c.metrics.RecordViewCache(view, true)
	return true
}

func (c *redisViewCache) Set(ctx context.Context, view string, userID uuid.UUID, value interface{}) {
	key := viewCacheKey(view, userID)

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("Failed to encode view cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write view cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisViewCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	keys := make([]string, 0, len(cachedViews))
	for _, view := range cachedViews {
		keys = append(keys, viewCacheKey(view, userID))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("Failed to invalidate view cache", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

type noopViewCache struct{}

// NewNoopViewCache returns a ViewCache that never stores anything
func NewNoopViewCache() ViewCache {
	return noopViewCache{}
}

func (noopViewCache) Get(context.Context, string, uuid.UUID, interface{}) bool { return false }
func (noopViewCache) Set(context.Context, string, uuid.UUID, interface{})      {}
func (noopViewCache) Invalidate(context.Context, uuid.UUID)                    {}
