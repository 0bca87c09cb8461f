package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mytheresa/go-configurable-catalog/app/configurable"
	"github.com/mytheresa/go-configurable-catalog/app/metrics"
	"github.com/mytheresa/go-configurable-catalog/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "variants:"

// Variants is a read-through cache of variant maps. An in-process LRU sits
// in front of an optional Redis; a failing tier is logged and skipped.
// Cached maps are shared and must not be modified by callers.
type Variants struct {
	source configurable.VariantSource
	local  *expirable.LRU[uint, configurable.VariantMap]
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewVariants wraps source. size <= 0 disables the LRU, a nil client
// disables Redis.
func NewVariants(source configurable.VariantSource, client *redis.Client, size int, ttl time.Duration, logger *zap.SugaredLogger) *Variants {
	c := &Variants{
		source: source,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
	if size > 0 {
		c.local = expirable.NewLRU[uint, configurable.VariantMap](size, nil, ttl)
	}
	return c
}

func (c *Variants) BuildVariantMap(ctx context.Context, parent *models.Product) (configurable.VariantMap, error) {
	if parent == nil {
		return nil, configurable.ErrNilProduct
	}

	if c.local != nil {
		if m, ok := c.local.Get(parent.ID); ok {
			metrics.CacheLookups.WithLabelValues("local", "hit").Inc()
			return m, nil
		}
		metrics.CacheLookups.WithLabelValues("local", "miss").Inc()
	}

	if m, ok := c.getRemote(ctx, parent.ID); ok {
		if c.local != nil {
			c.local.Add(parent.ID, m)
		}
		return m, nil
	}

	m, err := c.source.BuildVariantMap(ctx, parent)
	if err != nil {
		return nil, err
	}

	if c.local != nil {
		c.local.Add(parent.ID, m)
	}
	c.setRemote(ctx, parent.ID, m)
	return m, nil
}

// Invalidate drops the cached map of a parent from every tier.
func (c *Variants) Invalidate(ctx context.Context, parentID uint) error {
	if c.local != nil {
		c.local.Remove(parentID)
	}
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, cacheKey(parentID)).Err()
}

func (c *Variants) getRemote(ctx context.Context, parentID uint) (configurable.VariantMap, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, cacheKey(parentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookups.WithLabelValues("redis", "miss").Inc()
			return nil, false
		}
		c.logger.Warnw("variant cache read failed", "product_id", parentID, "error", err)
		metrics.CacheLookups.WithLabelValues("redis", "error").Inc()
		return nil, false
	}

	var variants []configurable.Variant
	if err := json.Unmarshal(data, &variants); err != nil {
		c.logger.Warnw("variant cache entry is corrupt", "product_id", parentID, "error", err)
		metrics.CacheLookups.WithLabelValues("redis", "error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("redis", "hit").Inc()
	return configurable.VariantMap(variants), true
}

func (c *Variants) setRemote(ctx context.Context, parentID uint, m configurable.VariantMap) {
	if c.redis == nil {
		return
	}

	// stored as a plain array, the ordered object form is for clients only
	data, err := json.Marshal([]configurable.Variant(m))
	if err != nil {
		c.logger.Warnw("variant cache encode failed", "product_id", parentID, "error", err)
		return
	}
	if err := c.redis.Set(ctx, cacheKey(parentID), data, c.ttl).Err(); err != nil {
		c.logger.Warnw("variant cache write failed", "product_id", parentID, "error", err)
	}
}

func cacheKey(parentID uint) string {
	return keyPrefix + strconv.FormatUint(uint64(parentID), 10)
}
