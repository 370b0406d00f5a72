package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/metrics"
	"github.com/zolkinka/pro-sto-service-admin-sub002/internal/model"
)

// cachedHours is the stored payload. Closed days are cached too, so absence
// of working hours does not force recomputation.
type cachedHours struct {
	Closed bool                `json:"closed"`
	Hours  *model.WorkingHours `json:"hours,omitempty"`
}

// HoursCache caches resolved working hours per center and date in Redis.
// A nil Redis client or non-positive TTL disables the cache; all methods
// then degrade to no-ops.
type HoursCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewHoursCache creates a cache over the given Redis client.
func NewHoursCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *HoursCache {
	return &HoursCache{redis: client, ttl: ttl, log: log}
}

func (c *HoursCache) enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

func hoursKey(centerUUID, date string) string {
	return fmt.Sprintf("hours:%s:%s", centerUUID, date)
}

// Get returns the cached working hours for a center and date. The second
// return value reports whether a cached value was found; a found nil result
// means a cached closed day.
func (c *HoursCache) Get(ctx context.Context, centerUUID string, date time.Time) (*model.WorkingHours, bool) {
	if !c.enabled() {
		return nil, false
	}

	val, err := c.redis.Get(ctx, hoursKey(centerUUID, date.Format(model.DateLayout))).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("hours cache read failed")
		}
		metrics.IncCacheLookup("miss")
		return nil, false
	}

	var cached cachedHours
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		metrics.IncCacheLookup("miss")
		return nil, false
	}
	metrics.IncCacheLookup("hit")
	return cached.Hours, true
}

// Set stores the resolved working hours for a center and date.
func (c *HoursCache) Set(ctx context.Context, centerUUID string, date time.Time, hours *model.WorkingHours) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(cachedHours{Closed: hours == nil, Hours: hours})
	if err != nil {
		return
	}
	key := hoursKey(centerUUID, date.Format(model.DateLayout))
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Msg("hours cache write failed")
	}
}

// InvalidateCenter drops all cached dates of a center after a schedule change.
func (c *HoursCache) InvalidateCenter(ctx context.Context, centerUUID string) {
	if !c.enabled() {
		return
	}

	pattern := fmt.Sprintf("hours:%s:*", centerUUID)
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Debug().Err(err).Msg("hours cache scan failed")
		return
	}
	if len(keys) > 0 {
		if err := c.redis.Del(ctx, keys...).Err(); err != nil {
			c.log.Debug().Err(err).Msg("hours cache invalidation failed")
		}
	}
}
