package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ResolutionCache stores resolved playlists per tenant and minute. Entries are namespaced by
// a per-tenant generation counter; bumping it orphans every entry written before the bump,
// which then age out through their TTL.
type ResolutionCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewResolutionCache(rdb redis.Cmdable, ttl time.Duration) *ResolutionCache {
	return &ResolutionCache{rdb: rdb, ttl: ttl}
}

func generationKey(tenantID int) string {
	return fmt.Sprintf("tenant:%d:schedules:gen", tenantID)
}

func resolutionKey(tenantID int, generation int64, at time.Time) string {
	return fmt.Sprintf("tenant:%d:schedules:%d:resolve:%s", tenantID, generation, model.MinuteKey(at))
}

// Generation returns the tenant's current generation, 0 when it was never invalidated.
func (c *ResolutionCache) Generation(ctx context.Context, tenantID int) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached resolution for the minute containing at, if any.
func (c *ResolutionCache) Get(ctx context.Context, tenantID int, generation int64, at time.Time) (*model.Resolution, bool, error) {
	raw, err := c.rdb.Get(ctx, resolutionKey(tenantID, generation, at)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var res model.Resolution
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("decode cached resolution: %w", err)
	}
	return &res, true, nil
}

func (c *ResolutionCache) Set(ctx context.Context, tenantID int, generation int64, at time.Time, res model.Resolution) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, resolutionKey(tenantID, generation, at), raw, c.ttl).Err()
}

// Invalidate moves the tenant to a new generation.
func (c *ResolutionCache) Invalidate(ctx context.Context, tenantID int) error {
	return c.rdb.Incr(ctx, generationKey(tenantID)).Err()
}
