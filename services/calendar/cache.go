package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"panelwise/models"
	"panelwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// busySource is what the cache wraps; satisfied by GoogleBusyProvider.
type busySource interface {
	FetchBusyIntervals(ctx context.Context, participant models.Participant, fromUTC, toUTC time.Time) ([]models.BusyInterval, error)
}

// CachedBusyProvider fronts a busy-interval source with a short-TTL
// redis cache keyed by participant and span. Caching lives here in the
// adapter; the scheduling core stays cache-free.
type CachedBusyProvider struct {
	Inner busySource
	Cache *redis.Client
	TTL   time.Duration
}

// FetchBusyIntervals serves from cache when possible. Cache failures are
// non-fatal: the call falls through to the backend.
func (c *CachedBusyProvider) FetchBusyIntervals(ctx context.Context, participant models.Participant, fromUTC, toUTC time.Time) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()
	key := fmt.Sprintf("busy:%s:%d:%d", participant.ID, fromUTC.Unix(), toUTC.Unix())

	if data, err := c.Cache.Get(ctx, key).Bytes(); err == nil {
		var cached []models.BusyInterval
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		logger.Debug("discarding corrupt busy cache entry", zap.String("key", key))
	}

	intervals, err := c.Inner.FetchBusyIntervals(ctx, participant, fromUTC, toUTC)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(intervals); err == nil {
		if err := c.Cache.Set(ctx, key, data, c.TTL).Err(); err != nil {
			logger.Debug("failed to cache busy intervals", zap.String("key", key), zap.Error(err))
		}
	}
	return intervals, nil
}
