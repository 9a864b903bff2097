package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const (
	sourceCache  = "cache"
	sourceEngine = "engine"
)

// ResolveActivePlaylist decides what a tenant's players show at the instant: the playlist
// of the winning schedule, else the tenant's fallback playlist, else nothing. Results are
// cached per minute and concurrent misses for the same minute share one computation.
func (s *ScheduleService) ResolveActivePlaylist(ctx context.Context, tenantID int, at time.Time) (model.Resolution, error) {
	started := time.Now()
	at = at.Truncate(time.Minute)

	var generation int64
	cached := s.cache != nil
	if cached {
		gen, err := s.cache.Generation(ctx, tenantID)
		if err != nil {
			log.Warn().Err(err).Int("tenant_id", tenantID).Msg("resolution cache unavailable")
			cached = false
		}
		generation = gen
	}
	if cached {
		res, found, err := s.cache.Get(ctx, tenantID, generation, at)
		if err != nil {
			log.Warn().Err(err).Int("tenant_id", tenantID).Msg("failed to read resolution cache")
		}
		if found {
			s.metrics.Resolution(sourceCache, res.Source, time.Since(started))
			return *res, nil
		}
	}

	key := fmt.Sprintf("%d:%d:%s", tenantID, generation, model.MinuteKey(at))
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		res, err := s.resolve(ctx, tenantID, at)
		if err != nil {
			return model.Resolution{}, err
		}
		if cached {
			if err := s.cache.Set(ctx, tenantID, generation, at, res); err != nil {
				log.Warn().Err(err).Int("tenant_id", tenantID).Msg("failed to write resolution cache")
			}
		}
		return res, nil
	})
	if err != nil {
		return model.Resolution{}, err
	}
	res := v.(model.Resolution)
	s.metrics.Resolution(sourceEngine, res.Source, time.Since(started))
	return res, nil
}

func (s *ScheduleService) resolve(ctx context.Context, tenantID int, at time.Time) (model.Resolution, error) {
	res := model.Resolution{ResolvedAt: at}

	winner, err := s.resolver.Resolve(ctx, tenantID, at)
	if err != nil {
		return res, err
	}
	if winner != nil {
		playlistID, scheduleID := winner.PlaylistID, winner.ID
		res.PlaylistID = &playlistID
		res.ScheduleID = &scheduleID
		res.Source = model.SourceSchedule
		return res, nil
	}

	tenant, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return res, notFound(err, "tenant", tenantID)
	}
	res.PlaylistID = tenant.FallbackPlaylistID
	res.Source = model.SourceFallback
	return res, nil
}
