package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// SetFallbackPlaylist changes what the tenant's players show when no schedule is active.
// nil clears it. Cached resolutions are retired because fallback answers change too.
func (s *ScheduleService) SetFallbackPlaylist(ctx context.Context, tenantID int, playlistID *int) error {
	if err := s.store.SetFallbackPlaylist(ctx, tenantID, playlistID); err != nil {
		if playlistID != nil {
			return notFound(err, "playlist", *playlistID)
		}
		return notFound(err, "tenant", tenantID)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tenantID); err != nil {
			log.Warn().Err(err).Int("tenant_id", tenantID).Msg("failed to invalidate resolution cache")
		}
	}
	log.Info().Int("tenant_id", tenantID).Msg("fallback playlist changed")
	return nil
}
