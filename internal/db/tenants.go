package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func (s *pgStore) CreateTenant(ctx context.Context, name string) (int, error) {
	var id int
	const q = `
	INSERT INTO tenants (name, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING id;`
	if err := sqlx.GetContext(ctx, s.ext, &id, q, name); err != nil {
		log.Error().Err(err).Msg("CreateTenant failed")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) GetTenant(ctx context.Context, tenantID int) (*model.Tenant, error) {
	var t model.Tenant
	const q = `
	SELECT id, name, fallback_playlist_id, created_at, updated_at
	  FROM tenants
	 WHERE id = $1;`
	if err := sqlx.GetContext(ctx, s.ext, &t, q, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("GetTenant failed")
		return nil, err
	}
	return &t, nil
}

// SetFallbackPlaylist points the tenant at the playlist shown when nothing is scheduled.
// A nil playlistID clears it. The playlist must belong to the tenant.
func (s *pgStore) SetFallbackPlaylist(ctx context.Context, tenantID int, playlistID *int) error {
	const q = `
	UPDATE tenants t
	   SET fallback_playlist_id = $2, updated_at = now()
	 WHERE t.id = $1
	   AND ($2::int IS NULL OR EXISTS (SELECT 1 FROM playlists p WHERE p.id = $2 AND p.tenant_id = t.id));`
	res, err := s.ext.ExecContext(ctx, q, tenantID, playlistID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("SetFallbackPlaylist failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
