package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func (s *pgStore) CreatePlaylist(ctx context.Context, tenantID int, name string, description *string) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (tenant_id, name, description, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, tenant_id, name, description, created_at, updated_at;`
	if err := sqlx.GetContext(ctx, s.ext, &p, q, tenantID, name, description); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("CreatePlaylist failed")
		return model.Playlist{}, err
	}
	return p, nil
}

func (s *pgStore) ListPlaylists(ctx context.Context, tenantID int) ([]model.Playlist, error) {
	out := []model.Playlist{}
	const q = `
	SELECT id, tenant_id, name, description, created_at, updated_at
	  FROM playlists
	 WHERE tenant_id = $1
	 ORDER BY name, id;`
	if err := sqlx.SelectContext(ctx, s.ext, &out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListPlaylists failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) PlaylistBelongsToTenant(ctx context.Context, playlistID, tenantID int) (bool, error) {
	var ok bool
	const q = `SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1 AND tenant_id = $2);`
	if err := sqlx.GetContext(ctx, s.ext, &ok, q, playlistID, tenantID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("PlaylistBelongsToTenant failed")
		return false, err
	}
	return ok, nil
}
