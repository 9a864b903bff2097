package model

import "time"

// Tenant owns users, playlists and schedules. FallbackPlaylistID is what its players show
// when no schedule is active.
type Tenant struct {
	ID                 int       `db:"id"                   json:"id"`
	Name               string    `db:"name"                 json:"name"`
	FallbackPlaylistID *int      `db:"fallback_playlist_id" json:"fallback_playlist_id"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}
