package packets

// RESPONSES FOR /api/tv/*

// PlaylistResponse tells a player which playlist to show right now. PlaylistID is null
// when nothing is scheduled and the tenant has no fallback playlist.
type PlaylistResponse struct {
	PlaylistID *int   `json:"playlist_id"`
	ScheduleID *int   `json:"schedule_id"`
	Source     string `json:"source"`
	ResolvedAt string `json:"resolved_at"`
}
