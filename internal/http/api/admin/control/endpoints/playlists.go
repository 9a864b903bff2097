package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

type PlaylistController struct {
	store     db.Store
	schedules *service.ScheduleService
}

func newPlaylistController(store db.Store, schedules *service.ScheduleService) *PlaylistController {
	return &PlaylistController{store: store, schedules: schedules}
}

// PlaylistModule mounts the authenticated /playlists endpoints and the tenant's fallback
// playlist setting.
func PlaylistModule(store db.Store, schedules *service.ScheduleService) api.Module {
	ctl := newPlaylistController(store, schedules)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.PUT("/tenant/fallback-playlist", ctl.setFallbackPlaylist)
	})
}

// GET /api/admin/playlists
func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.Error) {
	list, err := p.store.ListPlaylists(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.FromError(err)
	}

	response := make([]packets.PlaylistResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.NewPlaylistResponse(it))
	}
	return response, nil
}

// POST /api/admin/playlists
func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	pl, err := p.store.CreatePlaylist(ctx.Request.Context(), user.TenantID, request.Name, request.Description)
	if err != nil {
		return nil, api.FromError(err)
	}
	log.Info().Int("tenant_id", user.TenantID).Int("playlist_id", pl.ID).Msg("playlist created")
	return api.Created{Body: packets.NewPlaylistResponse(pl)}, nil
}

// PUT /api/admin/tenant/fallback-playlist
func (p *PlaylistController) setFallbackPlaylist(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.FallbackPlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	if err := p.schedules.SetFallbackPlaylist(ctx.Request.Context(), user.TenantID, request.PlaylistID); err != nil {
		return nil, api.FromError(err)
	}
	return gin.H{"playlist_id": request.PlaylistID}, nil
}
