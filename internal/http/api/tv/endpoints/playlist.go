package endpoints

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

type PlaylistController struct {
	schedules *service.ScheduleService
}

func newPlaylistController(schedules *service.ScheduleService) *PlaylistController {
	return &PlaylistController{schedules: schedules}
}

// PlaylistModule mounts the player-facing resolution endpoint. Players poll it and
// revalidate with If-None-Match.
func PlaylistModule(schedules *service.ScheduleService) api.Module {
	ctl := newPlaylistController(schedules)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/tenants/:tenant_id/playlist", ctl.currentPlaylist)
	})
}

func optionalID(id *int) string {
	if id == nil {
		return "none"
	}
	return strconv.Itoa(*id)
}

// resolutionETag changes only when the answer a player acts on changes, not every minute.
func resolutionETag(res model.Resolution) string {
	return fmt.Sprintf(`W/"%s-%s-%s"`, res.Source, optionalID(res.PlaylistID), optionalID(res.ScheduleID))
}

// GET /api/tv/tenants/:tenant_id/playlist?at=2025-03-05T10:00:00Z
func (p *PlaylistController) currentPlaylist(ctx *gin.Context) (any, *api.Error) {
	tenantID, err := strconv.Atoi(ctx.Param("tenant_id"))
	if err != nil || tenantID < 1 {
		return nil, api.BadRequest("invalid tenant id")
	}
	at := time.Now()
	if raw := ctx.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, api.BadRequest("at must be an RFC3339 timestamp")
		}
		at = parsed
	}

	res, err := p.schedules.ResolveActivePlaylist(ctx.Request.Context(), tenantID, at)
	if err != nil {
		return nil, api.FromError(err)
	}

	etag := resolutionETag(res)
	ctx.Header("ETag", etag)
	ctx.Header("Cache-Control", "no-cache")
	if ctx.GetHeader("If-None-Match") == etag {
		return api.NotModified, nil
	}
	return packets.PlaylistResponse{
		PlaylistID: res.PlaylistID,
		ScheduleID: res.ScheduleID,
		Source:     res.Source,
		ResolvedAt: res.ResolvedAt.Format(time.RFC3339),
	}, nil
}
