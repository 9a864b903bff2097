package endpoints

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

const defaultPreviewDays = 7

type ScheduleController struct {
	schedules *service.ScheduleService
}

func NewScheduleController(schedules *service.ScheduleService) *ScheduleController {
	return &ScheduleController{schedules: schedules}
}

// ScheduleModule mounts the authenticated /schedules endpoints. Every call is scoped to
// the tenant of the logged-in user.
func ScheduleModule(schedules *service.ScheduleService) api.Module {
	ctl := NewScheduleController(schedules)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/active", ctl.activeSchedules)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.PATCH("/schedules/:id/toggle", ctl.toggleSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)

		// advisory checks, nothing is stored
		c.POST("/schedules/conflicts", ctl.checkConflicts)
		c.POST("/schedules/override-analysis", ctl.overrideAnalysis)
		c.POST("/schedules/preview", ctl.previewDraft)
		c.GET("/schedules/:id/preview", ctl.previewSchedule)
	})
}

func scheduleID(ctx *gin.Context) (int, *api.Error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, api.BadRequest("invalid schedule id")
	}
	return id, nil
}

func previewDays(ctx *gin.Context) (int, *api.Error) {
	raw := ctx.Query("days")
	if raw == "" {
		return defaultPreviewDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, api.BadRequest("days must be a number")
	}
	return days, nil
}

// GET /api/admin/schedules
func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.Error) {
	list, err := s.schedules.List(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.NewScheduleResponses(list), nil
}

// POST /api/admin/schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	sc, err := s.schedules.Create(ctx.Request.Context(), user.TenantID, request.ToInput())
	if err != nil {
		return nil, api.FromError(err)
	}
	return api.Created{Body: packets.NewScheduleResponse(*sc)}, nil
}

// GET /api/admin/schedules/active?at=2025-03-05T10:00:00Z
func (s *ScheduleController) activeSchedules(ctx *gin.Context, user *model.User) (any, *api.Error) {
	at := time.Now()
	if raw := ctx.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, api.BadRequest("at must be an RFC3339 timestamp")
		}
		at = parsed
	}

	list, err := s.schedules.ActiveSchedulesAt(ctx.Request.Context(), user.TenantID, at)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.ActiveSchedulesResponse{
		At:        at.Format(time.RFC3339),
		Schedules: packets.NewScheduleResponses(list),
	}, nil
}

// GET /api/admin/schedules/:id
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, apiErr := scheduleID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	sc, err := s.schedules.Get(ctx.Request.Context(), user.TenantID, id)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.NewScheduleResponse(*sc), nil
}

// PUT /api/admin/schedules/:id
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, apiErr := scheduleID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	sc, err := s.schedules.Update(ctx.Request.Context(), user.TenantID, id, request.ToUpdate())
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.NewScheduleResponse(*sc), nil
}

// PATCH /api/admin/schedules/:id/toggle
func (s *ScheduleController) toggleSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, apiErr := scheduleID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	sc, err := s.schedules.Toggle(ctx.Request.Context(), user.TenantID, id)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.NewScheduleResponse(*sc), nil
}

// DELETE /api/admin/schedules/:id
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, apiErr := scheduleID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.schedules.Delete(ctx.Request.Context(), user.TenantID, id); err != nil {
		return nil, api.FromError(err)
	}
	return gin.H{"message": "deleted"}, nil
}

// POST /api/admin/schedules/conflicts
func (s *ScheduleController) checkConflicts(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	conflicts, err := s.schedules.CheckConflicts(ctx.Request.Context(), user.TenantID, request.ToInput(), request.ExcludeID)
	if err != nil {
		return nil, api.FromError(err)
	}
	summaries := make([]scheduling.ConflictSummary, 0, len(conflicts))
	for _, c := range conflicts {
		summaries = append(summaries, scheduling.Summarize(c))
	}
	return packets.ConflictsResponse{HasConflicts: len(summaries) > 0, Conflicts: summaries}, nil
}

// POST /api/admin/schedules/override-analysis
func (s *ScheduleController) overrideAnalysis(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	analysis, err := s.schedules.CanOverride(ctx.Request.Context(), user.TenantID, request.ToInput(), request.ExcludeID)
	if err != nil {
		return nil, api.FromError(err)
	}
	return analysis, nil
}

// POST /api/admin/schedules/preview?days=14
func (s *ScheduleController) previewDraft(ctx *gin.Context, user *model.User) (any, *api.Error) {
	days, apiErr := previewDays(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	preview, err := s.schedules.Preview(user.TenantID, request.ToInput(), days)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.PreviewResponse{Days: preview}, nil
}

// GET /api/admin/schedules/:id/preview?days=14
func (s *ScheduleController) previewSchedule(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, apiErr := scheduleID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	days, apiErr := previewDays(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	preview, err := s.schedules.PreviewExisting(ctx.Request.Context(), user.TenantID, id, days)
	if err != nil {
		return nil, api.FromError(err)
	}
	return packets.PreviewResponse{Days: preview}, nil
}
