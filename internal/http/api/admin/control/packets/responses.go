package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

// ScheduleResponse mirrors model.Schedule, flattens times to RFC3339 and adds display labels.
type ScheduleResponse struct {
	ID         int     `json:"id"`
	PlaylistID int     `json:"playlist_id"`
	Name       string  `json:"name"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DaysOfWeek []int   `json:"days_of_week"`
	Priority   int     `json:"priority"`
	IsActive   bool    `json:"is_active"`
	TimeRange  string  `json:"time_range"`
	DateRange  string  `json:"date_range"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewScheduleResponse(s model.Schedule) ScheduleResponse {
	in := scheduling.InputFromSchedule(s)
	days := in.DaysOfWeek
	if days == nil {
		days = []int{}
	}
	return ScheduleResponse{
		ID:         s.ID,
		PlaylistID: s.PlaylistID,
		Name:       s.Name,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		DaysOfWeek: days,
		Priority:   s.Priority,
		IsActive:   s.IsActive,
		TimeRange:  scheduling.TimeRangeLabel(s),
		DateRange:  scheduling.DateRangeLabel(s),
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewScheduleResponses(list []model.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewScheduleResponse(s))
	}
	return out
}

type ConflictsResponse struct {
	HasConflicts bool                         `json:"has_conflicts"`
	Conflicts    []scheduling.ConflictSummary `json:"conflicts"`
}

type PreviewResponse struct {
	Days []scheduling.DayPreview `json:"days"`
}

type ActiveSchedulesResponse struct {
	At        string             `json:"at"`
	Schedules []ScheduleResponse `json:"schedules"`
}

type PlaylistResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewPlaylistResponse(p model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
