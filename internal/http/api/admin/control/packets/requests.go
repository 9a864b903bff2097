package packets

import "github.com/Nixie-Tech-LLC/marquee/internal/scheduling"

// body for creating a schedule, and for the conflict, override and preview checks.
// Field rules are enforced by the scheduling pipeline so every offending field is reported at once.
type ScheduleRequest struct {
	Name       string  `json:"name"`
	PlaylistID int     `json:"playlist_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DaysOfWeek []int   `json:"days_of_week"`
	Priority   *int    `json:"priority"`
	IsActive   *bool   `json:"is_active"`
	// ExcludeID names the stored schedule being edited; only read by the advisory checks.
	ExcludeID *int `json:"exclude_id"`
}

func (r ScheduleRequest) ToInput() scheduling.ScheduleInput {
	return scheduling.ScheduleInput{
		Name:       r.Name,
		PlaylistID: r.PlaylistID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
	}
}

// body for PUT /schedules/:id; absent fields keep their stored value
type UpdateScheduleRequest struct {
	Name       *string `json:"name"`
	PlaylistID *int    `json:"playlist_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DaysOfWeek *[]int  `json:"days_of_week"`
	Priority   *int    `json:"priority"`
	IsActive   *bool   `json:"is_active"`
}

func (r UpdateScheduleRequest) ToUpdate() scheduling.ScheduleUpdate {
	return scheduling.ScheduleUpdate(r)
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// null clears the fallback playlist
type FallbackPlaylistRequest struct {
	PlaylistID *int `json:"playlist_id"`
}
