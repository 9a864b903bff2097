package scheduling

import "github.com/Nixie-Tech-LLC/marquee/internal/model"

// DefaultPriority is used when a submission leaves the priority out.
const DefaultPriority = 1

// ScheduleInput is schedule data as submitted by an administrator, before any parsing.
// Empty strings and nil pointers both mean the field is absent.
type ScheduleInput struct {
	Name       string  `json:"name"         validate:"required,notblank,max=255"`
	PlaylistID int     `json:"playlist_id"  validate:"required,min=1"`
	StartDate  *string `json:"start_date"   validate:"omitempty,civil_date"`
	EndDate    *string `json:"end_date"     validate:"omitempty,civil_date"`
	StartTime  *string `json:"start_time"   validate:"omitempty,hhmm"`
	EndTime    *string `json:"end_time"     validate:"omitempty,hhmm"`
	DaysOfWeek []int   `json:"days_of_week" validate:"omitempty,max=7,unique,dive,min=0,max=6"`
	Priority   *int    `json:"priority"     validate:"omitempty,min=1"`
	IsActive   *bool   `json:"is_active"`
}

// ScheduleUpdate carries a partial change. Nil keeps the stored value; an empty string
// clears a date or time bound and an empty DaysOfWeek slice clears the day set.
type ScheduleUpdate struct {
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

// InputFromSchedule renders a stored schedule back into submission form.
func InputFromSchedule(s model.Schedule) ScheduleInput {
	priority := s.Priority
	active := s.IsActive
	in := ScheduleInput{
		Name:       s.Name,
		PlaylistID: s.PlaylistID,
		Priority:   &priority,
		IsActive:   &active,
	}
	if s.StartDate != nil {
		in.StartDate = ptr(s.StartDate.String())
	}
	if s.EndDate != nil {
		in.EndDate = ptr(s.EndDate.String())
	}
	if s.StartTime != nil {
		in.StartTime = ptr(s.StartTime.String())
	}
	if s.EndTime != nil {
		in.EndTime = ptr(s.EndTime.String())
	}
	if len(s.DaysOfWeek) > 0 {
		in.DaysOfWeek = append([]int(nil), s.DaysOfWeek...)
	}
	return in
}

// MergeInput overlays an update onto the stored schedule so the full pipeline can run
// against the result.
func MergeInput(existing model.Schedule, u ScheduleUpdate) ScheduleInput {
	in := InputFromSchedule(existing)
	if u.Name != nil {
		in.Name = *u.Name
	}
	if u.PlaylistID != nil {
		in.PlaylistID = *u.PlaylistID
	}
	if u.StartDate != nil {
		in.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		in.EndDate = u.EndDate
	}
	if u.StartTime != nil {
		in.StartTime = u.StartTime
	}
	if u.EndTime != nil {
		in.EndTime = u.EndTime
	}
	if u.DaysOfWeek != nil {
		in.DaysOfWeek = *u.DaysOfWeek
	}
	if u.Priority != nil {
		in.Priority = u.Priority
	}
	if u.IsActive != nil {
		in.IsActive = u.IsActive
	}
	return in
}

func ptr[T any](v T) *T { return &v }
