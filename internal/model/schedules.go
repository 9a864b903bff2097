package model

import "time"

// Schedule is a recurring time-window rule that puts one playlist on a tenant's players.
// Nil optional fields mean "unbounded" (dates), "no bound on that side" (times) or
// "every day" (DaysOfWeek). A zero ID marks a draft that has not been persisted.
type Schedule struct {
	ID         int       `db:"id"           json:"id"`
	TenantID   int       `db:"tenant_id"    json:"tenant_id"`
	PlaylistID int       `db:"playlist_id"  json:"playlist_id"`
	Name       string    `db:"name"         json:"name"`
	StartDate  *Date     `db:"start_date"   json:"start_date"`
	EndDate    *Date     `db:"end_date"     json:"end_date"`
	StartTime  *Clock    `db:"start_time"   json:"start_time"`
	EndTime    *Clock    `db:"end_time"     json:"end_time"`
	DaysOfWeek Weekdays  `db:"days_of_week" json:"days_of_week"`
	Priority   int       `db:"priority"     json:"priority"`
	IsActive   bool      `db:"is_active"    json:"is_active"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"   json:"updated_at"`
}

// IsDraft reports whether the schedule has not been stored yet.
func (s Schedule) IsDraft() bool { return s.ID == 0 }

// Resolution is the outcome of deciding what a tenant's players should show at an instant.
type Resolution struct {
	PlaylistID *int      `json:"playlist_id"`
	ScheduleID *int      `json:"schedule_id"`
	Source     string    `json:"source"`
	ResolvedAt time.Time `json:"resolved_at"`
}

const (
	SourceSchedule = "schedule"
	SourceFallback = "fallback"
)

// MinuteKey names the wall-clock minute of t together with its UTC offset. Two instants
// share a key only when they are resolved against the same wall clock.
func MinuteKey(t time.Time) string { return t.Format("200601021504-0700") }

// ScheduleEvent is pushed to players when a tenant's schedules change.
type ScheduleEvent struct {
	Type       string    `json:"type"`
	TenantID   int       `json:"tenant_id"`
	ScheduleID int       `json:"schedule_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}
