package scheduling

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const (
	MinWindow = 5 * time.Minute
	MaxWindow = 24 * time.Hour
)

// span is a half-open range of minutes [from, to) inside a single day.
type span struct {
	from, to int
}

func (s span) contains(minute int) bool { return minute >= s.from && minute < s.to }

func (s span) overlaps(o span) bool { return s.from < o.to && o.from < s.to }

func (s span) minutes() int { return s.to - s.from }

// dailySpans returns the same-day ranges covered by the schedule's time fields.
// A window that crosses midnight is split into its evening and morning halves.
// With only one bound set, the open side runs to (or from) midnight.
func dailySpans(s model.Schedule) []span {
	switch {
	case s.StartTime == nil && s.EndTime == nil:
		return []span{{0, model.MinutesPerDay}}
	case s.EndTime == nil:
		return []span{{int(*s.StartTime), model.MinutesPerDay}}
	case s.StartTime == nil:
		if *s.EndTime == 0 {
			return nil
		}
		return []span{{0, int(*s.EndTime)}}
	}

	start, end := int(*s.StartTime), int(*s.EndTime)
	if end > start {
		return []span{{start, end}}
	}
	out := []span{{start, model.MinutesPerDay}}
	if end > 0 {
		out = append(out, span{0, end})
	}
	return out
}

// dailyMinutes is the number of minutes per eligible day the schedule is on air.
func dailyMinutes(s model.Schedule) int {
	total := 0
	for _, sp := range dailySpans(s) {
		total += sp.minutes()
	}
	return total
}

// WindowDuration is the length of the start..end window once an overnight wrap is
// normalized: an end at or before the start is read as the next day.
func WindowDuration(start, end model.Clock) time.Duration {
	e := int(end)
	if e <= int(start) {
		e += model.MinutesPerDay
	}
	return time.Duration(e-int(start)) * time.Minute
}

// CheckWindowDuration enforces the 5 minute to 24 hour bounds of a playback window.
func CheckWindowDuration(d time.Duration) error {
	if d < MinWindow {
		return &BusinessRuleViolation{
			Field:  "end_time",
			Reason: "window of " + formatDuration(d) + " is shorter than the 5 minute minimum",
		}
	}
	if d > MaxWindow {
		return &BusinessRuleViolation{
			Field:  "end_time",
			Reason: "window of " + formatDuration(d) + " is longer than the 24 hour maximum",
		}
	}
	return nil
}

// ActiveOnDate applies the date-range and day-of-week checks only.
func ActiveOnDate(s model.Schedule, d model.Date) bool {
	if s.StartDate != nil && d.Before(*s.StartDate) {
		return false
	}
	if s.EndDate != nil && d.After(*s.EndDate) {
		return false
	}
	return s.DaysOfWeek.Contains(d.Weekday())
}

// IsActiveAt reports whether the schedule governs playback at the given instant.
// Date, weekday and time of day are all read from the instant's own wall clock.
func IsActiveAt(s model.Schedule, at time.Time) bool {
	if !s.IsActive {
		return false
	}
	if !ActiveOnDate(s, model.DateOf(at)) {
		return false
	}
	minute := int(model.ClockOf(at))
	for _, sp := range dailySpans(s) {
		if sp.contains(minute) {
			return true
		}
	}
	return false
}
