package scheduling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// FieldValidationError reports malformed or missing input, one message per field.
type FieldValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *FieldValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid schedule fields: " + strings.Join(parts, "; ")
}

// BusinessRuleViolation reports well-formed input that breaks a schedule invariant.
type BusinessRuleViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *BusinessRuleViolation) Error() string {
	return fmt.Sprintf("schedule rule violated (%s): %s", e.Field, e.Reason)
}

// ConflictSummary describes an existing schedule that overlaps a candidate.
type ConflictSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PlaylistID int    `json:"playlist_id"`
	TimeRange  string `json:"time_range"`
	DateRange  string `json:"date_range"`
	Priority   int    `json:"priority"`
}

// Summarize renders a schedule the way conflict reports show it.
func Summarize(s model.Schedule) ConflictSummary {
	return ConflictSummary{
		ID:         s.ID,
		Name:       s.Name,
		PlaylistID: s.PlaylistID,
		TimeRange:  TimeRangeLabel(s),
		DateRange:  DateRangeLabel(s),
		Priority:   s.Priority,
	}
}

// ScheduleConflictError is returned when a candidate overlaps active schedules of its tenant.
type ScheduleConflictError struct {
	Conflicts []ConflictSummary `json:"conflicts"`
}

func newConflictError(conflicts []model.Schedule) *ScheduleConflictError {
	out := make([]ConflictSummary, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, Summarize(c))
	}
	return &ScheduleConflictError{Conflicts: out}
}

func (e *ScheduleConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, fmt.Sprintf("%q (#%d, priority %d)", c.Name, c.ID, c.Priority))
	}
	return "schedule conflicts with " + strings.Join(names, ", ")
}

// NotFoundError reports a referenced record that does not exist for the tenant.
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       int    `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
