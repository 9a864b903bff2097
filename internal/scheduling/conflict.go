package scheduling

import (
	"context"
	"fmt"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ScheduleFinder loads the active schedules of a tenant.
type ScheduleFinder interface {
	FindActiveSchedulesForTenant(ctx context.Context, tenantID int) ([]model.Schedule, error)
}

// dayMask holds one bit per weekday, bit 0 = Sunday.
type dayMask uint8

const everyDay dayMask = 1<<7 - 1

func maskOf(w model.Weekdays) dayMask {
	if w.IsEveryDay() {
		return everyDay
	}
	var m dayMask
	for _, d := range w {
		if d >= 0 && d <= 6 {
			m |= 1 << d
		}
	}
	return m
}

func (m dayMask) has(day int) bool { return m&(1<<day) != 0 }

// intersectDates returns the overlap of both schedules' date ranges. A nil bound is open.
func intersectDates(a, b model.Schedule) (from, to *model.Date, ok bool) {
	from = later(a.StartDate, b.StartDate)
	to = earlier(a.EndDate, b.EndDate)
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, false
	}
	return from, to, true
}

func later(x, y *model.Date) *model.Date {
	switch {
	case x == nil:
		return y
	case y == nil:
		return x
	case y.After(*x):
		return y
	}
	return x
}

func earlier(x, y *model.Date) *model.Date {
	switch {
	case x == nil:
		return y
	case y == nil:
		return x
	case y.Before(*x):
		return y
	}
	return x
}

// rangeHitsDays reports whether some date in [from, to] falls on a day in mask.
// Open or week-long ranges contain every weekday.
func rangeHitsDays(from, to *model.Date, mask dayMask) bool {
	if mask == 0 {
		return false
	}
	if from == nil || to == nil {
		return true
	}
	n := from.DaysUntil(*to)
	if n >= 6 {
		return true
	}
	for i := 0; i <= n; i++ {
		if mask.has(int(from.AddDays(i).Weekday())) {
			return true
		}
	}
	return false
}

func spansOverlap(a, b []span) bool {
	for _, x := range a {
		for _, y := range b {
			if x.overlaps(y) {
				return true
			}
		}
	}
	return false
}

// HasConflictWith reports whether two schedules of the same tenant would ever be active
// at the same instant. Inactive schedules never conflict. The check intersects the date
// range, day set and daily time spans instead of enumerating instants.
func HasConflictWith(a, b model.Schedule) bool {
	if a.TenantID != b.TenantID || !a.IsActive || !b.IsActive {
		return false
	}
	from, to, ok := intersectDates(a, b)
	if !ok {
		return false
	}
	if !rangeHitsDays(from, to, maskOf(a.DaysOfWeek)&maskOf(b.DaysOfWeek)) {
		return false
	}
	return spansOverlap(dailySpans(a), dailySpans(b))
}

// Detector runs HasConflictWith against the stored schedules of a tenant.
type Detector struct {
	schedules ScheduleFinder
}

func NewDetector(schedules ScheduleFinder) *Detector {
	return &Detector{schedules: schedules}
}

// CheckConflicts returns the tenant's active schedules that overlap candidate.
// excludeID skips the candidate's own stored row on update.
func (d *Detector) CheckConflicts(ctx context.Context, candidate model.Schedule, excludeID *int) ([]model.Schedule, error) {
	existing, err := d.schedules.FindActiveSchedulesForTenant(ctx, candidate.TenantID)
	if err != nil {
		return nil, fmt.Errorf("load active schedules for tenant %d: %w", candidate.TenantID, err)
	}

	var out []model.Schedule
	for _, other := range existing {
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		if HasConflictWith(candidate, other) {
			out = append(out, other)
		}
	}
	return out, nil
}

// OverrideAnalysis splits a candidate's conflicts into the ones it would outrank and the
// ones that would still outrank or tie with it.
type OverrideAnalysis struct {
	Overridable []ConflictSummary `json:"overridable"`
	Blocking    []ConflictSummary `json:"blocking"`
}

// CanOverride is advisory: it never relaxes the pipeline, it only tells the administrator
// which conflicts a priority change would settle.
func (d *Detector) CanOverride(ctx context.Context, candidate model.Schedule, excludeID *int) (OverrideAnalysis, error) {
	conflicts, err := d.CheckConflicts(ctx, candidate, excludeID)
	if err != nil {
		return OverrideAnalysis{}, err
	}
	analysis := OverrideAnalysis{
		Overridable: []ConflictSummary{},
		Blocking:    []ConflictSummary{},
	}
	for _, c := range conflicts {
		if candidate.Priority > c.Priority {
			analysis.Overridable = append(analysis.Overridable, Summarize(c))
		} else {
			analysis.Blocking = append(analysis.Blocking, Summarize(c))
		}
	}
	return analysis, nil
}
