package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// weeklyCoverage is the number of minutes per week a schedule can be on air.
// Narrower schedules are more specific and win ties on priority.
func weeklyCoverage(s model.Schedule) int {
	days := 7
	if !s.DaysOfWeek.IsEveryDay() {
		days = len(s.DaysOfWeek.Sorted())
	}
	return days * dailyMinutes(s)
}

// precedes orders schedules by priority (highest first), then by narrower weekly
// coverage, then by lower id so equal candidates always resolve the same way.
func precedes(a, b model.Schedule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if ca, cb := weeklyCoverage(a), weeklyCoverage(b); ca != cb {
		return ca < cb
	}
	return a.ID < b.ID
}

// ActiveAt filters schedules of tenantID that are active at the instant, in precedence order.
func ActiveAt(schedules []model.Schedule, tenantID int, at time.Time) []model.Schedule {
	out := make([]model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.TenantID == tenantID && IsActiveAt(s, at) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return precedes(out[i], out[j]) })
	return out
}

// Resolver picks the schedule that governs a tenant's playback at an instant.
type Resolver struct {
	schedules ScheduleFinder
}

func NewResolver(schedules ScheduleFinder) *Resolver {
	return &Resolver{schedules: schedules}
}

func (r *Resolver) ActiveSchedulesAt(ctx context.Context, tenantID int, at time.Time) ([]model.Schedule, error) {
	all, err := r.schedules.FindActiveSchedulesForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load active schedules for tenant %d: %w", tenantID, err)
	}
	return ActiveAt(all, tenantID, at), nil
}

// Resolve returns the winning schedule, or nil when nothing is scheduled and the caller
// should fall back to the tenant's default playlist.
func (r *Resolver) Resolve(ctx context.Context, tenantID int, at time.Time) (*model.Schedule, error) {
	active, err := r.ActiveSchedulesAt(ctx, tenantID, at)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	winner := active[0]
	return &winner, nil
}
