package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func TestIsActiveAt(t *testing.T) {
	overnight := always(1, 1)
	overnight.StartTime = clock("22:00")
	overnight.EndTime = clock("02:00")

	weekdays := always(2, 10)
	weekdays.DaysOfWeek = model.Weekdays{1, 2, 3, 4, 5}
	weekdays.StartTime = clock("09:00")
	weekdays.EndTime = clock("17:00")

	weekend := always(3, 1)
	weekend.DaysOfWeek = model.Weekdays{0, 6}

	bounded := always(4, 1)
	bounded.StartDate = date("2025-03-01")
	bounded.EndDate = date("2025-03-31")

	startOnly := always(5, 1)
	startOnly.StartTime = clock("18:00")

	endOnly := always(6, 1)
	endOnly.EndTime = clock("08:00")

	disabled := always(7, 1)
	disabled.IsActive = false

	// 2025-03-05 is a Wednesday
	tests := []struct {
		name     string
		schedule model.Schedule
		at       string
		want     bool
	}{
		{"overnight before midnight", overnight, "2025-03-05 23:30", true},
		{"overnight after midnight", overnight, "2025-03-05 01:00", true},
		{"overnight daytime", overnight, "2025-03-05 10:00", false},
		{"overnight end is exclusive", overnight, "2025-03-05 02:00", false},
		{"overnight start is inclusive", overnight, "2025-03-05 22:00", true},
		{"weekday inside hours", weekdays, "2025-03-05 10:00", true},
		{"weekday end is exclusive", weekdays, "2025-03-05 17:00", false},
		{"weekday on saturday", weekdays, "2025-03-08 10:00", false},
		{"weekend only on wednesday", weekend, "2025-03-05 12:00", false},
		{"weekend only on sunday", weekend, "2025-03-09 12:00", true},
		{"date range first day", bounded, "2025-03-01 00:00", true},
		{"date range last day", bounded, "2025-03-31 23:59", true},
		{"date range day before", bounded, "2025-02-28 23:59", false},
		{"date range day after", bounded, "2025-04-01 00:00", false},
		{"start only before", startOnly, "2025-03-05 17:59", false},
		{"start only until midnight", startOnly, "2025-03-05 23:59", true},
		{"end only from midnight", endOnly, "2025-03-05 00:00", true},
		{"end only after", endOnly, "2025-03-05 08:00", false},
		{"inactive never matches", disabled, "2025-03-05 12:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActiveAt(tt.schedule, at(tt.at)))
		})
	}
}

func TestIsActiveAtWeekendOnlyNeverOnWednesday(t *testing.T) {
	s := always(1, 1)
	s.DaysOfWeek = model.Weekdays{0, 6}
	variants := []struct{ start, end *model.Clock }{
		{nil, nil},
		{clock("00:00"), clock("23:59")},
		{clock("22:00"), clock("02:00")},
		{clock("06:00"), nil},
		{nil, clock("12:00")},
	}
	wednesday := at("2025-03-05 00:00")
	for _, v := range variants {
		s.StartTime, s.EndTime = v.start, v.end
		for m := 0; m < model.MinutesPerDay; m += 7 {
			assert.False(t, IsActiveAt(s, wednesday.Add(time.Duration(m)*time.Minute)))
		}
	}
}

func TestIsActiveAtSameStartAndEndCoversWholeDay(t *testing.T) {
	s := always(1, 1)
	s.StartTime = clock("06:00")
	s.EndTime = clock("06:00")

	assert.True(t, IsActiveAt(s, at("2025-03-05 05:59")))
	assert.True(t, IsActiveAt(s, at("2025-03-05 06:00")))
	assert.True(t, IsActiveAt(s, at("2025-03-05 18:00")))
}

func TestIsActiveAtUsesInstantWallClock(t *testing.T) {
	s := always(1, 1)
	s.StartTime = clock("09:00")
	s.EndTime = clock("10:00")

	loc := time.FixedZone("BRT", -3*60*60)
	local := time.Date(2025, 3, 5, 9, 30, 0, 0, loc)
	assert.True(t, IsActiveAt(s, local))
	assert.False(t, IsActiveAt(s, local.UTC()))
}

func TestWindowDuration(t *testing.T) {
	assert.Equal(t, 8*time.Hour, WindowDuration(*clock("09:00"), *clock("17:00")))
	assert.Equal(t, 4*time.Hour, WindowDuration(*clock("22:00"), *clock("02:00")))
	assert.Equal(t, 24*time.Hour, WindowDuration(*clock("06:00"), *clock("06:00")))
	assert.Equal(t, 3*time.Minute, WindowDuration(*clock("09:00"), *clock("09:03")))
}

func TestCheckWindowDuration(t *testing.T) {
	assert.NoError(t, CheckWindowDuration(5*time.Minute))
	assert.NoError(t, CheckWindowDuration(24*time.Hour))

	var brv *BusinessRuleViolation
	assert.ErrorAs(t, CheckWindowDuration(3*time.Minute), &brv)
	assert.Contains(t, brv.Reason, "5 minute minimum")
	assert.ErrorAs(t, CheckWindowDuration(25*time.Hour), &brv)
	assert.Contains(t, brv.Reason, "24 hour maximum")
}
