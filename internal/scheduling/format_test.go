package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func TestTimeRangeLabel(t *testing.T) {
	assert.Equal(t, AllDayLabel, TimeRangeLabel(sched(1)))
	assert.Equal(t, "22:00–02:00", TimeRangeLabel(sched(1, between("22:00", "02:00"))))
	assert.Equal(t, "A partir de 18:00", TimeRangeLabel(sched(1, func(s *model.Schedule) { s.StartTime = clock("18:00") })))
	assert.Equal(t, "Até 08:30", TimeRangeLabel(sched(1, func(s *model.Schedule) { s.EndTime = clock("08:30") })))
}

func TestDateRangeLabel(t *testing.T) {
	assert.Equal(t, AnyDateLabel, DateRangeLabel(sched(1)))
	assert.Equal(t, "01/03/2025 a 31/03/2025", DateRangeLabel(sched(1, dates("2025-03-01", "2025-03-31"))))
	assert.Equal(t, "A partir de 01/03/2025", DateRangeLabel(sched(1, dates("2025-03-01", ""))))
	assert.Equal(t, "Até 31/12/2025", DateRangeLabel(sched(1, dates("", "2025-12-31"))))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "3 min", formatDuration(3*time.Minute))
	assert.Equal(t, "2h", formatDuration(2*time.Hour))
	assert.Equal(t, "25h", formatDuration(25*time.Hour))
	assert.Equal(t, "1h30", formatDuration(90*time.Minute))
}
