package scheduling

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// Labels shown to administrators in conflict reports and previews.
const (
	AllDayLabel     = "Todo o dia"
	AnyDateLabel    = "Sempre"
	displayDateForm = "02/01/2006"
)

// TimeRangeLabel renders the daily window, e.g. "22:00–02:00" or "Todo o dia".
func TimeRangeLabel(s model.Schedule) string {
	switch {
	case s.StartTime == nil && s.EndTime == nil:
		return AllDayLabel
	case s.EndTime == nil:
		return "A partir de " + s.StartTime.String()
	case s.StartTime == nil:
		return "Até " + s.EndTime.String()
	}
	return s.StartTime.String() + "–" + s.EndTime.String()
}

// DateRangeLabel renders the inclusive date range, e.g. "01/03/2025 a 31/03/2025".
func DateRangeLabel(s model.Schedule) string {
	switch {
	case s.StartDate == nil && s.EndDate == nil:
		return AnyDateLabel
	case s.EndDate == nil:
		return "A partir de " + displayDate(*s.StartDate)
	case s.StartDate == nil:
		return "Até " + displayDate(*s.EndDate)
	}
	return displayDate(*s.StartDate) + " a " + displayDate(*s.EndDate)
}

func displayDate(d model.Date) string { return d.Time().Format(displayDateForm) }

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}
