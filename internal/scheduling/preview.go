package scheduling

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// MaxPreviewDays caps how far ahead a preview may project.
const MaxPreviewDays = 366

// DayPreview tells whether a schedule would run on one calendar day and at what hours.
type DayPreview struct {
	Date      model.Date `json:"date"`
	Weekday   int        `json:"weekday"`
	Active    bool       `json:"active"`
	TimeRange string     `json:"time_range"`
}

// Preview projects a schedule over days calendar days starting at from. Only the date
// range and day set decide whether a day is active; the time fields are summarized.
// The schedule may be a draft, and its IsActive flag is not consulted.
func Preview(s model.Schedule, from model.Date, days int) ([]DayPreview, error) {
	if days < 1 || days > MaxPreviewDays {
		return nil, &FieldValidationError{Fields: map[string]string{
			"days": fmt.Sprintf("must be between 1 and %d", MaxPreviewDays),
		}}
	}

	label := TimeRangeLabel(s)
	out := make([]DayPreview, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		active := ActiveOnDate(s, d)
		p := DayPreview{
			Date:    d,
			Weekday: int(d.Weekday()),
			Active:  active,
		}
		if active {
			p.TimeRange = label
		}
		out = append(out, p)
	}
	return out, nil
}
