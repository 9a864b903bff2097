package scheduling

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// PlaylistOwnership answers whether a playlist belongs to a tenant.
type PlaylistOwnership interface {
	PlaylistBelongsToTenant(ctx context.Context, playlistID, tenantID int) (bool, error)
}

// Pipeline validates candidate schedules in two phases: field checks, then business rules
// (window bounds, ownership, day/date consistency and conflicts). Nothing that fails here
// may reach storage.
type Pipeline struct {
	validate  *validator.Validate
	playlists PlaylistOwnership
	detector  *Detector
}

func NewPipeline(playlists PlaylistOwnership, schedules ScheduleFinder) *Pipeline {
	return &Pipeline{
		validate:  newValidator(),
		playlists: playlists,
		detector:  NewDetector(schedules),
	}
}

// With returns a pipeline sharing p's validator but reading from other collaborators,
// typically the transaction-scoped store of a locked write.
func (p *Pipeline) With(playlists PlaylistOwnership, schedules ScheduleFinder) *Pipeline {
	return &Pipeline{
		validate:  p.validate,
		playlists: playlists,
		detector:  NewDetector(schedules),
	}
}

// Detector exposes the conflict detector bound to the pipeline's schedule finder.
func (p *Pipeline) Detector() *Detector { return p.detector }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("civil_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := model.ParseDate(s)
		return err == nil
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := model.ParseClock(s)
		return err == nil
	})
	return v
}

// ValidateFields runs phase one only.
func (p *Pipeline) ValidateFields(in ScheduleInput) error {
	err := p.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate schedule: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = fieldMessage(name, fe)
	}
	return &FieldValidationError{Fields: fields}
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "civil_date":
		return "must be a date in YYYY-MM-DD format"
	case "hhmm":
		return "must be a time of day in HH:MM format"
	case "unique":
		return "must not repeat a day"
	}
	switch field {
	case "days_of_week":
		if fe.Tag() == "max" && fe.Kind() == reflect.Slice {
			return "must list at most 7 days"
		}
		return "days must be between 0 (Sunday) and 6 (Saturday)"
	case "name":
		return "must be at most " + fe.Param() + " characters"
	}
	return "must be at least " + fe.Param()
}

// Prepare validates fields and converts the input into a schedule value for tenantID.
// The result carries excludeID as its ID so updates keep their identity.
func (p *Pipeline) Prepare(tenantID int, in ScheduleInput, excludeID *int) (model.Schedule, error) {
	if err := p.ValidateFields(in); err != nil {
		return model.Schedule{}, err
	}

	s := model.Schedule{
		TenantID:   tenantID,
		PlaylistID: in.PlaylistID,
		Name:       strings.TrimSpace(in.Name),
		DaysOfWeek: model.Weekdays(in.DaysOfWeek).Sorted(),
		Priority:   DefaultPriority,
		IsActive:   true,
	}
	if excludeID != nil {
		s.ID = *excludeID
	}
	if in.Priority != nil {
		s.Priority = *in.Priority
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if len(s.DaysOfWeek) == 0 {
		s.DaysOfWeek = nil
	}
	// formats were checked above, parse errors cannot happen here
	if d := optional(in.StartDate); d != "" {
		v, _ := model.ParseDate(d)
		s.StartDate = &v
	}
	if d := optional(in.EndDate); d != "" {
		v, _ := model.ParseDate(d)
		s.EndDate = &v
	}
	if t := optional(in.StartTime); t != "" {
		v, _ := model.ParseClock(t)
		s.StartTime = &v
	}
	if t := optional(in.EndTime); t != "" {
		v, _ := model.ParseClock(t)
		s.EndTime = &v
	}
	return s, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// CheckRules runs the business rules that do not involve other schedules.
func (p *Pipeline) CheckRules(ctx context.Context, s model.Schedule) error {
	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return &BusinessRuleViolation{
			Field:  "end_date",
			Reason: fmt.Sprintf("end date %s is before start date %s", s.EndDate, s.StartDate),
		}
	}

	if s.StartTime != nil && s.EndTime != nil {
		if err := CheckWindowDuration(WindowDuration(*s.StartTime, *s.EndTime)); err != nil {
			return err
		}
	} else if s.StartTime == nil && s.EndTime != nil && *s.EndTime == 0 {
		return &BusinessRuleViolation{
			Field:  "end_time",
			Reason: "an end time of 00:00 without a start time leaves an empty window",
		}
	}

	owned, err := p.playlists.PlaylistBelongsToTenant(ctx, s.PlaylistID, s.TenantID)
	if err != nil {
		return fmt.Errorf("check playlist %d ownership: %w", s.PlaylistID, err)
	}
	if !owned {
		return &BusinessRuleViolation{
			Field:  "playlist_id",
			Reason: fmt.Sprintf("playlist %d does not belong to this tenant", s.PlaylistID),
		}
	}

	if !s.DaysOfWeek.IsEveryDay() && s.StartDate != nil && s.EndDate != nil &&
		!rangeHitsDays(s.StartDate, s.EndDate, maskOf(s.DaysOfWeek)) {
		return &BusinessRuleViolation{
			Field:  "days_of_week",
			Reason: fmt.Sprintf("no date between %s and %s falls on the selected days", s.StartDate, s.EndDate),
		}
	}
	return nil
}

// ValidateAndPrepare runs the full pipeline. Any overlap with an active schedule of the
// tenant is rejected with a ScheduleConflictError; the caller resolves it by changing
// priority or bounds and resubmitting.
func (p *Pipeline) ValidateAndPrepare(ctx context.Context, tenantID int, in ScheduleInput, excludeID *int) (model.Schedule, error) {
	s, err := p.Prepare(tenantID, in, excludeID)
	if err != nil {
		return model.Schedule{}, err
	}
	if err := p.CheckRules(ctx, s); err != nil {
		return model.Schedule{}, err
	}
	conflicts, err := p.detector.CheckConflicts(ctx, s, excludeID)
	if err != nil {
		return model.Schedule{}, err
	}
	if len(conflicts) > 0 {
		return model.Schedule{}, newConflictError(conflicts)
	}
	return s, nil
}
