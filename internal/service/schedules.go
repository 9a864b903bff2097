package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/metrics"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

// Schedule write actions, also used as MQTT event actions.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionActivated   = "activated"
	ActionDeactivated = "deactivated"
	ActionDeleted     = "deleted"
)

const scheduleChangedEvent = "schedule_changed"

// ScheduleService runs the scheduling engine against a tenant's stored schedules. Every
// write goes through the validation pipeline inside the tenant's write lock.
type ScheduleService struct {
	store          db.Store
	pipeline       *scheduling.Pipeline
	resolver       *scheduling.Resolver
	cache          ResolutionCache
	notifier       Notifier
	metrics        Recorder
	clock          Clock
	maxPreviewDays int
	inflight       singleflight.Group
}

func NewScheduleService(store db.Store, opts ...Option) *ScheduleService {
	s := &ScheduleService{
		store:          store,
		pipeline:       scheduling.NewPipeline(store, store),
		resolver:       scheduling.NewResolver(store),
		metrics:        nopRecorder{},
		clock:          realClock{},
		maxPreviewDays: scheduling.MaxPreviewDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxPreviewDays < 1 || s.maxPreviewDays > scheduling.MaxPreviewDays {
		s.maxPreviewDays = scheduling.MaxPreviewDays
	}
	return s
}

func validationOutcome(err error) string {
	var (
		fve *scheduling.FieldValidationError
		brv *scheduling.BusinessRuleViolation
		sce *scheduling.ScheduleConflictError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &fve):
		return metrics.OutcomeField
	case errors.As(err, &brv):
		return metrics.OutcomeBusiness
	case errors.As(err, &sce):
		return metrics.OutcomeConflict
	}
	return metrics.OutcomeError
}

func notFound(err error, resource string, id int) error {
	if errors.Is(err, db.ErrNotFound) {
		return &scheduling.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

// ValidateAndPrepare runs the full pipeline without storing anything.
func (s *ScheduleService) ValidateAndPrepare(ctx context.Context, tenantID int, in scheduling.ScheduleInput, excludeID *int) (model.Schedule, error) {
	sc, err := s.pipeline.ValidateAndPrepare(ctx, tenantID, in, excludeID)
	s.metrics.ValidationOutcome(validationOutcome(err))
	return sc, err
}

// CheckConflicts lists the active schedules the candidate would overlap. Only field
// validation runs first; the other business rules are left to the write.
func (s *ScheduleService) CheckConflicts(ctx context.Context, tenantID int, in scheduling.ScheduleInput, excludeID *int) ([]model.Schedule, error) {
	candidate, err := s.pipeline.Prepare(tenantID, in, excludeID)
	if err != nil {
		return nil, err
	}
	// a disabled draft is checked as if it were going live
	candidate.IsActive = true
	return s.pipeline.Detector().CheckConflicts(ctx, candidate, excludeID)
}

func (s *ScheduleService) CanOverride(ctx context.Context, tenantID int, in scheduling.ScheduleInput, excludeID *int) (scheduling.OverrideAnalysis, error) {
	candidate, err := s.pipeline.Prepare(tenantID, in, excludeID)
	if err != nil {
		return scheduling.OverrideAnalysis{}, err
	}
	candidate.IsActive = true
	return s.pipeline.Detector().CanOverride(ctx, candidate, excludeID)
}

func (s *ScheduleService) List(ctx context.Context, tenantID int) ([]model.Schedule, error) {
	return s.store.ListSchedules(ctx, tenantID)
}

func (s *ScheduleService) Get(ctx context.Context, tenantID, id int) (*model.Schedule, error) {
	sc, err := s.store.GetSchedule(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "schedule", id)
	}
	return sc, nil
}

func (s *ScheduleService) Create(ctx context.Context, tenantID int, in scheduling.ScheduleInput) (*model.Schedule, error) {
	var saved model.Schedule
	err := s.store.WithTenantLock(ctx, tenantID, func(tx db.Store) error {
		sc, err := s.pipeline.With(tx, tx).ValidateAndPrepare(ctx, tenantID, in, nil)
		s.metrics.ValidationOutcome(validationOutcome(err))
		if err != nil {
			return err
		}
		if err := tx.SaveSchedule(ctx, &sc); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}
		saved = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, tenantID, saved.ID, ActionCreated)
	return &saved, nil
}

// Update merges u into the stored schedule and re-runs the whole pipeline on the result,
// ignoring the schedule's own stored row in the conflict check.
func (s *ScheduleService) Update(ctx context.Context, tenantID, id int, u scheduling.ScheduleUpdate) (*model.Schedule, error) {
	var saved model.Schedule
	err := s.store.WithTenantLock(ctx, tenantID, func(tx db.Store) error {
		existing, err := tx.GetSchedule(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "schedule", id)
		}
		sc, err := s.pipeline.With(tx, tx).ValidateAndPrepare(ctx, tenantID, scheduling.MergeInput(*existing, u), &id)
		s.metrics.ValidationOutcome(validationOutcome(err))
		if err != nil {
			return err
		}
		sc.CreatedAt = existing.CreatedAt
		if err := tx.SaveSchedule(ctx, &sc); err != nil {
			return notFound(err, "schedule", id)
		}
		saved = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, tenantID, id, ActionUpdated)
	return &saved, nil
}

// Toggle flips IsActive. Activation re-enters conflict checking, so it runs the pipeline;
// deactivation only removes the schedule from play and is stored directly.
func (s *ScheduleService) Toggle(ctx context.Context, tenantID, id int) (*model.Schedule, error) {
	var saved model.Schedule
	err := s.store.WithTenantLock(ctx, tenantID, func(tx db.Store) error {
		existing, err := tx.GetSchedule(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "schedule", id)
		}
		sc := *existing
		if !existing.IsActive {
			in := scheduling.InputFromSchedule(*existing)
			active := true
			in.IsActive = &active
			sc, err = s.pipeline.With(tx, tx).ValidateAndPrepare(ctx, tenantID, in, &id)
			s.metrics.ValidationOutcome(validationOutcome(err))
			if err != nil {
				return err
			}
			sc.CreatedAt = existing.CreatedAt
		} else {
			sc.IsActive = false
		}
		if err := tx.SaveSchedule(ctx, &sc); err != nil {
			return notFound(err, "schedule", id)
		}
		saved = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	action := ActionDeactivated
	if saved.IsActive {
		action = ActionActivated
	}
	s.afterWrite(ctx, tenantID, id, action)
	return &saved, nil
}

func (s *ScheduleService) Delete(ctx context.Context, tenantID, id int) error {
	err := s.store.WithTenantLock(ctx, tenantID, func(tx db.Store) error {
		return notFound(tx.DeleteSchedule(ctx, tenantID, id), "schedule", id)
	})
	if err != nil {
		return err
	}
	s.afterWrite(ctx, tenantID, id, ActionDeleted)
	return nil
}

// afterWrite runs once a write has committed. Failures here are logged and never undo
// or fail the write.
func (s *ScheduleService) afterWrite(ctx context.Context, tenantID, scheduleID int, action string) {
	s.metrics.ScheduleWrite(action)
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tenantID); err != nil {
			log.Warn().Err(err).Int("tenant_id", tenantID).Msg("failed to invalidate resolution cache")
		}
	}
	if s.notifier != nil {
		ev := model.ScheduleEvent{
			Type:       scheduleChangedEvent,
			TenantID:   tenantID,
			ScheduleID: scheduleID,
			Action:     action,
			Timestamp:  s.clock.Now().UTC(),
		}
		if err := s.notifier.PublishScheduleChange(ev); err != nil {
			log.Warn().Err(err).Int("tenant_id", tenantID).Int("schedule_id", scheduleID).Msg("failed to notify players")
		}
	}
	log.Info().Int("tenant_id", tenantID).Int("schedule_id", scheduleID).Str("action", action).Msg("schedule written")
}

func (s *ScheduleService) checkPreviewDays(days int) error {
	if days < 1 || days > s.maxPreviewDays {
		return &scheduling.FieldValidationError{Fields: map[string]string{
			"days": fmt.Sprintf("must be between 1 and %d", s.maxPreviewDays),
		}}
	}
	return nil
}

// Preview projects a draft over the next days calendar days starting today.
func (s *ScheduleService) Preview(tenantID int, in scheduling.ScheduleInput, days int) ([]scheduling.DayPreview, error) {
	if err := s.checkPreviewDays(days); err != nil {
		return nil, err
	}
	draft, err := s.pipeline.Prepare(tenantID, in, nil)
	if err != nil {
		return nil, err
	}
	return scheduling.Preview(draft, model.DateOf(s.clock.Now()), days)
}

func (s *ScheduleService) PreviewExisting(ctx context.Context, tenantID, id, days int) ([]scheduling.DayPreview, error) {
	if err := s.checkPreviewDays(days); err != nil {
		return nil, err
	}
	sc, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return scheduling.Preview(*sc, model.DateOf(s.clock.Now()), days)
}

func (s *ScheduleService) ActiveSchedulesAt(ctx context.Context, tenantID int, at time.Time) ([]model.Schedule, error) {
	return s.resolver.ActiveSchedulesAt(ctx, tenantID, at)
}
