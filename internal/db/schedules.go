package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const scheduleColumns = `
	id, tenant_id, playlist_id, name,
	start_date, end_date, start_time, end_time, days_of_week,
	priority, is_active, created_at, updated_at`

func (s *pgStore) ListSchedules(ctx context.Context, tenantID int) ([]model.Schedule, error) {
	out := []model.Schedule{}
	q := `SELECT` + scheduleColumns + `
	  FROM playlist_schedules
	 WHERE tenant_id = $1
	 ORDER BY priority DESC, id;`
	if err := sqlx.SelectContext(ctx, s.ext, &out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetSchedule(ctx context.Context, tenantID, scheduleID int) (*model.Schedule, error) {
	var sc model.Schedule
	q := `SELECT` + scheduleColumns + `
	  FROM playlist_schedules
	 WHERE tenant_id = $1 AND id = $2;`
	if err := sqlx.GetContext(ctx, s.ext, &sc, q, tenantID, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("GetSchedule failed")
		return nil, err
	}
	return &sc, nil
}

func (s *pgStore) FindActiveSchedulesForTenant(ctx context.Context, tenantID int) ([]model.Schedule, error) {
	var out []model.Schedule
	q := `SELECT` + scheduleColumns + `
	  FROM playlist_schedules
	 WHERE tenant_id = $1 AND is_active
	 ORDER BY id;`
	if err := sqlx.SelectContext(ctx, s.ext, &out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("FindActiveSchedulesForTenant failed")
		return nil, err
	}
	return out, nil
}

// SaveSchedule inserts a draft (ID 0) or updates the stored row, then refreshes sc with
// the generated id and timestamps.
func (s *pgStore) SaveSchedule(ctx context.Context, sc *model.Schedule) error {
	if sc.IsDraft() {
		q := `
		INSERT INTO playlist_schedules
			(tenant_id, playlist_id, name, start_date, end_date, start_time, end_time,
			 days_of_week, priority, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING` + scheduleColumns + `;`
		err := sqlx.GetContext(ctx, s.ext, sc, q,
			sc.TenantID, sc.PlaylistID, sc.Name, sc.StartDate, sc.EndDate, sc.StartTime, sc.EndTime,
			sc.DaysOfWeek, sc.Priority, sc.IsActive)
		if err != nil {
			log.Error().Err(err).Int("tenant_id", sc.TenantID).Msg("SaveSchedule insert failed")
		}
		return err
	}

	q := `
	UPDATE playlist_schedules
	   SET playlist_id = $3, name = $4, start_date = $5, end_date = $6,
	       start_time = $7, end_time = $8, days_of_week = $9, priority = $10,
	       is_active = $11, updated_at = now()
	 WHERE tenant_id = $1 AND id = $2
	RETURNING` + scheduleColumns + `;`
	err := sqlx.GetContext(ctx, s.ext, sc, q,
		sc.TenantID, sc.ID, sc.PlaylistID, sc.Name, sc.StartDate, sc.EndDate, sc.StartTime, sc.EndTime,
		sc.DaysOfWeek, sc.Priority, sc.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Int("schedule_id", sc.ID).Msg("SaveSchedule update failed")
	}
	return err
}

func (s *pgStore) DeleteSchedule(ctx context.Context, tenantID, scheduleID int) error {
	res, err := s.ext.ExecContext(ctx,
		`DELETE FROM playlist_schedules WHERE tenant_id = $1 AND id = $2;`, tenantID, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeleteSchedule failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
