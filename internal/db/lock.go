package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// scheduleLockNamespace is the first key of the two-key advisory lock; the tenant id is the second.
const scheduleLockNamespace = 0x5c4ed

func (s *pgStore) WithTenantLock(ctx context.Context, tenantID int, fn func(Store) error) error {
	if s.db == nil {
		// already inside a locked transaction
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int);`, scheduleLockNamespace, tenantID); err != nil {
		_ = tx.Rollback()
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to take schedule lock")
		return fmt.Errorf("lock schedules of tenant %d: %w", tenantID, err)
	}

	if err := fn(&pgStore{ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Int("tenant_id", tenantID).Msg("rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule transaction: %w", err)
	}
	return nil
}
