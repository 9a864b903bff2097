// exposes a Store interface that is passed to the service and API layers
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ErrNotFound is returned when a row does not exist or belongs to another tenant.
var ErrNotFound = errors.New("not found")

type Store interface {
	// tenant functions
	CreateTenant(ctx context.Context, name string) (int, error)
	GetTenant(ctx context.Context, tenantID int) (*model.Tenant, error)
	SetFallbackPlaylist(ctx context.Context, tenantID int, playlistID *int) error

	// user functions
	CreateUser(ctx context.Context, tenantID int, email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)

	// playlist functions
	CreatePlaylist(ctx context.Context, tenantID int, name string, description *string) (model.Playlist, error)
	ListPlaylists(ctx context.Context, tenantID int) ([]model.Playlist, error)
	PlaylistBelongsToTenant(ctx context.Context, playlistID, tenantID int) (bool, error)

	// schedule functions
	ListSchedules(ctx context.Context, tenantID int) ([]model.Schedule, error)
	GetSchedule(ctx context.Context, tenantID, scheduleID int) (*model.Schedule, error)
	FindActiveSchedulesForTenant(ctx context.Context, tenantID int) ([]model.Schedule, error)
	SaveSchedule(ctx context.Context, s *model.Schedule) error
	DeleteSchedule(ctx context.Context, tenantID, scheduleID int) error

	// WithTenantLock runs fn inside a transaction that holds the tenant's schedule write
	// lock. The Store handed to fn is bound to that transaction.
	WithTenantLock(ctx context.Context, tenantID int, fn func(Store) error) error
}

type pgStore struct {
	db  *sqlx.DB // nil when bound to a transaction
	ext sqlx.ExtContext
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

// NewStore wraps conn, or the package level DB when conn is nil.
func NewStore(conn *sqlx.DB) Store {
	if conn == nil {
		conn = DB
	}
	return &pgStore{db: conn, ext: conn}
}
