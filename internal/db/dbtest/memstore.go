// Package dbtest provides an in-memory db.Store for handler and command tests.
package dbtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// MemStore keeps everything in maps. WithTenantLock serializes all writers on one mutex.
type MemStore struct {
	mu        sync.Mutex
	lock      sync.Mutex
	tenants   map[int]*model.Tenant
	playlists map[int]model.Playlist
	schedules map[int]model.Schedule
	users     map[int]model.User
	nextID    int
	// Now stamps created_at/updated_at.
	Now func() time.Time
}

var _ db.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		tenants:   map[int]*model.Tenant{},
		playlists: map[int]model.Playlist{},
		schedules: map[int]model.Schedule{},
		users:     map[int]model.User{},
		Now:       time.Now,
	}
}

func (m *MemStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *MemStore) CreateTenant(_ context.Context, name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	now := m.Now()
	m.tenants[id] = &model.Tenant{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (m *MemStore) GetTenant(_ context.Context, tenantID int) (*model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[tenantID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemStore) SetFallbackPlaylist(_ context.Context, tenantID int, playlistID *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[tenantID]
	if !ok {
		return db.ErrNotFound
	}
	if playlistID != nil {
		p, ok := m.playlists[*playlistID]
		if !ok || p.TenantID != tenantID {
			return db.ErrNotFound
		}
	}
	t.FallbackPlaylistID = playlistID
	return nil
}

func (m *MemStore) CreateUser(_ context.Context, tenantID int, email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	now := m.Now()
	m.users[id] = model.User{
		ID: id, TenantID: tenantID, Email: email, HashedPassword: hashedPassword, Name: name,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *MemStore) GetUserByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}

func (m *MemStore) CreatePlaylist(_ context.Context, tenantID int, name string, description *string) (model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	p := model.Playlist{ID: m.id(), TenantID: tenantID, Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	m.playlists[p.ID] = p
	return p, nil
}

func (m *MemStore) ListPlaylists(_ context.Context, tenantID int) ([]model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Playlist{}
	for _, p := range m.playlists {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) PlaylistBelongsToTenant(_ context.Context, playlistID, tenantID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[playlistID]
	return ok && p.TenantID == tenantID, nil
}

func (m *MemStore) ListSchedules(_ context.Context, tenantID int) ([]model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter(func(s model.Schedule) bool { return s.TenantID == tenantID }), nil
}

func (m *MemStore) GetSchedule(_ context.Context, tenantID, scheduleID int) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[scheduleID]
	if !ok || s.TenantID != tenantID {
		return nil, db.ErrNotFound
	}
	return &s, nil
}

func (m *MemStore) FindActiveSchedulesForTenant(_ context.Context, tenantID int) ([]model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter(func(s model.Schedule) bool { return s.TenantID == tenantID && s.IsActive }), nil
}

func (m *MemStore) filter(keep func(model.Schedule) bool) []model.Schedule {
	out := []model.Schedule{}
	for _, s := range m.schedules {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemStore) SaveSchedule(_ context.Context, s *model.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	if s.IsDraft() {
		s.ID = m.id()
		s.CreatedAt = now
	} else if stored, ok := m.schedules[s.ID]; !ok || stored.TenantID != s.TenantID {
		return db.ErrNotFound
	}
	s.UpdatedAt = now
	m.schedules[s.ID] = *s
	return nil
}

func (m *MemStore) DeleteSchedule(_ context.Context, tenantID, scheduleID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[scheduleID]
	if !ok || s.TenantID != tenantID {
		return db.ErrNotFound
	}
	delete(m.schedules, scheduleID)
	return nil
}

func (m *MemStore) WithTenantLock(_ context.Context, _ int, fn func(db.Store) error) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return fn(m)
}
