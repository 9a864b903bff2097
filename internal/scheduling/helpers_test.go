package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const tenant = 7

func date(s string) *model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func clock(s string) *model.Clock {
	c, err := model.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return &c
}

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func always(id, priority int) model.Schedule {
	return model.Schedule{ID: id, TenantID: tenant, PlaylistID: 100 + id, Name: "always", Priority: priority, IsActive: true}
}

type fakeStore struct {
	schedules []model.Schedule
	playlists map[int]int // playlist id -> tenant id
	err       error
}

func (f *fakeStore) FindActiveSchedulesForTenant(_ context.Context, tenantID int) ([]model.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.TenantID == tenantID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) PlaylistBelongsToTenant(_ context.Context, playlistID, tenantID int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.playlists[playlistID]
	return ok && owner == tenantID, nil
}

var errStore = errors.New("store unavailable")
