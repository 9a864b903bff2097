package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

func TestResolveActivePlaylistPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	weekdays := f.input("Office hours", "09:00", "17:00")
	weekdays.DaysOfWeek = []int{1, 2, 3, 4, 5}
	weekdays.Priority = func() *int { p := 10; return &p }()
	a, err := f.svc.Create(ctx, f.tenant, weekdays)
	require.NoError(t, err)

	// the pipeline refuses B because it overlaps A, so store it directly
	b := model.Schedule{TenantID: f.tenant, PlaylistID: f.fallback, Name: "Always", Priority: 5, IsActive: true}
	require.NoError(t, f.store.SaveSchedule(ctx, &b))

	res, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceSchedule, res.Source)
	require.NotNil(t, res.ScheduleID)
	assert.Equal(t, a.ID, *res.ScheduleID)
	assert.Equal(t, f.playlist, *res.PlaylistID)

	active, err := f.svc.ActiveSchedulesAt(ctx, f.tenant, now)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[1].ID)
}

func TestResolveActivePlaylistFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
	assert.Nil(t, res.PlaylistID)
	assert.Nil(t, res.ScheduleID)

	require.NoError(t, f.svc.SetFallbackPlaylist(ctx, f.tenant, &f.fallback))
	res, err = f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
	require.NotNil(t, res.PlaylistID)
	assert.Equal(t, f.fallback, *res.PlaylistID)
}

func TestResolveActivePlaylistUnknownTenant(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ResolveActivePlaylist(context.Background(), 424242, now)
	var nf *scheduling.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "tenant", nf.Resource)
}

func TestResolveActivePlaylistCaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.tenant, f.input("Morning", "08:00", "12:00"))
	require.NoError(t, err)
	findsAfterCreate := f.store.findCalls

	first, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	second, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now.Add(30*time.Second))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, findsAfterCreate+1, f.store.findCalls)
	assert.Equal(t, 1, f.rec.resolutions["engine/schedule"])
	assert.Equal(t, 1, f.rec.resolutions["cache/schedule"])
}

func TestResolveActivePlaylistSeesWritesImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, err := f.svc.Create(ctx, f.tenant, f.input("Morning", "08:00", "12:00"))
	require.NoError(t, err)

	res, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceSchedule, res.Source)

	_, err = f.svc.Toggle(ctx, f.tenant, s.ID)
	require.NoError(t, err)

	res, err = f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
}

func TestResolveActivePlaylistWithoutCache(t *testing.T) {
	store := newMockStore()
	ctx := context.Background()
	tenant, _ := store.CreateTenant(ctx, "Solo")
	svc := NewScheduleService(store)

	res, err := svc.ResolveActivePlaylist(ctx, tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
	assert.Equal(t, now, res.ResolvedAt)
}

func TestResolveActivePlaylistCacheDown(t *testing.T) {
	f := newFixture(t)
	f.cache.failGen = errBoom

	res, err := f.svc.ResolveActivePlaylist(context.Background(), f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, res.Source)
	assert.Zero(t, f.cache.gets)
}

func TestResolveActivePlaylistStoreError(t *testing.T) {
	f := newFixture(t)
	f.store.failFind = errBoom

	_, err := f.svc.ResolveActivePlaylist(context.Background(), f.tenant, now)
	assert.ErrorIs(t, err, errBoom)
}

func TestResolveActivePlaylistConcurrentCallers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.tenant, f.input("Morning", "08:00", "12:00"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]model.Resolution, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, results[0], res)
	}
}

func TestResolveActivePlaylistKeepsWallClocksApart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.tenant, f.input("Morning", "08:00", "12:00"))
	require.NoError(t, err)

	utc, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, now)
	require.NoError(t, err)
	assert.Equal(t, model.SourceSchedule, utc.Source)

	// the same instant read at 07:00 local time falls before the window
	brt := now.In(time.FixedZone("BRT", -3*3600))
	local, err := f.svc.ResolveActivePlaylist(ctx, f.tenant, brt)
	require.NoError(t, err)
	assert.Equal(t, model.SourceFallback, local.Source)
	assert.Equal(t, "2025-03-05T07:00:00-03:00", local.ResolvedAt.Format(time.RFC3339))
	assert.Zero(t, f.rec.resolutions["cache/schedule"])
	assert.Equal(t, 1, f.rec.resolutions["engine/fallback"])
}
