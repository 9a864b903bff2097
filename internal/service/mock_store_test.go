package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/db/dbtest"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// mockStore wraps the in-memory store with call counters and an injectable read failure.
type mockStore struct {
	*dbtest.MemStore
	mu        sync.Mutex
	saves     int
	findCalls int
	failFind  error
}

var _ db.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	mem := dbtest.NewMemStore()
	mem.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return &mockStore{MemStore: mem}
}

func (m *mockStore) FindActiveSchedulesForTenant(ctx context.Context, tenantID int) ([]model.Schedule, error) {
	m.mu.Lock()
	m.findCalls++
	fail := m.failFind
	m.mu.Unlock()
	if fail != nil {
		return nil, fail
	}
	return m.MemStore.FindActiveSchedulesForTenant(ctx, tenantID)
}

func (m *mockStore) SaveSchedule(ctx context.Context, s *model.Schedule) error {
	if err := m.MemStore.SaveSchedule(ctx, s); err != nil {
		return err
	}
	m.mu.Lock()
	m.saves++
	m.mu.Unlock()
	return nil
}

// WithTenantLock hands fn the wrapper so calls made under the lock are counted too.
func (m *mockStore) WithTenantLock(ctx context.Context, tenantID int, fn func(db.Store) error) error {
	return m.MemStore.WithTenantLock(ctx, tenantID, func(db.Store) error { return fn(m) })
}

type fakeCache struct {
	mu          sync.Mutex
	generations map[int]int64
	entries     map[string]model.Resolution
	gets        int
	failGen     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{generations: map[int]int64{}, entries: map[string]model.Resolution{}}
}

func cacheKey(tenantID int, gen int64, at time.Time) string {
	return fmt.Sprintf("%d/%d/%s", tenantID, gen, model.MinuteKey(at))
}

func (c *fakeCache) Generation(_ context.Context, tenantID int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGen != nil {
		return 0, c.failGen
	}
	return c.generations[tenantID], nil
}

func (c *fakeCache) Get(_ context.Context, tenantID int, gen int64, at time.Time) (*model.Resolution, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	res, ok := c.entries[cacheKey(tenantID, gen, at)]
	if !ok {
		return nil, false, nil
	}
	return &res, true, nil
}

func (c *fakeCache) Set(_ context.Context, tenantID int, gen int64, at time.Time, res model.Resolution) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(tenantID, gen, at)] = res
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, tenantID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[tenantID]++
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []model.ScheduleEvent
	err    error
}

func (n *fakeNotifier) PublishScheduleChange(ev model.ScheduleEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

type countingRecorder struct {
	mu          sync.Mutex
	validations map[string]int
	resolutions map[string]int
	writes      map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{validations: map[string]int{}, resolutions: map[string]int{}, writes: map[string]int{}}
}

func (r *countingRecorder) ValidationOutcome(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validations[outcome]++
}

func (r *countingRecorder) Resolution(source, result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolutions[source+"/"+result]++
}

func (r *countingRecorder) ScheduleWrite(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes[action]++
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var errBoom = errors.New("boom")
