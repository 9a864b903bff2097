package service

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ResolutionCache keeps resolved playlists between requests. Entries are scoped by a
// per-tenant generation so one Invalidate call retires all of them.
type ResolutionCache interface {
	Generation(ctx context.Context, tenantID int) (int64, error)
	Get(ctx context.Context, tenantID int, generation int64, at time.Time) (*model.Resolution, bool, error)
	Set(ctx context.Context, tenantID int, generation int64, at time.Time, res model.Resolution) error
	Invalidate(ctx context.Context, tenantID int) error
}

// Notifier pushes schedule changes to players.
type Notifier interface {
	PublishScheduleChange(ev model.ScheduleEvent) error
}

// Recorder receives engine metrics.
type Recorder interface {
	ValidationOutcome(outcome string)
	Resolution(source, result string, took time.Duration)
	ScheduleWrite(action string)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type nopRecorder struct{}

func (nopRecorder) ValidationOutcome(string)                 {}
func (nopRecorder) Resolution(string, string, time.Duration) {}
func (nopRecorder) ScheduleWrite(string)                     {}

type Option func(*ScheduleService)

func WithCache(c ResolutionCache) Option { return func(s *ScheduleService) { s.cache = c } }

func WithNotifier(n Notifier) Option { return func(s *ScheduleService) { s.notifier = n } }

func WithMetrics(r Recorder) Option {
	return func(s *ScheduleService) {
		if r != nil {
			s.metrics = r
		}
	}
}

func WithClock(c Clock) Option { return func(s *ScheduleService) { s.clock = c } }

// WithMaxPreviewDays lowers the preview horizon below the engine's hard cap.
func WithMaxPreviewDays(n int) Option { return func(s *ScheduleService) { s.maxPreviewDays = n } }
