package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Validation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeField    = "field"
	OutcomeBusiness = "business"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// PromRecorder records schedule engine metrics in Prometheus collectors.
type PromRecorder struct {
	validations *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	resolveTime prometheus.Histogram
	writes      *prometheus.CounterVec
}

// NewPromRecorder registers the collectors on reg, the default registerer when nil.
// Collectors already registered by an earlier recorder are reused.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_validations_total",
		Help: "Schedule validation pipeline runs by outcome",
	}, []string{"outcome"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_resolutions_total",
		Help: "Playlist resolutions by where the answer came from and what it was",
	}, []string{"source", "result"})
	resolveTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_resolve_duration_seconds",
		Help:    "Time spent resolving the active playlist of a tenant",
		Buckets: prometheus.DefBuckets,
	})
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_writes_total",
		Help: "Committed schedule writes by action",
	}, []string{"action"})

	var err error
	if validations, err = register(reg, validations); err != nil {
		return nil, err
	}
	if resolutions, err = register(reg, resolutions); err != nil {
		return nil, err
	}
	if resolveTime, err = register(reg, resolveTime); err != nil {
		return nil, err
	}
	if writes, err = register(reg, writes); err != nil {
		return nil, err
	}
	return &PromRecorder{
		validations: validations,
		resolutions: resolutions,
		resolveTime: resolveTime,
		writes:      writes,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *PromRecorder) ValidationOutcome(outcome string) {
	r.validations.WithLabelValues(outcome).Inc()
}

func (r *PromRecorder) Resolution(source, result string, took time.Duration) {
	r.resolutions.WithLabelValues(source, result).Inc()
	r.resolveTime.Observe(took.Seconds())
}

func (r *PromRecorder) ScheduleWrite(action string) {
	r.writes.WithLabelValues(action).Inc()
}

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor serves the metrics of one gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
