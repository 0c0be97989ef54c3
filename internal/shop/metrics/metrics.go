// Package metrics holds the Prometheus collectors the storefront records
// into. A nil *Metrics is valid and records nothing, which keeps tests that
// do not care about metrics free of registry setup.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sign-in stages.
const (
	StagePrimary   = "primary"
	StageSecond    = "second_factor"
	StageChallenge = "challenge"
)

// Sign-in outcomes.
const (
	OutcomeSession   = "session"
	OutcomeChallenge = "challenge"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

type Metrics struct {
	SignInAttempts       *prometheus.CounterVec
	CategoryChanges      *prometheus.CounterVec
	UploadBytes          prometheus.Counter
	UploadsTotal         prometheus.Counter
	TwoFactorChanges     *prometheus.CounterVec
	HousekeepingDeleted  *prometheus.CounterVec
	HousekeepingFailures prometheus.Counter
}

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// New creates the storefront metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignInAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_signin_attempts_total",
				Help: "Sign-in attempts by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		CategoryChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_category_changes_total",
				Help: "Category writes by action",
			},
			[]string{"action"},
		),
		UploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_upload_bytes_total",
			Help: "Bytes written by image uploads",
		}),
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_uploads_total",
			Help: "Image uploads stored",
		}),
		TwoFactorChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_two_factor_changes_total",
				Help: "Two-factor enrolment changes by action",
			},
			[]string{"action"},
		),
		HousekeepingDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_housekeeping_deleted_total",
				Help: "Rows removed by housekeeping by kind",
			},
			[]string{"kind"},
		),
		HousekeepingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_housekeeping_failures_total",
			Help: "Housekeeping runs that hit an error",
		}),
	}

	reg.MustRegister(
		m.SignInAttempts,
		m.CategoryChanges,
		m.UploadBytes,
		m.UploadsTotal,
		m.TwoFactorChanges,
		m.HousekeepingDeleted,
		m.HousekeepingFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) RecordSignIn(stage, outcome string) {
	if m == nil {
		return
	}
	m.SignInAttempts.WithLabelValues(stage, outcome).Inc()
}

func (m *Metrics) RecordCategoryChange(action string) {
	if m == nil {
		return
	}
	m.CategoryChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) RecordUpload(size int64) {
	if m == nil {
		return
	}
	m.UploadsTotal.Inc()
	m.UploadBytes.Add(float64(size))
}

func (m *Metrics) RecordTwoFactorChange(action string) {
	if m == nil {
		return
	}
	m.TwoFactorChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) RecordHousekeeping(kind string, deleted int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.HousekeepingFailures.Inc()
		return
	}
	m.HousekeepingDeleted.WithLabelValues(kind).Add(float64(deleted))
}
