// Package metrics exposes run counters for the node-exporter textfile
// collector.
package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "placement_insights"

// Metrics holds the collectors of a single command run on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	studentsAssessed prometheus.Counter
	studentsAtRisk   *prometheus.GaugeVec
	eligibilityRate  prometheus.Gauge
	answersGraded    *prometheus.CounterVec
	lookupFailures   prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		studentsAssessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "students_assessed_total",
			Help:      "Students passed through risk or eligibility scoring.",
		}),
		studentsAtRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "students_at_risk",
			Help:      "Students at or above the risk threshold by level.",
		}, []string{"level"}),
		eligibilityRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_eligibility_rate",
			Help:      "Percentage of students meeting the last forecast criteria.",
		}),
		answersGraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_graded_total",
			Help:      "Interview answers graded by grader.",
		}, []string{"grader"}),
		lookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "student_lookup_failures_total",
			Help:      "Students skipped because their counters could not be fetched.",
		}),
	}

	m.registry.MustRegister(
		m.studentsAssessed,
		m.studentsAtRisk,
		m.eligibilityRate,
		m.answersGraded,
		m.lookupFailures,
	)

	return m
}

func (m *Metrics) AddAssessed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.studentsAssessed.Add(float64(n))
}

func (m *Metrics) SetAtRisk(level string, n int) {
	if m == nil {
		return
	}
	m.studentsAtRisk.WithLabelValues(level).Set(float64(n))
}

func (m *Metrics) SetEligibilityRate(rate int) {
	if m == nil {
		return
	}
	m.eligibilityRate.Set(float64(rate))
}

func (m *Metrics) IncGraded(grader string) {
	if m == nil {
		return
	}
	m.answersGraded.WithLabelValues(grader).Inc()
}

func (m *Metrics) AddLookupFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.lookupFailures.Add(float64(n))
}

// Registry returns the private registry; nil for a nil receiver.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile atomically writes the registry in text exposition format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	path = strings.TrimSpace(path)
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %q: %w", path, err)
	}
	return nil
}
