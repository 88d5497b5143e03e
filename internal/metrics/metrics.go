// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus collectors for one analysis run and
// writes them in node-exporter textfile format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "keyword_trends"

// Metrics holds the collectors for a run on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	term     string

	RequestsTotal    *prometheus.CounterVec
	CoolDownsTotal   prometheus.Counter
	FailedYearsTotal prometheus.Counter
	Papers           *prometheus.GaugeVec
	LastRunSeconds   prometheus.Gauge
}

// New creates and registers the run collectors. term labels the per-year
// paper gauge.
func New(term string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		term:     term,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Search API requests by outcome (success, rate_limited, error).",
			},
			[]string{"outcome"},
		),
		CoolDownsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cool_downs_total",
				Help:      "Rate-limit cool-down waits.",
			},
		),
		FailedYearsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failed_years_total",
				Help:      "Years recorded as zero after exhausting retries.",
			},
		),
		Papers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "papers",
				Help:      "Papers matching the search term per publication year.",
			},
			[]string{"term", "year"},
		),
		LastRunSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the run finished.",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.CoolDownsTotal,
		m.FailedYearsTotal,
		m.Papers,
		m.LastRunSeconds,
	)
	return m
}

// ObserveRequest counts one search request.
func (m *Metrics) ObserveRequest(outcome string) {
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCoolDown counts one rate-limit wait.
func (m *Metrics) ObserveCoolDown() {
	m.CoolDownsTotal.Inc()
}

// ObserveYear records the final count for a year.
func (m *Metrics) ObserveYear(year, count int, failed bool) {
	if failed {
		m.FailedYearsTotal.Inc()
	}
	m.Papers.WithLabelValues(m.term, strconv.Itoa(year)).Set(float64(count))
}

// Registry returns the private registry holding the run collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile stamps the finish time and writes all collectors to path.
// The file is written atomically by the Prometheus client.
func (m *Metrics) WriteTextfile(path string, finished time.Time) error {
	m.LastRunSeconds.Set(float64(finished.Unix()))
	return prometheus.WriteToTextfile(path, m.registry)
}
