// Package telemetry provides Prometheus metrics collection for deadmock: one
// struct holding every registered metric, constructed once via promauto and
// shared across the pipeline.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every Prometheus metric deadmock exposes.
type Collector struct {
	MatchesTotal     *prometheus.CounterVec
	MatchDuration    prometheus.Histogram
	CacheLookups     *prometheus.CounterVec
	UpstreamCalls    *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	ConnectionsTotal prometheus.Counter
	ConnectionsOpen  prometheus.Gauge
}

// New creates a Collector with every metric registered against the
// default Prometheus registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Collector registered against reg instead of the
// global default, so tests can use a fresh prometheus.NewRegistry() per
// case and avoid "duplicate metrics collector registration" panics.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		MatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "deadmock",
				Name:      "matches_total",
				Help:      "Total number of requests evaluated by the matcher, by outcome.",
			},
			[]string{"outcome"}, // "matched" | "no_match"
		),
		MatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "deadmock",
				Name:      "match_duration_seconds",
				Help:      "Time spent evaluating the mapping store for one request.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "deadmock",
				Name:      "body_cache_lookups_total",
				Help:      "Body file cache lookups, by outcome.",
			},
			[]string{"outcome"}, // "hit" (any successful load, first read included) | "not_found" | "error"
		),
		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "deadmock",
				Name:      "upstream_calls_total",
				Help:      "Outbound upstream calls, by client variant and outcome.",
			},
			[]string{"variant", "outcome"}, // variant: http|https|proxied; outcome: ok|timeout|error
		),
		UpstreamLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "deadmock",
				Name:      "upstream_latency_seconds",
				Help:      "Upstream round-trip latency.",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"variant"},
		),
		ConnectionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "deadmock",
				Name:      "connections_total",
				Help:      "Total accepted client connections.",
			},
		),
		ConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "deadmock",
				Name:      "connections_open",
				Help:      "Currently open client connections.",
			},
		),
	}
}

// ObserveUpstream records the outcome and latency of one upstream call.
func (c *Collector) ObserveUpstream(variant, outcome string, d time.Duration) {
	c.UpstreamCalls.WithLabelValues(variant, outcome).Inc()
	c.UpstreamLatency.WithLabelValues(variant).Observe(d.Seconds())
}
