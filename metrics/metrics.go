// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "hackhive_request_duration_seconds",
			Help: "HTTP request latency by method and route pattern",
		},
		[]string{"method", "route"},
	)
	AgentsRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_agents_registered_total", Help: "Total agents registered"},
	)
	VotesCast = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackhive_votes_cast_total", Help: "Total votes recorded"},
	)
)

func Register() {
	prometheus.MustRegister(RequestDuration, AgentsRegistered, VotesCast)
}
