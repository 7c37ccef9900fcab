// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package metrics exposes the simulator's packet-outcome counters as
// Prometheus metrics, for long-running batch scenarios where polling
// /metrics is more convenient than parsing the event log after the fact.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heistp/rawcell/internal/sim"
)

// Recorder is a sim.Metrics implementation backed by Prometheus counters.
type Recorder struct {
	generated         prometheus.Counter
	delivered         prometheus.Counter
	dropped           prometheus.Counter
	retryLimitDropped prometheus.Counter
}

// NewRecorder registers the rawcell counters with reg and returns a
// Recorder implementing sim.Metrics.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawcell",
			Name:      "packets_generated_total",
			Help:      "Total data packets generated by stations.",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawcell",
			Name:      "packets_delivered_total",
			Help:      "Total data packets successfully acked end-to-end.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawcell",
			Name:      "packets_dropped_total",
			Help:      "Total data frames dropped by the AP's reception model.",
		}),
		retryLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawcell",
			Name:      "packets_retry_limit_dropped_total",
			Help:      "Total packets abandoned after exceeding the retry limit.",
		}),
	}
	reg.MustRegister(r.generated, r.delivered, r.dropped, r.retryLimitDropped)
	return r
}

func (r *Recorder) Generated()         { r.generated.Inc() }
func (r *Recorder) Delivered()         { r.delivered.Inc() }
func (r *Recorder) Dropped()           { r.dropped.Inc() }
func (r *Recorder) RetryLimitDropped() { r.retryLimitDropped.Inc() }

var _ sim.Metrics = (*Recorder)(nil)

// Handler returns the HTTP handler to serve the registry at /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
