// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires Prometheus collectors for the DA task behind
// the luxfi/metric.Registry facade, grounded on metrics/metrics.go's
// thin Registry-plus-Register(collector) shape and on context_values.go's
// ChainContext.Metrics field.
package metrics

import (
	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the DA task updates as it runs.
type Metrics struct {
	registry metric.Registry

	ProposalsReceived   prometheus.Counter
	ProposalsRejected   *prometheus.CounterVec
	VotesReceived       prometheus.Counter
	VotesRejected       *prometheus.CounterVec
	CertificatesEmitted prometheus.Counter
	VIDCommitDuration   prometheus.Histogram
	CurrentView         prometheus.Gauge
}

// New builds and registers every collector against reg.
func New(reg metric.Registry) (*Metrics, error) {
	m := newCollectors()
	m.registry = reg

	collectors := []prometheus.Collector{
		m.ProposalsReceived,
		m.ProposalsRejected,
		m.VotesReceived,
		m.VotesRejected,
		m.CertificatesEmitted,
		m.VIDCommitDuration,
		m.CurrentView,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewNop builds the same collectors as New but registers them
// nowhere, for tests and callers that have no metric.Registry handy
// (mirroring logging.NewNop's discard-everything stand-in).
func NewNop() *Metrics {
	return newCollectors()
}

func newCollectors() *Metrics {
	return &Metrics{
		ProposalsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotda",
			Name:      "proposals_received_total",
			Help:      "Number of DA proposals received.",
		}),
		ProposalsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotda",
			Name:      "proposals_rejected_total",
			Help:      "Number of DA proposals rejected, by reason.",
		}, []string{"reason"}),
		VotesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotda",
			Name:      "votes_received_total",
			Help:      "Number of DA votes received.",
		}),
		VotesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotda",
			Name:      "votes_rejected_total",
			Help:      "Number of DA votes rejected, by reason.",
		}, []string{"reason"}),
		CertificatesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotda",
			Name:      "certificates_emitted_total",
			Help:      "Number of DA certificates assembled.",
		}),
		VIDCommitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotda",
			Name:      "vid_commit_duration_seconds",
			Help:      "Time spent computing a VID commitment.",
		}),
		CurrentView: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hotda",
			Name:      "current_view",
			Help:      "The node's current view number.",
		}),
	}
}
