// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package metrics holds the Prometheus collectors for source generation and
// export. Watch mode serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shadergraph"

// Export results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics is the set of collectors a document reports to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Generations counts successful GenerateSource runs.
	Generations prometheus.Counter
	// NodesEmitted counts node blocks written into generated source.
	NodesEmitted prometheus.Counter
	// NodesDropped counts nodes left out because an input was unfed.
	NodesDropped prometheus.Counter
	// Exports counts export attempts. Labels: result (success, error)
	Exports *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Generations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of successful source generation runs.",
		}),
		NodesEmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_emitted_total",
			Help:      "Total number of node blocks written into generated source.",
		}),
		NodesDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_dropped_total",
			Help:      "Total number of nodes left out of generated source because an input was not connected.",
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total number of exports by result.",
		}, []string{"result"}),
	}
}

// ObserveGeneration records one successful generation run.
func (m *Metrics) ObserveGeneration(emitted, dropped int) {
	if m == nil {
		return
	}
	m.Generations.Inc()
	m.NodesEmitted.Add(float64(emitted))
	m.NodesDropped.Add(float64(dropped))
}

// ObserveExport records one export attempt.
func (m *Metrics) ObserveExport(err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.Exports.WithLabelValues(result).Inc()
}
