// Copyright 2025 AxonFlow
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus instrumentation for generation
// runs, independent of the driver so the CLI and the watch server share
// one set of counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// GenerationsTotal counts completed generation runs per workflow by
	// outcome (generated, cached, skipped, failed).
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sagagen_generations_total",
			Help: "Total number of workflow declarations processed by the generator",
		},
		[]string{"workflow", "outcome"},
	)

	// GenerationDurationSeconds tracks how long one declaration's full
	// extract-diagnose-emit pipeline took.
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sagagen_generation_duration_seconds",
			Help:    "Duration of one workflow declaration's generation pipeline",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"workflow"},
	)

	// DiagnosticsTotal counts diagnostics emitted by code, across every
	// generation run.
	DiagnosticsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sagagen_diagnostics_total",
			Help: "Total number of diagnostics emitted, by code",
		},
		[]string{"code", "severity"},
	)

	// ArtifactsWrittenTotal counts individual artifact files written to
	// disk.
	ArtifactsWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sagagen_artifacts_written_total",
			Help: "Total number of generated artifact files written to disk",
		},
	)

	// CacheHitsTotal and CacheMissesTotal track the incremental build
	// cache's effectiveness.
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sagagen_cache_hits_total",
			Help: "Total number of declarations whose generation was skipped due to a cache hit",
		},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sagagen_cache_misses_total",
			Help: "Total number of declarations that required full generation",
		},
	)
)

func init() {
	prometheus.MustRegister(GenerationsTotal)
	prometheus.MustRegister(GenerationDurationSeconds)
	prometheus.MustRegister(DiagnosticsTotal)
	prometheus.MustRegister(ArtifactsWrittenTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
}

// RecordDiagnostics tags the diagnostics counter for every diagnostic
// code/severity pair observed in one generation run.
func RecordDiagnostics(pairs [][2]string) {
	for _, p := range pairs {
		DiagnosticsTotal.WithLabelValues(p[0], p[1]).Inc()
	}
}
