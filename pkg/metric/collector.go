// Copyright 2026 The HuaTuo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metric exposes a run's test results as Prometheus metrics:
// one pass/fail gauge and one duration gauge per executed test,
// labelled by suite, test and kind. Shaped after a collector-manager pattern (scrape-duration/
// scrape-success Desc pair, a mutex-guarded record path) but
// specialized to a single purpose instead of a registry of pluggable
// named collectors, per SPEC_FULL.md §4.12.
package metric

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"cunitpp-go/internal/plan"
)

// DefaultNamespace is the Prometheus metric namespace every metric
// this package exports is registered under.
const DefaultNamespace = "cunitpp"

// ResultCollector implements prometheus.Collector over the test
// results recorded into it by internal/runner's Options.OnResult hook.
type ResultCollector struct {
	mu sync.Mutex

	resultDesc   *prometheus.Desc
	durationDesc *prometheus.Desc

	results []recordedResult
}

type recordedResult struct {
	suite, test, kind string
	passed            bool
	seconds           float64
}

// NewResultCollector creates an empty collector ready to be handed to
// internal/runner.Options.OnResult via Record, then registered on a
// prometheus.Registry for a single scrape.
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		resultDesc: prometheus.NewDesc(
			prometheus.BuildFQName(DefaultNamespace, "test", "result"),
			"1 if the test passed, 0 if it failed",
			[]string{"suite", "test", "kind"}, nil,
		),
		durationDesc: prometheus.NewDesc(
			prometheus.BuildFQName(DefaultNamespace, "test", "duration_seconds"),
			"wall-clock duration of one executed test",
			[]string{"suite", "test", "kind"}, nil,
		),
	}
}

// Record is the runner.Options.OnResult-shaped hook: call it once per
// executed test.
func (c *ResultCollector) Record(suite, test string, kind plan.Kind, passed bool, elapsedSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, recordedResult{
		suite:   suite,
		test:    test,
		kind:    kind.String(),
		passed:  passed,
		seconds: elapsedSeconds,
	})
}

// Describe implements prometheus.Collector.
func (c *ResultCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.resultDesc
	ch <- c.durationDesc
}

// Collect implements prometheus.Collector.
func (c *ResultCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.results {
		passVal := 0.0
		if r.passed {
			passVal = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.resultDesc, prometheus.GaugeValue, passVal, r.suite, r.test, r.kind)
		ch <- prometheus.MustNewConstMetric(c.durationDesc, prometheus.GaugeValue, r.seconds, r.suite, r.test, r.kind)
	}
}
