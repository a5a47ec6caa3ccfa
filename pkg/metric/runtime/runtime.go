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

// Package runtime registers the process-wide Go runtime gauges
// (goroutine count, process start time, heap in use), sampled on each
// scrape, alongside pkg/metric's own test-result collector, per
// SPEC_FULL.md §4.12.
package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RegisterCollector registers the standard Go and process collectors
// on reg, every metric name prefixed with "<namespace>_", so a
// batch-CI scrape of a cunitpp run carries the same runtime gauges
// any other Prometheus-instrumented Go service would.
func RegisterCollector(reg *prometheus.Registry, namespace string) {
	wrapped := prometheus.WrapRegistererWithPrefix(namespace+"_", reg)
	wrapped.MustRegister(prometheus.NewGoCollector())
	wrapped.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
