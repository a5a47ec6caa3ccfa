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

package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cunitpp-go/internal/plan"
)

func TestResultCollectorCollect(t *testing.T) {
	c := NewResultCollector()
	c.Record("Suite1", "TestA", plan.Simple, true, 0.01)
	c.Record("Suite1", "TestB", plan.Fixture, false, 0.02)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	got, err := reg.Gather()
	require.NoError(t, err)

	var sawResult, sawDuration int
	for _, mf := range got {
		switch mf.GetName() {
		case "cunitpp_test_result":
			sawResult = len(mf.GetMetric())
		case "cunitpp_test_duration_seconds":
			sawDuration = len(mf.GetMetric())
		}
	}
	assert.Equal(t, 2, sawResult, "cunitpp_test_result series")
	assert.Equal(t, 2, sawDuration, "cunitpp_test_duration_seconds series")
}

func TestResultCollectorEmpty(t *testing.T) {
	c := NewResultCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	got, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range got {
		assert.Empty(t, mf.GetMetric(), "series for %s with no recorded results", mf.GetName())
	}
}

func TestResultCollectorPassValue(t *testing.T) {
	c := NewResultCollector()
	c.Record("Suite1", "TestA", plan.Simple, true, 0.0)

	ch := make(chan prometheus.Metric, 2)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		var d dto.Metric
		require.NoError(t, m.Write(&d))
		if d.GetGauge() == nil {
			continue
		}
		assert.Equal(t, 1.0, d.GetGauge().GetValue(), "result gauge for a passed test")
		return
	}
	t.Fatal("no metrics emitted")
}
