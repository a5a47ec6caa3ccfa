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

// Package conf loads the engine's non-functional knobs: an optional
// per-suite timeout hint (informational only — spec.md's Non-goals
// exclude actual cancellation, so this is surfaced in output but
// never used to abort a test) and the metrics listen address.
// Built on pelletier/go-toml; absence of a config file is not an
// error, per SPEC_FULL.md §4.10.
package conf

import (
	"os"

	"github.com/pelletier/go-toml"

	"cunitpp-go/internal/utils/parseutil"
)

// Config is the full set of non-flag knobs.
type Config struct {
	// SuiteTimeoutHint is logged at debug level by cmd/cunitpp for each
	// planned suite that has one, but never enforced — spec.md §1 lists timeouts as a Non-goal.
	SuiteTimeoutHint map[string]uint64 `toml:"suite_timeout_hint_ms"`
	// MetricsListenAddr, if non-empty, is where pkg/metric serves
	// /metrics for the duration of a run.
	MetricsListenAddr string `toml:"metrics_listen_addr"`
}

// Default returns the zero-value config used when no file is
// supplied: no timeout hints, metrics export disabled.
func Default() *Config {
	return &Config{SuiteTimeoutHint: map[string]uint64{}}
}

// Load reads a TOML config file at path. A missing file is not an
// error — it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.SuiteTimeoutHint == nil {
		cfg.SuiteTimeoutHint = map[string]uint64{}
	}
	return cfg, nil
}

// ApplyDefaultTimeoutFile reads a single sysfs-style numeric file (one
// bare uint64, the shape /sys and /proc knobs use) and fills in
// cfg.SuiteTimeoutHint for any suite named in suites that doesn't
// already carry a TOML-configured hint. Lets a CI environment inject
// one blanket timeout hint via a bind-mounted file instead of writing
// a TOML stanza per suite.
func ApplyDefaultTimeoutFile(cfg *Config, path string, suites []string) error {
	if path == "" {
		return nil
	}
	hint, err := parseutil.ReadUint(path)
	if err != nil {
		return err
	}
	for _, suite := range suites {
		if _, ok := cfg.SuiteTimeoutHint[suite]; !ok {
			cfg.SuiteTimeoutHint[suite] = hint
		}
	}
	return nil
}
