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

// Command cunitpp is a self-introspecting unit test runner: it scans
// its own ELF symbol tables (and, with --option All, every shared
// library mapped into it) for the __CUnitPP_ naming convention,
// builds a test plan, and executes it. See SPEC_FULL.md for the full
// design; this file is the wiring the core engine packages
// (internal/procmap, internal/elfsym, internal/symtab, internal/plan,
// internal/runner) don't do themselves.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cunitpp-go/internal/cli"
	"cunitpp-go/internal/conf"
	"cunitpp-go/internal/elfsym"
	"cunitpp-go/internal/log"
	"cunitpp-go/internal/plan"
	"cunitpp-go/internal/procmap"
	"cunitpp-go/internal/report/null"
	"cunitpp-go/internal/runner"
	"cunitpp-go/internal/symtab"
	"cunitpp-go/internal/termcolor"
	"cunitpp-go/pkg/metric"
	metricruntime "cunitpp-go/pkg/metric/runtime"
)

func main() {
	app := cli.NewApp("cunitpp", "self-introspecting unit test runner", run)
	if err := app.Run(os.Args); err != nil {
		termcolor.Error(os.Stderr, "[ ERROR ] %v", err)
		os.Exit(-1)
	}
}

func run(p *cli.Parsed) error {
	if p.Debug {
		log.SetDebug(true)
	}
	if p.LogFile != "" {
		log.EnableFile(p.LogFile, 0, 0, 0)
	}

	cfg, err := conf.Load(p.ConfigPath)
	if err != nil {
		return err
	}
	metricsAddr := p.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsListenAddr
	}

	modules, err := procmap.Read(os.Getpid(), p.Mode)
	if err != nil {
		return err
	}

	store := symtab.New()
	if err := elfsym.LoadAll(store, modules); err != nil {
		return err
	}
	log.Infof("loaded %d symbols from %d module(s)", store.Len(), len(modules))

	testPlan := plan.Build(store, p.ModuleFilter)

	suiteNames := make([]string, len(testPlan.Suites))
	for i, s := range testPlan.Suites {
		suiteNames[i] = s.Name
	}
	if err := conf.ApplyDefaultTimeoutFile(cfg, p.TimeoutFile, suiteNames); err != nil {
		return err
	}
	for _, suite := range suiteNames {
		if hint, ok := cfg.SuiteTimeoutHint[suite]; ok {
			log.Debugf("suite %q timeout hint: %dms (informational only)", suite, hint)
		}
	}

	if p.ListOnly {
		runner.ListAllTests(testPlan, os.Stdout)
		return nil
	}

	collector, stopMetrics := startMetrics(metricsAddr)
	if stopMetrics != nil {
		defer stopMetrics()
	}

	opt := runner.Options{
		ModuleFilter: p.ModuleFilter,
		Mode:         p.Mode,
		Out:          os.Stderr,
		Report:       &null.ReportClient{},
	}
	if collector != nil {
		opt.OnResult = func(suite, test string, kind plan.Kind, passed bool, elapsed time.Duration) {
			collector.Record(suite, test, kind, passed, elapsed.Seconds())
		}
	}

	var result *runner.Result
	if len(p.TestList) > 0 {
		result = runner.RunTestList(store, p.TestList, opt)
	} else {
		result = runner.Run(testPlan, opt)
	}

	log.Infof("ran %d test(s), %d failed", result.Total, result.Failed)
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}

// startMetrics serves /metrics on addr for the run's duration, per
// SPEC_FULL.md §4.12 — additive, never blocks exit. Returns a nil
// collector/stop pair when addr is empty.
func startMetrics(addr string) (*metric.ResultCollector, func()) {
	if addr == "" {
		return nil, nil
	}

	reg := prometheus.NewRegistry()
	collector := metric.NewResultCollector()
	reg.MustRegister(collector)
	metricruntime.RegisterCollector(reg, metric.DefaultNamespace)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server: %v", err)
		}
	}()

	return collector, func() {
		_ = srv.Close()
	}
}
