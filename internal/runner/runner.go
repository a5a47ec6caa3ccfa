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

// Package runner executes a Test Plan: it installs a Failure Channel
// recovery anchor around each test body, times execution, and emits
// RUN/OK/FAIL/SUITE status lines. Grounded on
// original_source/src/cunitpp.c's RunTestPlan/RunAllModuleTest,
// extended with fixture dispatch per SPEC_FULL.md §4.9 and metrics
// recording per §4.12.
package runner

import (
	"fmt"
	"io"
	"os"
	"time"
	"unsafe"

	"cunitpp-go/internal/failure"
	"cunitpp-go/internal/namecodec"
	"cunitpp-go/internal/plan"
	"cunitpp-go/internal/procmap"
	"cunitpp-go/internal/report/types"
	"cunitpp-go/internal/symtab"
	"cunitpp-go/internal/termcolor"
)

// ReportSink receives every executed result. internal/report/null's
// ReportClient satisfies this without the runner importing it
// directly, keeping the default no-op sink swappable.
type ReportSink interface {
	Write(result *types.Result) error
}

// SimpleFunc is the shape of a simple or fixture-test function: for
// Simple suites it is called with nil; for Fixture suites it is
// called with the setup's returned context.
type SimpleFunc = func(ctx unsafe.Pointer)

// SetupFunc returns the opaque context fixture tests and the
// teardown will receive.
type SetupFunc = func() unsafe.Pointer

// TeardownFunc receives the context the setup returned.
type TeardownFunc = func(ctx unsafe.Pointer)

// funcval mirrors the Go runtime's own representation of a function
// value with no captured variables: a func variable is itself a
// pointer to a funcval whose first (and, here, only) word is the
// entry-point address. Discovered symbol addresses are raw code
// pointers, not func values, so calling through one means
// constructing this tiny struct and pointing a func variable at it —
// the same trick runtime function-patching libraries in the Go
// ecosystem use to call code at an address obtained outside the
// compiler's type system.
type funcval struct {
	code uintptr
}

func makeSimpleFunc(addr uint64) SimpleFunc {
	fv := &funcval{code: uintptr(addr)}
	var fn SimpleFunc
	*(*unsafe.Pointer)(unsafe.Pointer(&fn)) = unsafe.Pointer(fv)
	return fn
}

func makeSetupFunc(addr uint64) SetupFunc {
	fv := &funcval{code: uintptr(addr)}
	var fn SetupFunc
	*(*unsafe.Pointer)(unsafe.Pointer(&fn)) = unsafe.Pointer(fv)
	return fn
}

func makeTeardownFunc(addr uint64) TeardownFunc {
	fv := &funcval{code: uintptr(addr)}
	var fn TeardownFunc
	*(*unsafe.Pointer)(unsafe.Pointer(&fn)) = unsafe.Pointer(fv)
	return fn
}

// Options configures a run.
type Options struct {
	// ModuleFilter records the --module-list suite names the plan was
	// built with. Run and RunTestList do not consult it; filtering
	// happens in plan.Build.
	ModuleFilter []string
	// Mode records the MainOnly vs All module scanning mode. Run and
	// RunTestList do not consult it; scanning happens in procmap.Read.
	Mode procmap.Mode
	// Out is where status lines are written; defaults to os.Stderr.
	Out io.Writer
	// OnResult, if set, is called once per executed test — the hook
	// pkg/metric wires into to record duration/pass-fail (SPEC_FULL.md
	// §4.12) without the runner importing the metrics package.
	OnResult func(suite, test string, kind plan.Kind, passed bool, elapsed time.Duration)
	// Report, if set, receives every executed test as a types.Result.
	// cmd/cunitpp defaults this to internal/report/null's discarding
	// client; a future non-null sink plugs in here unchanged.
	Report ReportSink
}

func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stderr
}

// Result is the aggregate outcome of a run: ExitCode is 0 iff every
// executed test passed and no lookup/ELF errors occurred, -1
// otherwise, per spec.md §6.
type Result struct {
	ExitCode int
	Total    int
	Failed   int
}

func newResult() *Result { return &Result{} }

func (r *Result) record(passed bool) {
	r.Total++
	if !passed {
		r.Failed++
	}
}

func (r *Result) finalize() {
	if r.Failed > 0 {
		r.ExitCode = -1
	}
}

// Run executes plan's suites in order; within a suite, tests run in
// insertion (discovery) order. A test's failure never aborts the
// suite or the plan.
func Run(p *plan.Plan, opt Options) *Result {
	r := newResult()
	out := opt.out()

	for _, s := range p.Suites {
		termcolor.Suite(out, "[ SUITE(%s) ] %s", kindTag(s.Kind), s.Name)

		switch s.Kind {
		case plan.Simple:
			runSimpleSuite(s, out, opt, r)
		case plan.Fixture:
			runFixtureSuite(s, out, opt, r)
		}
	}

	r.finalize()
	return r
}

func kindTag(k plan.Kind) string {
	if k == plan.Fixture {
		return "F"
	}
	return "T"
}

func runSimpleSuite(s *plan.Suite, out io.Writer, opt Options, r *Result) {
	for _, t := range s.Tests {
		if t.Address == 0 {
			continue
		}
		runOne(s.Name, t.Name, plan.Simple, t.Address, nil, out, opt, r)
	}
}

func runFixtureSuite(s *plan.Suite, out io.Writer, opt Options, r *Result) {
	var ctx unsafe.Pointer
	setupRan := false

	if s.HasSetup() && s.SetupAddr != 0 {
		termcolor.Suite(out, "[ SETUP    ] %s", s.Name)
		setup := makeSetupFunc(s.SetupAddr)
		ctx = setup()
		setupRan = true
	}

	for _, t := range s.Tests {
		if t.Address == 0 {
			continue
		}
		runOne(s.Name, t.Name, plan.Fixture, t.Address, ctx, out, opt, r)
	}

	if setupRan && s.HasTeardown() && s.TeardownAddr != 0 {
		termcolor.Suite(out, "[ TEARDOWN ] %s", s.Name)
		teardown := makeTeardownFunc(s.TeardownAddr)
		teardown(ctx)
	}
}

func runOne(suite, test string, kind plan.Kind, addr uint64, ctx unsafe.Pointer, out io.Writer, opt Options, r *Result) {
	full := suite + "." + test
	termcolor.Run(out, "[ RUN      ] %s", full)

	fn := makeSimpleFunc(addr)

	start := time.Now()
	raised, reason := failure.Catch(func() { fn(ctx) })
	elapsed := time.Since(start)
	ranAt := start

	passed := !raised
	r.record(passed)

	if passed {
		termcolor.OK(out, "[      OK ] %s (%dms)", full, elapsed.Milliseconds())
	} else {
		termcolor.Fail(out, "[    FAIL ] %s (%dms): %s", full, elapsed.Milliseconds(), reason)
	}

	if opt.OnResult != nil {
		opt.OnResult(suite, test, kind, passed, elapsed)
	}
	if opt.Report != nil {
		_ = opt.Report.Write(&types.Result{
			Suite:    suite,
			Test:     test,
			Passed:   passed,
			Reason:   reason,
			Duration: elapsed,
			RanAt:    ranAt,
		})
	}
}

// RunTestList bypasses plan building: it encodes each "Suite.Test"
// pair via namecodec, looks it up through store's FindStrong, and
// invokes it under the same recovery scope as a Simple test. Unknown
// names are reported and contribute to a non-zero aggregate exit
// code, but subsequent names are still attempted (spec.md §4.6/§7,
// UnknownTest).
func RunTestList(store *symtab.Store, names []string, opt Options) *Result {
	r := newResult()
	out := opt.out()

	for _, qualified := range names {
		suite, test, ok := splitSuiteTest(qualified)
		if !ok {
			termcolor.Error(out, "[ ERROR ] malformed test name %q, want Suite.Test", qualified)
			r.record(false)
			continue
		}

		symbol, err := namecodec.Encode(namecodec.SimpleTest, suite, test)
		if err != nil {
			termcolor.Error(out, "[ ERROR ] %v", err)
			r.record(false)
			continue
		}

		addr, found := store.FindStrong(symbol)
		if !found {
			termcolor.Error(out, "[ ERROR ] unknown test %q", qualified)
			r.record(false)
			continue
		}

		runOne(suite, test, plan.Simple, addr, nil, out, opt, r)
	}

	r.finalize()
	return r
}

func splitSuiteTest(qualified string) (suite, test string, ok bool) {
	for i := 0; i < len(qualified); i++ {
		if qualified[i] == '.' {
			return qualified[:i], qualified[i+1:], true
		}
	}
	return "", "", false
}

// ListAllTests prints the same structure Run would execute, without
// invoking any test bodies.
func ListAllTests(p *plan.Plan, out io.Writer) {
	for _, s := range p.Suites {
		termcolor.Suite(out, "[ SUITE(%s) ] %s", kindTag(s.Kind), s.Name)
		if s.Kind == plan.Fixture {
			if s.HasSetup() {
				fmt.Fprintf(out, "  [ setup    ]\n")
			}
			if s.HasTeardown() {
				fmt.Fprintf(out, "  [ teardown ]\n")
			}
		}
		for _, t := range s.Tests {
			fmt.Fprintf(out, "  %s.%s\n", s.Name, t.Name)
		}
	}
}
