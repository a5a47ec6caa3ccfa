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

// Package plan walks a symtab.Store through namecodec and produces an
// ordered Test Plan of suites, honoring an optional suite filter.
// Grounded on original_source/src/cunitpp.c's
// PrepareTestPlan/SymbolBegin/OnSymbol/SymbolEnd/TestPlan family,
// generalized from a flat module list to suite-kind + fixture slots
// per spec.md §4.5.
package plan

import (
	"cunitpp-go/internal/log"
	"cunitpp-go/internal/namecodec"
	"cunitpp-go/internal/symtab"
)

// Kind is a suite's execution shape, fixed on first assignment.
type Kind int

const (
	Simple Kind = iota
	Fixture
)

func (k Kind) String() string {
	if k == Fixture {
		return "Fixture"
	}
	return "Simple"
}

// Entry is one runnable item: a display name paired with the address
// the runner will call.
type Entry struct {
	Name    string
	Address uint64
}

// Suite groups Test Entries sharing a suite name.
type Suite struct {
	Name string
	Kind Kind

	Tests []Entry

	// Fixture-kind only.
	hasSetup    bool
	hasTeardown bool
	SetupAddr   uint64
	TeardownAddr uint64

	kindSet bool
}

// Plan is the ordered list of Suites the Runner will execute.
type Plan struct {
	Suites []*Suite
	index  map[string]*Suite
}

func newPlan() *Plan {
	return &Plan{index: make(map[string]*Suite)}
}

func (p *Plan) suite(name string) *Suite {
	if s, ok := p.index[name]; ok {
		return s
	}
	return nil
}

func (p *Plan) addSuite(name string) *Suite {
	s := &Suite{Name: name}
	p.index[name] = s
	p.Suites = append(p.Suites, s)
	return s
}

// assignKind sets a suite's kind the first time a role is observed for
// it, and silently discards (logged at debug level, per spec.md §9)
// any later symbol whose role contradicts the already-fixed kind.
// Reports whether the symbol should be kept.
func (s *Suite) assignKind(role namecodec.Role) bool {
	want := Simple
	if role != namecodec.SimpleTest {
		want = Fixture
	}

	if !s.kindSet {
		s.Kind = want
		s.kindSet = true
		return true
	}
	if s.Kind != want {
		log.Debugf("plan: suite %q kind %v rejects role %v", s.Name, s.Kind, role)
		return false
	}
	return true
}

func (s *Suite) attach(d namecodec.Decoded, addr uint64) {
	switch d.Role {
	case namecodec.SimpleTest, namecodec.FixtureTest:
		s.Tests = append(s.Tests, Entry{Name: d.Name, Address: addr})
	case namecodec.FixtureSetup:
		if s.hasSetup {
			log.Debugf("plan: suite %q already has a setup, discarding duplicate", s.Name)
			return
		}
		s.hasSetup = true
		s.SetupAddr = addr
	case namecodec.FixtureTeardown:
		if s.hasTeardown {
			log.Debugf("plan: suite %q already has a teardown, discarding duplicate", s.Name)
			return
		}
		s.hasTeardown = true
		s.TeardownAddr = addr
	}
}

// HasSetup reports whether a setup symbol was bound for this suite.
func (s *Suite) HasSetup() bool { return s.hasSetup }

// HasTeardown reports whether a teardown symbol was bound.
func (s *Suite) HasTeardown() bool { return s.hasTeardown }

// Build walks store and produces a Plan. When filter is empty,
// Discover-all mode applies: every decoded symbol creates or extends a
// suite, in discovery order. When filter is non-empty, Filter mode
// applies: the plan is pre-seeded with the listed suites in listed
// order, and symbols whose decoded suite is not in the list are
// discarded.
func Build(store *symtab.Store, filter []string) *Plan {
	p := newPlan()
	filterMode := len(filter) > 0
	if filterMode {
		for _, name := range filter {
			p.addSuite(name)
		}
	}

	// pendingSuite/pendingDecoded bridge the begin and onVariant
	// callbacks for the entry currently being visited. ForEach never
	// interleaves entries, so this single-slot handoff done via
	// closure capture is safe for the strictly sequential engine
	// (spec.md §5).
	var pendingSuite *Suite
	var pendingDecoded namecodec.Decoded

	store.ForEach(
		func(rawName string) symtab.Control {
			unqualified := namecodec.StripQualifier(rawName)
			d, ok := namecodec.Decode(unqualified)
			if !ok {
				return symtab.Break
			}

			s := p.suite(d.Suite)
			if s == nil {
				if filterMode {
					return symtab.Break
				}
				s = p.addSuite(d.Suite)
			}

			if !s.assignKind(d.Role) {
				return symtab.Break
			}

			pendingSuite = s
			pendingDecoded = d
			return symtab.Continue
		},
		func(addr uint64, weak bool) symtab.Control {
			if weak {
				return symtab.Continue
			}
			pendingSuite.attach(pendingDecoded, addr)
			return symtab.Break
		},
		func() {},
	)

	return p
}
