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

package symtab

import (
	"fmt"
	"testing"
)

func TestInsertFindRoundTrip(t *testing.T) {
	s := New()
	e := s.Insert("foo")
	if e.Name() != "foo" {
		t.Fatalf("Insert().Name() = %q, want foo", e.Name())
	}
	if got := s.Find("foo"); got != e {
		t.Errorf("Find(foo) = %v, want the same entry pointer as Insert() returned", got)
	}
	if got := s.Find("bar"); got != nil {
		t.Errorf("Find(bar) = %v, want nil for an absent name", got)
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	s := New()
	a := s.Insert("foo")
	b := s.Insert("foo")
	if a != b {
		t.Error("Insert() called twice with the same name returned two different entries")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestFindStrongPrefersStrongOverWeak(t *testing.T) {
	s := New()
	e := s.Insert("sym")
	s.AppendVariant(e, Variant{Address: 0x1000, Binding: Weak})
	s.AppendVariant(e, Variant{Address: 0x2000, Binding: Strong})

	addr, ok := s.FindStrong("sym")
	if !ok || addr != 0x2000 {
		t.Errorf("FindStrong(sym) = (%x, %v), want (0x2000, true)", addr, ok)
	}
}

func TestFindStrongAbsentWhenOnlyWeak(t *testing.T) {
	s := New()
	e := s.Insert("sym")
	s.AppendVariant(e, Variant{Address: 0x1000, Binding: Weak})

	if _, ok := s.FindStrong("sym"); ok {
		t.Error("FindStrong(sym) = ok for a weak-only entry, want not found")
	}
}

func TestFindStrongUnknownName(t *testing.T) {
	s := New()
	if _, ok := s.FindStrong("nope"); ok {
		t.Error("FindStrong() on empty store = ok, want not found")
	}
}

func TestInsertGrowsAndKeepsAllEntries(t *testing.T) {
	s := New()
	const n = initialCapacity * 3
	for i := 0; i < n; i++ {
		s.Insert(fmt.Sprintf("sym-%d", i))
	}
	if s.Len() != n {
		t.Fatalf("Len() = %d, want %d", s.Len(), n)
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("sym-%d", i)
		if s.Find(name) == nil {
			t.Fatalf("Find(%q) = nil after growth, want a live entry", name)
		}
	}
}

func TestForEachVisitsEveryEntryAndVariant(t *testing.T) {
	s := New()
	e1 := s.Insert("a")
	s.AppendVariant(e1, Variant{Address: 1})
	s.AppendVariant(e1, Variant{Address: 2})
	e2 := s.Insert("b")
	s.AppendVariant(e2, Variant{Address: 3})

	seenNames := map[string]int{}
	var seenAddrs []uint64
	ends := 0

	s.ForEach(
		func(name string) Control {
			seenNames[name]++
			return Continue
		},
		func(addr uint64, weak bool) Control {
			seenAddrs = append(seenAddrs, addr)
			return Continue
		},
		func() { ends++ },
	)

	if seenNames["a"] != 1 || seenNames["b"] != 1 {
		t.Errorf("seenNames = %v, want each name visited exactly once", seenNames)
	}
	if len(seenAddrs) != 3 {
		t.Errorf("len(seenAddrs) = %d, want 3", len(seenAddrs))
	}
	if ends != 2 {
		t.Errorf("end() called %d times, want 2 (once per entry)", ends)
	}
}

func TestForEachBreakSkipsRemainingVariantsNotRemainingEntries(t *testing.T) {
	s := New()
	e1 := s.Insert("a")
	s.AppendVariant(e1, Variant{Address: 1})
	s.AppendVariant(e1, Variant{Address: 2})
	s.Insert("b")

	entriesWithVariants := 0
	entriesTotal := 0

	s.ForEach(
		func(name string) Control {
			entriesTotal++
			return Continue
		},
		func(addr uint64, weak bool) Control {
			entriesWithVariants++
			return Break
		},
		func() {},
	)

	if entriesTotal != 2 {
		t.Errorf("entriesTotal = %d, want 2: Break on a variant must not stop iteration of later entries", entriesTotal)
	}
	if entriesWithVariants != 1 {
		t.Errorf("entries whose onVariant fired = %d, want 1: only entry a has any variant to visit", entriesWithVariants)
	}
}

func TestForEachStopTerminatesAllIteration(t *testing.T) {
	s := New()
	s.Insert("a")
	s.Insert("b")

	seenEntries := 0
	ends := 0

	s.ForEach(
		func(name string) Control {
			seenEntries++
			return Stop
		},
		func(addr uint64, weak bool) Control { return Continue },
		func() { ends++ },
	)

	if seenEntries != 1 {
		t.Errorf("seenEntries = %d, want 1: begin() returning Stop must halt all further iteration", seenEntries)
	}
	if ends != 1 {
		t.Errorf("end() called %d times, want 1: Stop still invokes end for the current entry", ends)
	}
}
