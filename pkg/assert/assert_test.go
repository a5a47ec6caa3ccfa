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

package assert

import (
	"testing"

	"cunitpp-go/internal/failure"
)

func TestEQ(t *testing.T) {
	if raised, _ := failure.Catch(func() { EQ(1, 1) }); raised {
		t.Error("EQ(1, 1) raised, want no failure")
	}
	if raised, _ := failure.Catch(func() { EQ(1, 0) }); !raised {
		t.Error("EQ(1, 0) did not raise, want failure")
	}
}

func TestNE(t *testing.T) {
	if raised, _ := failure.Catch(func() { NE(1, 0) }); raised {
		t.Error("NE(1, 0) raised, want no failure")
	}
	if raised, _ := failure.Catch(func() { NE(1, 1) }); !raised {
		t.Error("NE(1, 1) did not raise, want failure")
	}
}

func TestOrderedComparisons(t *testing.T) {
	tests := []struct {
		name   string
		fn     func()
		wantOK bool
	}{
		{"LT pass", func() { LT(1, 2) }, true},
		{"LT fail", func() { LT(2, 1) }, false},
		{"LE pass equal", func() { LE(1, 1) }, true},
		{"GT pass", func() { GT(2, 1) }, true},
		{"GT fail", func() { GT(1, 1) }, false},
		{"GE pass equal", func() { GE(1, 1) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raised, _ := failure.Catch(tt.fn)
			if raised == tt.wantOK {
				t.Errorf("raised = %v, want %v", raised, !tt.wantOK)
			}
		})
	}
}

func TestStringComparisons(t *testing.T) {
	if raised, _ := failure.Catch(func() { StrEQ("a", "a") }); raised {
		t.Error("StrEQ(a, a) raised, want no failure")
	}
	if raised, _ := failure.Catch(func() { StrEQ("a", "b") }); !raised {
		t.Error("StrEQ(a, b) did not raise, want failure")
	}
	if raised, _ := failure.Catch(func() { StrLT("a", "b") }); raised {
		t.Error("StrLT(a, b) raised, want no failure")
	}
}

func TestTrueFalse(t *testing.T) {
	if raised, _ := failure.Catch(func() { True(true) }); raised {
		t.Error("True(true) raised, want no failure")
	}
	if raised, _ := failure.Catch(func() { True(false) }); !raised {
		t.Error("True(false) did not raise, want failure")
	}
	if raised, _ := failure.Catch(func() { False(false) }); raised {
		t.Error("False(false) raised, want no failure")
	}
	if raised, _ := failure.Catch(func() { False(true) }); !raised {
		t.Error("False(true) did not raise, want failure")
	}
}

func TestPinRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pin(nil) did not panic")
		}
	}()
	Pin(nil)
}

func TestPinAcceptsFunc(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Pin(func) panicked: %v", r)
		}
	}()
	Pin(func() {})
}

func TestFailReportsDiagnosticReason(t *testing.T) {
	_, reason := failure.Catch(func() { EQ(1, 2) })
	if reason == "" {
		t.Error("reason is empty, want a diagnostic message")
	}
}
