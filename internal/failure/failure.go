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

// Package failure is the process-wide recovery point that transports
// an assertion failure inside a test body back to the runner's catch
// site. It is the Go re-architecture of the original's setjmp/longjmp
// pair: a sentinel panic value caught by a single recover() at the
// runner's anchor.
//
// Only one test body runs at a time (the engine is single-threaded),
// so the channel carries no per-test identity.
package failure

// signal is the sentinel panic payload. Using an unexported type means
// recover() can tell this panic apart from an unrelated one raised by
// broken test code, and re-panic in that case instead of swallowing it.
type signal struct {
	reason string
}

// Raise transfers control back to the nearest Catch anchor. It must
// only be called from within a test body invoked through Catch.
func Raise(reason string) {
	panic(signal{reason: reason})
}

// Catch installs a recovery anchor around fn and reports whether fn
// raised on the channel. A panic that is not this package's own
// sentinel is re-raised unchanged — the engine never masks a real
// crash as a test failure.
func Catch(fn func()) (raised bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(signal); ok {
				raised = true
				reason = s.reason
				return
			}
			panic(r)
		}
	}()
	fn()
	return false, ""
}
