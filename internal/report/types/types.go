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

// Package types is the report document shared between internal/runner
// and whichever internal/report sink a run is configured with.
package types

import "time"

// Result is one executed test's outcome, handed to a report sink
// after the runner records it.
type Result struct {
	Suite    string
	Test     string
	Passed   bool
	Reason   string
	Duration time.Duration
	RanAt    time.Time
}
