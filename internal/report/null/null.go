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

// Package null is the discard report sink: the default when a run has
// no external reporting configured, mirroring an internal/storage
// null client's shape, adapted from uploading tracer documents to
// discarding test Results.
package null

import "cunitpp-go/internal/report/types"

// ReportClient discards every Result it is given. A nil receiver is
// valid and also a no-op, the same nil-receiver tolerance storage
// clients in this style carry.
type ReportClient struct{}

// Write discards result. It never mutates its argument and never
// returns an error.
func (c *ReportClient) Write(result *types.Result) error {
	return nil
}
