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

package procmap

import (
	"os"
	"testing"
)

func TestReadMainOnlyFindsRunningBinary(t *testing.T) {
	modules, err := Read(os.Getpid(), MainOnly)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("len(modules) = %d, want 1 in MainOnly mode", len(modules))
	}
	if !modules[0].Main {
		t.Error("modules[0].Main = false, want true")
	}
	if modules[0].Path == "" {
		t.Error("modules[0].Path is empty")
	}
}

func TestReadAllIncludesSharedLibraries(t *testing.T) {
	modules, err := Read(os.Getpid(), All)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(modules) < 1 {
		t.Fatalf("len(modules) = %d, want at least 1", len(modules))
	}
	if !modules[0].Main {
		t.Error("modules[0].Main = false, want true: the main image must sort first")
	}
	for _, m := range modules[1:] {
		if m.Main {
			t.Errorf("module %q reported Main=true, want only the first module to be Main", m.Path)
		}
	}
}

func TestReadDeduplicatesMultiRegionFiles(t *testing.T) {
	modules, err := Read(os.Getpid(), All)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	seen := make(map[string]int)
	for _, m := range modules {
		seen[m.Path]++
	}
	for path, count := range seen {
		if count > 1 {
			t.Errorf("module %q appeared %d times, want at most once", path, count)
		}
	}
}

func TestReadUnknownPidFails(t *testing.T) {
	if _, err := Read(-1, MainOnly); err == nil {
		t.Error("Read(-1, ...) = nil error, want ErrMapOpen")
	}
}
