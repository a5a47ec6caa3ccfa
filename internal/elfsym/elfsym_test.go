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

package elfsym

import (
	"os"
	"testing"

	"cunitpp-go/internal/procmap"
	"cunitpp-go/internal/symtab"
)

func TestLoadPopulatesStoreFromRunningBinary(t *testing.T) {
	modules, err := procmap.Read(os.Getpid(), procmap.MainOnly)
	if err != nil {
		t.Fatalf("procmap.Read() error: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("len(modules) = %d, want 1", len(modules))
	}

	store := symtab.New()
	if err := Load(store, &modules[0]); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if store.Len() == 0 {
		t.Error("Load() inserted no symbols from the running test binary's own ELF image")
	}
}

func TestLoadAllStopsAtFirstError(t *testing.T) {
	bogus := []procmap.Module{
		{Path: "/nonexistent/not-a-real-file", Main: true},
		{Path: "/nonexistent/also-not-real"},
	}
	store := symtab.New()
	if err := LoadAll(store, bogus); err == nil {
		t.Error("LoadAll() with an unopenable module = nil error, want ErrElfOpen")
	}
}

func TestLoadRejectsUnopenableFile(t *testing.T) {
	store := symtab.New()
	err := Load(store, &procmap.Module{Path: "/nonexistent/not-a-real-file", Main: true})
	if err == nil {
		t.Fatal("Load() on a missing file = nil error, want ErrElfOpen")
	}
}
