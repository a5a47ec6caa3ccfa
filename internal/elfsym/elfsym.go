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

// Package elfsym opens each Module's on-disk ELF file and emits
// function symbols with their resolved runtime addresses into a
// symtab.Store. Grounded on internal/symbol/usymbols.go's
// getElfSymbols/loadElfCaches, generalized from "stack symbolication"
// to "test-symbol discovery," and on original_source/src/proc-info.c's
// LoadElfSection (static+dynsym for the main module, dynsym-only
// elsewhere).
package elfsym

import (
	debugelf "debug/elf"

	"github.com/pkg/errors"

	"cunitpp-go/internal/log"
	"cunitpp-go/internal/namecodec"
	"cunitpp-go/internal/procmap"
	"cunitpp-go/internal/symtab"
)

// AllowWeak gates inclusion of ELF weak-binding symbols, mirroring the
// original's CONFIG_ALLOW_WEAK_FUNCTION compile-time switch
// (SPEC_FULL.md §4.2). Off by default: strong-only scanning is the
// zero-configuration path.
var AllowWeak = false

// ErrElfOpen and ErrElfFormat are spec.md §7's ElfOpen/ElfFormat error
// kinds: both are fatal for engine initialization.
var (
	ErrElfOpen   = errors.New("elfsym: cannot open module file")
	ErrElfFormat = errors.New("elfsym: module has no usable symbol table")
)

// Load opens module's on-disk file and inserts every retained function
// symbol into store. For the main module both the static and dynamic
// symbol tables are consulted; for a shared library only the dynamic
// table is, since stripped shared libraries often lack the static one.
func Load(store *symtab.Store, module *procmap.Module) error {
	f, err := debugelf.Open(module.Path)
	if err != nil {
		return errors.Wrapf(ErrElfOpen, "%s: %v", module.Path, err)
	}
	defer f.Close()

	var syms []debugelf.Symbol
	dynsyms, dynErr := f.DynamicSymbols()
	if dynErr == nil {
		syms = append(syms, dynsyms...)
	} else {
		log.Debugf("elfsym: %s has no dynamic symbol table: %v", module.Path, dynErr)
	}

	if module.Main {
		statsyms, statErr := f.Symbols()
		if statErr == nil {
			syms = append(syms, statsyms...)
		} else {
			log.Debugf("elfsym: %s has no static symbol table: %v", module.Path, statErr)
		}
	}

	if len(syms) == 0 {
		return errors.Wrapf(ErrElfFormat, "%s", module.Path)
	}

	var offset uint64
	if !module.Main {
		offset = module.LoadBase
	}

	for _, sym := range syms {
		if sym.Value == 0 {
			continue
		}
		if debugelf.ST_TYPE(sym.Info) != debugelf.STT_FUNC {
			continue
		}
		binding := debugelf.ST_BIND(sym.Info)
		if binding != debugelf.STB_GLOBAL && binding != debugelf.STB_WEAK {
			continue // local symbols and marker bindings are never tests
		}

		weak := binding == debugelf.STB_WEAK
		if weak && !AllowWeak {
			continue
		}

		// Keys are stored without the Go package qualifier, so a bare
		// namecodec.Encode result (as RunTestList builds) finds them.
		entry := store.Insert(namecodec.StripQualifier(sym.Name))
		b := symtab.Strong
		if weak {
			b = symtab.Weak
		}
		store.AppendVariant(entry, symtab.Variant{
			Address: sym.Value + offset,
			Binding: b,
			Module:  module,
		})
	}

	return nil
}

// LoadAll loads every module in order, main module first, failing
// fast on the first error (both ElfOpen and ElfFormat are fatal for
// the whole engine per spec.md §4.2 — other modules are not
// attempted).
func LoadAll(store *symtab.Store, modules []procmap.Module) error {
	for i := range modules {
		if err := Load(store, &modules[i]); err != nil {
			return err
		}
	}
	return nil
}
