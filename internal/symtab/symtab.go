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

// Package symtab is the open-addressed symbol hash table discovered
// test symbols are inserted into and looked up from. Grounded on
// original_source/src/proc-info.c's SymbolEntry / _SymbolFindEntry /
// _SymbolRehash / ForeachSymbol family, with the original's intrusive
// SymbolInfo chain replaced by a plain []Variant slice per entry
// (spec.md §9 explicitly allows this substitution).
package symtab

import "cunitpp-go/internal/procmap"

const initialCapacity = 1024

// Binding mirrors the ELF symbol binding that produced a Variant.
type Binding int

const (
	Strong Binding = iota
	Weak
)

// Variant is one occurrence of a function symbol in one module.
type Variant struct {
	Address uint64
	Binding Binding
	Module  *procmap.Module
}

// Entry aggregates all variants sharing a name.
type Entry struct {
	name     string
	hash     uint64
	next     int // chain index to the next colliding cell, -1 if none
	Variants []Variant
}

// Name returns the symbol name the entry was inserted under.
func (e *Entry) Name() string { return e.name }

// FindStrong returns the address of the first strong variant in the
// entry's variant list, or (0, false) if none exists.
func (e *Entry) FindStrong() (uint64, bool) {
	for _, v := range e.Variants {
		if v.Binding == Strong {
			return v.Address, true
		}
	}
	return 0, false
}

// Store is the open-addressed hash table of Entries.
type Store struct {
	cells []cell
	mask  uint64
	size  int // live count
}

type cell struct {
	used  bool
	entry Entry
}

// New creates an empty Store with an initial power-of-two capacity.
func New() *Store {
	return &Store{
		cells: make([]cell, initialCapacity),
		mask:  initialCapacity - 1,
	}
}

// Len reports the live entry count.
func (s *Store) Len() int { return s.size }

func hashName(name string) uint64 {
	// A simple mixing loop over the name bytes, deterministic within
	// one process lifetime; spec.md §4.3 explicitly does not make the
	// exact function part of the external contract. Shaped after
	// original_source/src/proc-info.c's StrHash.
	var h uint64 = 17771
	for i := 0; i < len(name); i++ {
		h = h ^ ((h << 5) + (h >> 2) + uint64(name[i]))
	}
	return h
}

// homeIndex resolves the chain starting at name's home slot, returning
// the cell index and whether an entry with that exact name was found.
func (s *Store) homeIndex(name string, hash uint64) (idx int, found bool) {
	idx = int(hash & s.mask)
	if !s.cells[idx].used {
		return idx, false
	}
	for {
		c := &s.cells[idx]
		if c.entry.hash == hash && c.entry.name == name {
			return idx, true
		}
		if c.entry.next < 0 {
			return idx, false
		}
		idx = c.entry.next
	}
}

// Insert returns the existing entry for name if present, otherwise
// allocates a slot, links it into the chain at its home position, and
// doubles the table first if the load factor bound would be exceeded.
func (s *Store) Insert(name string) *Entry {
	if s.size >= len(s.cells)/2 {
		s.rehash()
	}

	hash := hashName(name)
	idx, found := s.homeIndex(name, hash)
	if found {
		return &s.cells[idx].entry
	}

	if s.cells[idx].used {
		// idx is the tail of an existing chain (home occupied by a
		// different name); linear-probe for an empty slot and link it.
		tail := idx
		probe := hash
		for s.cells[int(probe&s.mask)].used {
			probe++
		}
		newIdx := int(probe & s.mask)
		s.cells[tail].entry.next = newIdx
		idx = newIdx
	}

	s.cells[idx] = cell{
		used: true,
		entry: Entry{
			name: name,
			hash: hash,
			next: -1,
		},
	}
	s.size++
	return &s.cells[idx].entry
}

// Find follows the chain at name's home position, returning nil if no
// entry with that name exists.
func (s *Store) Find(name string) *Entry {
	hash := hashName(name)
	idx, found := s.homeIndex(name, hash)
	if !found {
		return nil
	}
	return &s.cells[idx].entry
}

// FindStrong returns the address of name's first strong variant.
func (s *Store) FindStrong(name string) (uint64, bool) {
	e := s.Find(name)
	if e == nil {
		return 0, false
	}
	return e.FindStrong()
}

// AppendVariant pushes a variant onto entry's list in arrival order.
func (s *Store) AppendVariant(e *Entry, v Variant) {
	e.Variants = append(e.Variants, v)
}

func (s *Store) rehash() {
	old := s.cells
	newCap := len(old) * 2
	s.cells = make([]cell, newCap)
	s.mask = uint64(newCap) - 1
	s.size = 0

	for i := range old {
		if !old[i].used {
			continue
		}
		e := old[i].entry
		idx, found := s.homeIndex(e.name, e.hash)
		if found {
			continue // shouldn't happen: names are unique in old table
		}
		if s.cells[idx].used {
			tail := idx
			probe := e.hash
			for s.cells[int(probe&s.mask)].used {
				probe++
			}
			newIdx := int(probe & s.mask)
			s.cells[tail].entry.next = newIdx
			idx = newIdx
		}
		s.cells[idx] = cell{used: true, entry: Entry{
			name:     e.name,
			hash:     e.hash,
			next:     -1,
			Variants: e.Variants,
		}}
		s.size++
	}
}

// Control codes returned by the ForEach callbacks.
type Control int

const (
	// Continue proceeds to the next variant, or the next entry once
	// variant iteration for the current entry completes.
	Continue Control = iota
	// Break stops iterating the current entry (its End callback still
	// fires) and moves on to the next entry in storage order.
	Break
	// Stop terminates all iteration immediately after invoking End for
	// the current entry.
	Stop
)

// ForEach iterates the table in storage order. For each live entry,
// begin(name) is called first; depending on its return code iteration
// either stops for this entry (Break), terminates entirely (Stop,
// after invoking end), or proceeds to call onVariant(addr, weak) for
// each variant, which may return the same three codes. end() is
// invoked exactly once per entry after variant iteration completes,
// regardless of how it completed. This mirrors spec.md §4.3/§9's
// begin/variant/end callback seam exactly.
func (s *Store) ForEach(begin func(name string) Control, onVariant func(addr uint64, weak bool) Control, end func()) {
	for i := range s.cells {
		if !s.cells[i].used {
			continue
		}
		e := &s.cells[i].entry

		switch begin(e.name) {
		case Stop:
			end()
			return
		case Break:
			end()
			continue
		}

		stopped := false
		for _, v := range e.Variants {
			ctrl := onVariant(v.Address, v.Binding == Weak)
			if ctrl == Stop {
				stopped = true
			}
			if ctrl != Continue {
				break
			}
		}
		end()
		if stopped {
			return
		}
	}
}
