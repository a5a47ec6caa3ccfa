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

// Package namecodec encodes and decodes the linker symbol naming
// convention that maps (role, suite, test-name) to a compiled symbol
// name, and back. Grounded on original_source/src/cunitpp.c's
// ParseSymbolName and CUNIT_TEST_NAME macro, generalized from a
// single "simple test" role to the four-role grammar spec.md §6
// defines.
package namecodec

import (
	"fmt"
	"strings"
)

// Prefix, role characters and separator are compatibility-critical:
// changing any of them breaks every already-compiled test binary.
const (
	Prefix    = "__CUnitPP_"
	Separator = "____"
)

// Role is the tagged enumeration carried as the single meta-character
// immediately following Prefix.
type Role byte

const (
	SimpleTest       Role = 'T'
	FixtureTest      Role = 'F'
	FixtureSetup     Role = 'S'
	FixtureTeardown  Role = 'D'
	roleInvalid      Role = 0
)

func (r Role) Valid() bool {
	switch r {
	case SimpleTest, FixtureTest, FixtureSetup, FixtureTeardown:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case SimpleTest:
		return "SimpleTest"
	case FixtureTest:
		return "FixtureTest"
	case FixtureSetup:
		return "FixtureSetup"
	case FixtureTeardown:
		return "FixtureTeardown"
	default:
		return fmt.Sprintf("Role(%q)", byte(r))
	}
}

// Decoded is the structured form of one encoded symbol name.
type Decoded struct {
	Role  Role
	Suite string
	Name  string
}

// Encode is the strict inverse of Decode: it builds the bare
// (unqualified) linker symbol name for (role, suite, name). Used by
// the --test-list path to build a Symbol Store lookup key, and by
// test authors who want to compute their own symbol name
// programmatically instead of hand-typing it.
func Encode(role Role, suite, name string) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("namecodec: invalid role %q", byte(role))
	}
	if suite == "" {
		return "", fmt.Errorf("namecodec: empty suite name")
	}
	if strings.Contains(suite, Separator) {
		return "", fmt.Errorf("namecodec: suite name %q contains separator", suite)
	}
	return Prefix + string(role) + suite + Separator + name, nil
}

// Decode parses a bare (already package-unqualified — see
// SPEC_FULL.md §4.4a) linker symbol name. It rejects any name not
// beginning with Prefix, whose character immediately following the
// prefix is not one of the four role characters, or whose remainder
// does not contain Separator exactly once.
func Decode(raw string) (Decoded, bool) {
	if !strings.HasPrefix(raw, Prefix) {
		return Decoded{}, false
	}
	rest := raw[len(Prefix):]
	if len(rest) == 0 {
		return Decoded{}, false
	}

	role := Role(rest[0])
	if !role.Valid() {
		return Decoded{}, false
	}
	rest = rest[1:]

	first := strings.Index(rest, Separator)
	if first < 0 {
		return Decoded{}, false
	}
	// Reject more than one occurrence of the separator: a suite name
	// containing the literal separator would make the split ambiguous.
	if strings.Index(rest[first+len(Separator):], Separator) >= 0 {
		return Decoded{}, false
	}

	suite := rest[:first]
	name := rest[first+len(Separator):]
	if suite == "" {
		return Decoded{}, false
	}

	return Decoded{Role: role, Suite: suite, Name: name}, true
}

// StripQualifier strips a Go-compiled symbol name down to the bare
// identifier the rest of this package expects, per SPEC_FULL.md
// §4.4a: Go emits "<import/path>.<Identifier>", and import paths may
// themselves contain dots, so the split must anchor on the *last* dot
// in the string rather than the first.
func StripQualifier(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}
