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

// Package termcolor renders the runner's status banners in color when
// attached to a terminal, and in plain text otherwise.
package termcolor

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	okColor      = color.New(color.FgGreen)
	failColor    = color.New(color.FgRed)
	suiteColor   = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed, color.Bold)
	runColor     = color.New(color.FgYellow)
	isTerminalFn = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
)

func write(w io.Writer, c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if isTerminalFn(w) {
		c.Fprintln(w, msg)
		return
	}
	fmt.Fprintln(w, msg)
}

// Run prints a "[ RUN      ] Suite.Test" banner.
func Run(w io.Writer, format string, args ...any) { write(w, runColor, format, args...) }

// OK prints a "[      OK ] Suite.Test" banner.
func OK(w io.Writer, format string, args ...any) { write(w, okColor, format, args...) }

// Fail prints a "[    FAIL ] Suite.Test" banner.
func Fail(w io.Writer, format string, args ...any) { write(w, failColor, format, args...) }

// Suite prints a "[ SUITE(T) ] Name" banner.
func Suite(w io.Writer, format string, args ...any) { write(w, suiteColor, format, args...) }

// Error prints the fatal "[ ERROR ]" banner.
func Error(w io.Writer, format string, args ...any) { write(w, errorColor, format, args...) }
