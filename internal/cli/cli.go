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

// Package cli is the thin adapter between urfave/cli/v2's parsed flags
// and internal/runner.Options, per SPEC_FULL.md §4.13. It owns none of
// the engine's semantics; it only translates --module-list/--test-list/
// --option into the values internal/runner and internal/procmap expect.
package cli

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"cunitpp-go/internal/procmap"
)

const (
	flagListTest    = "list-test"
	flagModuleList  = "module-list"
	flagTestList    = "test-list"
	flagOption      = "option"
	flagConfig      = "config"
	flagMetrics     = "metrics-addr"
	flagLogFile     = "log-file"
	flagDebug       = "debug"
	flagTimeoutFile = "default-timeout-file"
)

// Parsed is the fully-decoded command line, ready to drive a run.
type Parsed struct {
	ListOnly     bool
	ModuleFilter []string
	TestList     []string
	Mode         procmap.Mode
	ConfigPath   string
	MetricsAddr  string
	LogFile      string
	Debug        bool
	TimeoutFile  string
}

// Flags is the flag surface spec.md §6 names, built once and reused by
// NewApp.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  flagListTest,
			Usage: "print the discovered plan without executing it",
		},
		&cli.StringFlag{
			Name:  flagModuleList,
			Usage: "restrict discovery to these suite names, comma or semicolon delimited",
		},
		&cli.StringFlag{
			Name:  flagTestList,
			Usage: "run only these Suite.Test pairs, comma delimited",
		},
		&cli.StringFlag{
			Name:  flagOption,
			Value: "Main",
			Usage: "Main = scan only the main executable, All = also scan shared libraries",
		},
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "path to an optional TOML config file",
		},
		&cli.StringFlag{
			Name:  flagMetrics,
			Usage: "if set, serve Prometheus /metrics on this address for the run's duration",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "rotating log file path; stderr logging always stays on",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug-level logging",
		},
		&cli.StringFlag{
			Name:  flagTimeoutFile,
			Usage: "path to a sysfs-style file holding one blanket suite timeout hint in milliseconds",
		},
	}
}

// NewApp builds the urfave/cli/v2 application. action is invoked once
// flags are parsed into a *Parsed; its error return becomes the
// process's BadCLI-equivalent failure (spec.md §7) when non-nil.
func NewApp(name, usage string, action func(*Parsed) error) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.Flags = Flags()
	app.Action = func(c *cli.Context) error {
		p, err := parse(c)
		if err != nil {
			return err
		}
		return action(p)
	}
	return app
}

func parse(c *cli.Context) (*Parsed, error) {
	mode, err := parseMode(c.String(flagOption))
	if err != nil {
		return nil, err
	}

	return &Parsed{
		ListOnly:     c.Bool(flagListTest),
		ModuleFilter: splitList(c.String(flagModuleList)),
		TestList:     splitList(c.String(flagTestList)),
		Mode:         mode,
		ConfigPath:   c.String(flagConfig),
		MetricsAddr:  c.String(flagMetrics),
		LogFile:      c.String(flagLogFile),
		Debug:        c.Bool(flagDebug),
		TimeoutFile:  c.String(flagTimeoutFile),
	}, nil
}

func parseMode(raw string) (procmap.Mode, error) {
	switch raw {
	case "", "Main":
		return procmap.MainOnly, nil
	case "All":
		return procmap.All, nil
	default:
		return procmap.MainOnly, errors.New("--option must be Main or All")
	}
}

// splitList splits on comma or semicolon and drops empty fields, per
// spec.md §6's "comma/semicolon delimited" module-list grammar.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
