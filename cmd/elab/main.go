// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command elab type-checks programs given as YAML syntax trees and prints the type of each
// top-level binding.
//
// Usage:
//
//	elab [-config elab.yaml] [-color auto|always|never] [-v] file.yaml...
//
// Files are elaborated in order; each file sees the bindings of the files before it.
// Diagnostics are written to stderr. The exit status is 1 if any file has errors, and 2 if a
// file or the configuration cannot be read.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wdamron/elab"
	"github.com/wdamron/elab/ast/astyaml"
	"github.com/wdamron/elab/config"
	"github.com/wdamron/elab/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("elab", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML configuration file")
	color := flags.String("color", string(report.ColorAuto), "color diagnostics: auto, always or never")
	verbose := flags.Bool("v", false, "log elaboration steps to stderr")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: elab [flags] file.yaml...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	mode := report.ColorMode(*color)
	switch mode {
	case report.ColorAuto, report.ColorAlways, report.ColorNever:
	default:
		fmt.Fprintf(stderr, "elab: unknown color mode %q\n", *color)
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, "elab:", err)
			return 2
		}
		cfg = *loaded
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	log := cfg.Logger(stderr)

	ctx := elab.NewContext(cfg, elab.WithLogger(log))
	out := report.NewPrinter(stdout, report.ColorNever)
	diags := report.NewPrinter(stderr, mode)
	env := elab.NewEnv()
	status := 0
	for _, path := range flags.Args() {
		prog, err := astyaml.DecodeFile(path)
		if err != nil {
			fmt.Fprintln(stderr, "elab:", err)
			return 2
		}
		log.Debug("decoded", "file", path, "decls", len(prog.Decls))
		unit, err := ctx.Elaborate(prog, env)
		if unit == nil {
			fmt.Fprintln(stderr, "elab:", err)
			return 2
		}
		if err != nil {
			status = 1
		}
		env = unit.Env
		diags.Diagnostics(path, unit.Diagnostics)
		out.Bindings(unit.Program.Bindings)
	}
	return status
}
