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

// Package report renders the bindings and diagnostics of an elaborated program.
package report

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// IsTerminal returns true if w is a terminal which supports color. The NO_COLOR convention
// and TERM=dumb disable color.
func IsTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes bindings and diagnostics.
type Printer struct {
	w     *bufio.Writer
	color bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	color := mode == ColorAlways || (mode == ColorAuto && IsTerminal(w))
	return &Printer{w: bufio.NewWriter(w), color: color}
}

// Bindings writes one line per binding: `val name: type`.
func (p *Printer) Bindings(bindings []ir.Binding) error {
	for _, b := range bindings {
		p.w.WriteString("val ")
		p.w.WriteString(b.Name)
		p.w.WriteString(": ")
		p.w.WriteString(types.SchemeString(b.Scheme))
		p.w.WriteByte('\n')
	}
	return p.w.Flush()
}

// Diagnostics writes one line per diagnostic, prefixed with the file name when it is not empty.
func (p *Printer) Diagnostics(file string, list diag.List) error {
	for _, d := range list {
		if file != "" {
			p.w.WriteString(file)
			p.w.WriteByte(':')
		}
		if d.Span.Start.Line > 0 {
			p.w.WriteString(d.Span.Start.String())
			p.w.WriteString(": ")
		} else if file != "" {
			p.w.WriteByte(' ')
		}
		p.severity(d.Severity)
		p.w.WriteString(" [")
		p.w.WriteString(d.Kind.String())
		p.w.WriteString("]: ")
		p.w.WriteString(d.Message)
		p.w.WriteByte('\n')
	}
	return p.w.Flush()
}

// Summary writes the number of errors and warnings, if any.
func (p *Printer) Summary(list diag.List) error {
	errs := len(list.Errors())
	warnings := len(list) - errs
	if errs == 0 && warnings == 0 {
		return nil
	}
	p.w.WriteString(plural(errs, "error"))
	p.w.WriteString(", ")
	p.w.WriteString(plural(warnings, "warning"))
	p.w.WriteByte('\n')
	return p.w.Flush()
}

func (p *Printer) severity(s diag.Severity) {
	if !p.color {
		p.w.WriteString(s.String())
		return
	}
	if s == diag.Error {
		p.w.WriteString(ansiBold + ansiRed)
	} else {
		p.w.WriteString(ansiBold + ansiYellow)
	}
	p.w.WriteString(s.String())
	p.w.WriteString(ansiReset)
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
