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

// Package diag defines the diagnostics reported by elaboration and match compilation.
package diag

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wdamron/elab/ast"
)

// Kind classifies a diagnostic.
type Kind int

const (
	Internal Kind = iota
	UnboundIdentifier
	UnboundType
	TypeMismatch
	ConstructorMismatch
	ArityMismatch
	InfiniteType
	NonExhaustiveMatch
	RedundantClause
	InvalidPattern
)

var kindNames = [...]string{
	Internal:            "Internal",
	UnboundIdentifier:   "UnboundIdentifier",
	UnboundType:         "UnboundType",
	TypeMismatch:        "TypeMismatch",
	ConstructorMismatch: "ConstructorMismatch",
	ArityMismatch:       "ArityMismatch",
	InfiniteType:        "InfiniteType",
	NonExhaustiveMatch:  "NonExhaustiveMatch",
	RedundantClause:     "RedundantClause",
	InvalidPattern:      "InvalidPattern",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Severity of a diagnostic. Only errors fail a run.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single error or warning with its source position.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Span     ast.Span
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.Span.Start.Line > 0 {
		sb.WriteString(d.Span.Start.String())
		sb.WriteString(": ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(" [")
	sb.WriteString(d.Kind.String())
	sb.WriteString("]: ")
	sb.WriteString(d.Message)
	return sb.String()
}

// Errorf creates an error-severity diagnostic.
func Errorf(kind Kind, span ast.Span, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Severity: Error, Message: msg, Span: span}
}

// Warnf creates a warning-severity diagnostic.
func Warnf(kind Kind, span ast.Span, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Severity: Warning, Message: msg, Span: span}
}

// List is a sequence of diagnostics. A non-empty List is an error.
type List []*Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	}
	return l[0].Error() + " (and " + strconv.Itoa(len(l)-1) + " more)"
}

// Sort orders diagnostics by source position. Diagnostics at the same position keep
// their relative order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].Span.Start, l[j].Span.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// Errors returns the error-severity diagnostics of l.
func (l List) Errors() List {
	var errs List
	for _, d := range l {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	return errs
}

// HasErrors returns true if l contains an error-severity diagnostic.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err returns the error-severity diagnostics of l as an error, or nil if there are none.
func (l List) Err() error {
	if errs := l.Errors(); len(errs) > 0 {
		return errs
	}
	return nil
}
