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

package report

import (
	"bytes"
	"testing"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

func TestBindings(t *testing.T) {
	var buf bytes.Buffer
	a := types.NewVar(0, 1)
	s := types.Generalize(0, types.NewArrow(a, a))
	err := NewPrinter(&buf, ColorNever).Bindings([]ir.Binding{
		{Name: "x", Scheme: types.Mono(types.Int)},
		{Name: "id", Scheme: s},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); out != "val x: int\nval id: 'a -> 'a\n" {
		t.Fatalf("output: %q", out)
	}
}

func TestDiagnostics(t *testing.T) {
	list := diag.List{
		diag.Errorf(diag.UnboundIdentifier, ast.Span{Start: ast.Pos{Line: 3, Col: 5}}, "Unbound identifier y"),
		diag.Warnf(diag.NonExhaustiveMatch, ast.Span{}, "Non-exhaustive match; missing: nil"),
	}
	var buf bytes.Buffer
	p := NewPrinter(&buf, ColorNever)
	if err := p.Diagnostics("prog.yaml", list); err != nil {
		t.Fatal(err)
	}
	if err := p.Summary(list); err != nil {
		t.Fatal(err)
	}
	expected := "prog.yaml:3:5: error [UnboundIdentifier]: Unbound identifier y\n" +
		"prog.yaml: warning [NonExhaustiveMatch]: Non-exhaustive match; missing: nil\n" +
		"1 error, 1 warning\n"
	if out := buf.String(); out != expected {
		t.Fatalf("output: %q", out)
	}

	buf.Reset()
	if err := NewPrinter(&buf, ColorAlways).Diagnostics("", list[:1]); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); out != "3:5: \x1b[1m\x1b[31merror\x1b[0m [UnboundIdentifier]: Unbound identifier y\n" {
		t.Fatalf("output: %q", out)
	}
}

func TestColorAutoIsOffForBuffers(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Fatalf("expected a buffer not to be a terminal")
	}
	if p := NewPrinter(&buf, ColorAuto); p.color {
		t.Fatalf("expected color to be disabled")
	}
}
