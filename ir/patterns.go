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

package ir

import (
	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/types"
)

// Pattern is the base for all typed patterns.
type Pattern interface {
	PatternName() string
	Type() types.Type
	Loc() ast.Span
}

var (
	_ Pattern = (*Wildcard)(nil)
	_ Pattern = (*PatVar)(nil)
	_ Pattern = (*PatLiteral)(nil)
	_ Pattern = (*PatCon)(nil)
	_ Pattern = (*PatTuple)(nil)
	_ Pattern = (*PatRecord)(nil)
	_ Pattern = (*PatAs)(nil)
)

// Wildcard pattern: `_`
type Wildcard struct{ Typed }

// Variable pattern: `x`
type PatVar struct {
	Typed
	Name string
}

// Literal pattern: `10`, `"a"`
type PatLiteral struct {
	Typed
	Kind  ast.LiteralKind
	Value string
}

// Constructor pattern: `SOME p`, `nil`, `h :: t`. Arg is nil for nullary constructors.
type PatCon struct {
	Typed
	Con *types.Constructor
	Arg Pattern
}

// Tuple pattern: `(a, b)`
type PatTuple struct {
	Typed
	Elems []Pattern
}

// Record pattern: `{x = p, y, ...}`
type PatRecord struct {
	Typed
	Fields   []PatField
	Flexible bool
}

// Labeled field of a record pattern.
type PatField struct {
	Label   string
	Pattern Pattern
}

// Layered pattern: `x as p`
type PatAs struct {
	Typed
	Name    string
	Pattern Pattern
}

func (p *Wildcard) PatternName() string   { return "Wildcard" }
func (p *PatVar) PatternName() string     { return "Var" }
func (p *PatLiteral) PatternName() string { return "Literal" }
func (p *PatCon) PatternName() string     { return "Con" }
func (p *PatTuple) PatternName() string   { return "Tuple" }
func (p *PatRecord) PatternName() string  { return "Record" }
func (p *PatAs) PatternName() string      { return "As" }

// IsIrrefutable returns true if p matches every value of its type.
func IsIrrefutable(p Pattern) bool {
	switch p := p.(type) {
	case *Wildcard, *PatVar:
		return true
	case *PatAs:
		return IsIrrefutable(p.Pattern)
	case *PatTuple:
		for _, elem := range p.Elems {
			if !IsIrrefutable(elem) {
				return false
			}
		}
		return true
	case *PatRecord:
		for _, f := range p.Fields {
			if !IsIrrefutable(f.Pattern) {
				return false
			}
		}
		return true
	case *PatCon:
		dt := p.Con.Datatype
		if dt.Open || len(dt.Constructors) != 1 {
			return false
		}
		return p.Arg == nil || IsIrrefutable(p.Arg)
	}
	return false
}

// PatternVars returns the names bound by p, in order of appearance.
func PatternVars(p Pattern) []string {
	var names []string
	var visit func(p Pattern)
	visit = func(p Pattern) {
		switch p := p.(type) {
		case *PatVar:
			names = append(names, p.Name)
		case *PatAs:
			names = append(names, p.Name)
			visit(p.Pattern)
		case *PatCon:
			if p.Arg != nil {
				visit(p.Arg)
			}
		case *PatTuple:
			for _, elem := range p.Elems {
				visit(elem)
			}
		case *PatRecord:
			for _, f := range p.Fields {
				visit(f.Pattern)
			}
		}
	}
	visit(p)
	return names
}
