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

package ast

// Pattern is the base for all patterns.
type Pattern interface {
	PatternName() string
	Loc() Span
}

var (
	_ Pattern = (*Wildcard)(nil)
	_ Pattern = (*PatVar)(nil)
	_ Pattern = (*PatLiteral)(nil)
	_ Pattern = (*PatCon)(nil)
	_ Pattern = (*PatTuple)(nil)
	_ Pattern = (*PatRecord)(nil)
	_ Pattern = (*PatAs)(nil)
	_ Pattern = (*PatList)(nil)
	_ Pattern = (*PatConstraint)(nil)
)

// Wildcard: `_`
type Wildcard struct {
	Span
}

// Variable binding: `x`. If the name resolves to a nullary constructor, the pattern matches
// that constructor instead.
type PatVar struct {
	Span
	Name string
}

// Literal constant: `0`, `"a"`
type PatLiteral struct {
	Span
	Kind  LiteralKind
	Value string
}

// Constructor application: `SOME x`, `x :: xs`. Arg is nil for nullary constructors.
type PatCon struct {
	Span
	Name string
	Arg  Pattern
}

// Tuple: `(a, b)`
type PatTuple struct {
	Span
	Elems []Pattern
}

// Record: `{x, y = p}` or, when flexible, `{x, y, ...}`
type PatRecord struct {
	Span
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
	Span
	Name    string
	Pattern Pattern
}

// List: `[a, b]`
type PatList struct {
	Span
	Elems []Pattern
}

// Annotated pattern: `p : t`
type PatConstraint struct {
	Span
	Pattern Pattern
	Type    TypeExpr
}

func (p *Wildcard) PatternName() string      { return "Wildcard" }
func (p *PatVar) PatternName() string        { return "Var" }
func (p *PatLiteral) PatternName() string    { return "Literal" }
func (p *PatCon) PatternName() string        { return "Con" }
func (p *PatTuple) PatternName() string      { return "Tuple" }
func (p *PatRecord) PatternName() string     { return "Record" }
func (p *PatAs) PatternName() string         { return "As" }
func (p *PatList) PatternName() string       { return "List" }
func (p *PatConstraint) PatternName() string { return "Constraint" }
