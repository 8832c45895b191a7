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

import (
	"strconv"
)

// Pos is a position within a source file.
type Pos struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

func (p Pos) String() string { return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col) }

// Span is the source range of a syntax node. Nodes embed their span.
type Span struct {
	Start Pos `yaml:"start"`
	End   Pos `yaml:"end"`
}

// Loc returns the source range of a node.
func (s Span) Loc() Span { return s }

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	Loc() Span
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Fn)(nil)
	_ Expr = (*Case)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Selector)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*Seq)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Andalso)(nil)
	_ Expr = (*Orelse)(nil)
	_ Expr = (*Raise)(nil)
	_ Expr = (*Handle)(nil)
	_ Expr = (*Constraint)(nil)
)

// Kind of literal constant.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	RealLit
	StringLit
	CharLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case RealLit:
		return "real"
	case StringLit:
		return "string"
	case CharLit:
		return "char"
	}
	return "unknown"
}

// Literal constant: `10`, `1.5`, `"hello"`, `#"c"`
type Literal struct {
	Span
	Kind LiteralKind
	// Value is the literal's source text, without quotes.
	Value string
}

// Variable or constructor reference: `x`, `SOME`, `op +`
type Var struct {
	Span
	Name string
}

// Application: `f x`
type App struct {
	Span
	Func Expr
	Arg  Expr
}

// Anonymous function: `fn p1 => e1 | p2 => e2`
type Fn struct {
	Span
	Rules []Rule
}

// Case analysis: `case e of p1 => e1 | p2 => e2`
type Case struct {
	Span
	Scrutinee Expr
	Rules     []Rule
}

// Rule within a clause-bearing expression: `p if guard => body`. Guard may be nil.
type Rule struct {
	Span
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// Local declarations: `let d1; d2 in e end`
type Let struct {
	Span
	Decls []Decl
	Body  Expr
}

// Tuple: `(a, b)`. The empty tuple is `()`.
type Tuple struct {
	Span
	Elems []Expr
}

// Record: `{x = 1, y = true}`
type Record struct {
	Span
	Fields []Field
}

// Labeled field of a record expression.
type Field struct {
	Label string
	Value Expr
}

// Field selector function: `#x`
type Selector struct {
	Span
	Label string
}

// List: `[a, b, c]`
type List struct {
	Span
	Elems []Expr
}

// Sequence: `(e1; e2; e3)`
type Seq struct {
	Span
	Exprs []Expr
}

// Conditional: `if c then a else b`
type If struct {
	Span
	Cond Expr
	Then Expr
	Else Expr
}

// Short-circuit conjunction: `a andalso b`
type Andalso struct {
	Span
	Left  Expr
	Right Expr
}

// Short-circuit disjunction: `a orelse b`
type Orelse struct {
	Span
	Left  Expr
	Right Expr
}

// Raise an exception: `raise e`
type Raise struct {
	Span
	Expr Expr
}

// Exception handler: `e handle p1 => e1 | p2 => e2`
type Handle struct {
	Span
	Expr  Expr
	Rules []Rule
}

// Type annotation: `e : t`
type Constraint struct {
	Span
	Expr Expr
	Type TypeExpr
}

func (e *Literal) ExprName() string    { return "Literal" }
func (e *Var) ExprName() string        { return "Var" }
func (e *App) ExprName() string        { return "App" }
func (e *Fn) ExprName() string         { return "Fn" }
func (e *Case) ExprName() string       { return "Case" }
func (e *Let) ExprName() string        { return "Let" }
func (e *Tuple) ExprName() string      { return "Tuple" }
func (e *Record) ExprName() string     { return "Record" }
func (e *Selector) ExprName() string   { return "Selector" }
func (e *List) ExprName() string       { return "List" }
func (e *Seq) ExprName() string        { return "Seq" }
func (e *If) ExprName() string         { return "If" }
func (e *Andalso) ExprName() string    { return "Andalso" }
func (e *Orelse) ExprName() string     { return "Orelse" }
func (e *Raise) ExprName() string      { return "Raise" }
func (e *Handle) ExprName() string     { return "Handle" }
func (e *Constraint) ExprName() string { return "Constraint" }
