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

// Package ir defines the typed, match-resolved intermediate representation produced by
// elaboration. Every expression and pattern carries its resolved type, and every
// clause-bearing node carries a compiled decision procedure.
package ir

import (
	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/types"
)

// Typed is embedded by all expressions and patterns.
type Typed struct {
	ast.Span
	T types.Type
}

// Type returns the resolved type of the node.
func (n *Typed) Type() types.Type { return n.T }

// Expr is the base for all typed expressions.
type Expr interface {
	ExprName() string
	Type() types.Type
	Loc() ast.Span
}

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Fn)(nil)
	_ Expr = (*Case)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Selector)(nil)
	_ Expr = (*Seq)(nil)
	_ Expr = (*Raise)(nil)
	_ Expr = (*Handle)(nil)
)

// Variable or constructor reference. Con is set for constructors (including exceptions).
type Var struct {
	Typed
	Name string
	Con  *types.Constructor
}

// Literal constant.
type Literal struct {
	Typed
	Kind  ast.LiteralKind
	Value string
}

// Application: `f x`
type App struct {
	Typed
	Func Expr
	Arg  Expr
}

// Single-parameter function. Multi-rule functions bind their argument to Param and
// match on it within Body.
type Fn struct {
	Typed
	Param string
	Body  Expr
}

// Case analysis over ordered rules.
type Case struct {
	Typed
	Scrutinee Expr
	Rules     []Rule
	Match     *Match
}

// Rule of a clause-bearing node. Guard may be nil.
type Rule struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// Local declarations: `let d1; d2 in e end`
type Let struct {
	Typed
	Decls []Decl
	Body  Expr
}

// Tuple: `(a, b)`
type Tuple struct {
	Typed
	Elems []Expr
}

// Record: `{x = 1, y = true}`
type Record struct {
	Typed
	Fields []Field
}

// Labeled field of a record expression.
type Field struct {
	Label string
	Value Expr
}

// Field selector function: `#x`
type Selector struct {
	Typed
	Label string
}

// Sequence: `(e1; e2)`. The type is the type of the last expression.
type Seq struct {
	Typed
	Exprs []Expr
}

// Raise an exception.
type Raise struct {
	Typed
	Expr Expr
}

// Exception handler. Unmatched exceptions are re-raised, so Match is never required to be
// exhaustive.
type Handle struct {
	Typed
	Expr  Expr
	Rules []Rule
	Match *Match
}

func (e *Var) ExprName() string      { return "Var" }
func (e *Literal) ExprName() string  { return "Literal" }
func (e *App) ExprName() string      { return "App" }
func (e *Fn) ExprName() string       { return "Fn" }
func (e *Case) ExprName() string     { return "Case" }
func (e *Let) ExprName() string      { return "Let" }
func (e *Tuple) ExprName() string    { return "Tuple" }
func (e *Record) ExprName() string   { return "Record" }
func (e *Selector) ExprName() string { return "Selector" }
func (e *Seq) ExprName() string      { return "Seq" }
func (e *Raise) ExprName() string    { return "Raise" }
func (e *Handle) ExprName() string   { return "Handle" }

// Match is the result of compiling the patterns of a clause-bearing node.
type Match struct {
	Decision   Decision
	Exhaustive bool
	// Indexes of rules which can never be selected.
	Unreachable []int
	// Example values not matched by any rule, when the match is not exhaustive.
	Missing []string
}

// Decl is the base for all typed declarations.
type Decl interface {
	DeclName() string
	Loc() ast.Span
}

var (
	_ Decl = (*Val)(nil)
	_ Decl = (*Fun)(nil)
	_ Decl = (*Datatype)(nil)
	_ Decl = (*Exception)(nil)
	_ Decl = (*Local)(nil)
)

// Value binding: `val p = e`. Match decides the pattern against the value of Expr.
type Val struct {
	ast.Span
	Pattern  Pattern
	Expr     Expr
	Match    *Match
	Bindings []Binding
}

// Recursive function bindings: `fun f ... and g ...` or `val rec f = fn ...`
type Fun struct {
	ast.Span
	Bindings []FunBinding
}

// A single function of a recursive group.
type FunBinding struct {
	Name   string
	Scheme *types.Scheme
	Fn     Expr
}

// Datatype declaration.
type Datatype struct {
	ast.Span
	Datatypes []*types.Datatype
}

// Exception declaration; each constructor extends exn.
type Exception struct {
	ast.Span
	Constructors []*types.Constructor
}

// Local declarations. Only the bindings of Body are visible afterwards.
type Local struct {
	ast.Span
	Decls []Decl
	Body  []Decl
}

func (d *Val) DeclName() string       { return "Val" }
func (d *Fun) DeclName() string       { return "Fun" }
func (d *Datatype) DeclName() string  { return "Datatype" }
func (d *Exception) DeclName() string { return "Exception" }
func (d *Local) DeclName() string     { return "Local" }

// Binding of a name to a type scheme.
type Binding struct {
	Name   string
	Scheme *types.Scheme
}

// Program is the typed output of elaboration.
type Program struct {
	Decls []Decl
	// Top-level value bindings in declaration order. A name bound more than once
	// appears once per binding.
	Bindings []Binding
}
