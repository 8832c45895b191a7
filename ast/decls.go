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

// TypeExpr is the base for all type expressions within annotations and declarations.
type TypeExpr interface {
	TypeExprName() string
	Loc() Span
}

var (
	_ TypeExpr = (*TyVar)(nil)
	_ TypeExpr = (*TyCon)(nil)
	_ TypeExpr = (*TyArrow)(nil)
	_ TypeExpr = (*TyTuple)(nil)
	_ TypeExpr = (*TyRecord)(nil)
)

// Type variable: `'a`. Name includes the leading quote.
type TyVar struct {
	Span
	Name string
}

// Type constructor application: `int`, `'a list`, `(int, string) pair`
type TyCon struct {
	Span
	Name string
	Args []TypeExpr
}

// Function type: `t1 -> t2`
type TyArrow struct {
	Span
	Arg    TypeExpr
	Return TypeExpr
}

// Product type: `t1 * t2`
type TyTuple struct {
	Span
	Elems []TypeExpr
}

// Record type: `{x: int, y: bool}`. Record type expressions are always rigid.
type TyRecord struct {
	Span
	Fields []TyField
}

// Labeled field of a record type.
type TyField struct {
	Label string
	Type  TypeExpr
}

func (t *TyVar) TypeExprName() string    { return "Var" }
func (t *TyCon) TypeExprName() string    { return "Con" }
func (t *TyArrow) TypeExprName() string  { return "Arrow" }
func (t *TyTuple) TypeExprName() string  { return "Tuple" }
func (t *TyRecord) TypeExprName() string { return "Record" }

// Decl is the base for all declarations.
type Decl interface {
	DeclName() string
	Loc() Span
}

var (
	_ Decl = (*Val)(nil)
	_ Decl = (*Fun)(nil)
	_ Decl = (*Datatype)(nil)
	_ Decl = (*TypeAlias)(nil)
	_ Decl = (*Exception)(nil)
	_ Decl = (*Local)(nil)
)

// Value binding: `val p = e`, or `val rec f = fn ...` when Rec is set.
type Val struct {
	Span
	Rec     bool
	Pattern Pattern
	Expr    Expr
}

// Function declaration: `fun f p1 p2 = e1 | f q1 q2 = e2 and g ...`
type Fun struct {
	Span
	Bindings []FunBinding
}

// A single function within a function declaration.
type FunBinding struct {
	Span
	Name    string
	Clauses []FunClause
}

// Clause of a function: curried parameter patterns, an optional result annotation, and a body.
type FunClause struct {
	Span
	Params []Pattern
	Result TypeExpr
	Body   Expr
}

// Datatype declaration: `datatype 'a tree = Leaf | Node of 'a tree * 'a * 'a tree and ...`
type Datatype struct {
	Span
	Bindings []DatatypeBinding
}

// A single datatype within a datatype declaration.
type DatatypeBinding struct {
	Span
	Params       []string
	Name         string
	Constructors []ConBinding
}

// Constructor of a datatype. Arg is nil for nullary constructors.
type ConBinding struct {
	Span
	Name string
	Arg  TypeExpr
}

// Type abbreviation: `type 'a pair = 'a * 'a`
type TypeAlias struct {
	Span
	Params []string
	Name   string
	Type   TypeExpr
}

// Exception declaration: `exception Fail of string and Empty`
type Exception struct {
	Span
	Bindings []ConBinding
}

// Local declarations: `local d1 in d2 end`. Only the bindings of Body are visible afterwards.
type Local struct {
	Span
	Decls []Decl
	Body  []Decl
}

func (d *Val) DeclName() string       { return "Val" }
func (d *Fun) DeclName() string       { return "Fun" }
func (d *Datatype) DeclName() string  { return "Datatype" }
func (d *TypeAlias) DeclName() string { return "TypeAlias" }
func (d *Exception) DeclName() string { return "Exception" }
func (d *Local) DeclName() string     { return "Local" }

// Program is a sequence of top-level declarations. Declarations may only reference
// earlier declarations.
type Program struct {
	Decls []Decl
}
