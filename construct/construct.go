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

// Package construct provides shorthand constructors for syntax trees.
package construct

import (
	"strconv"

	"github.com/wdamron/elab/ast"
)

// Expressions

// Integer literal: `10`
func Int(v int) *ast.Literal { return &ast.Literal{Kind: ast.IntLit, Value: strconv.Itoa(v)} }

// Real literal: `1.5`
func Real(v string) *ast.Literal { return &ast.Literal{Kind: ast.RealLit, Value: v} }

// String literal: `"hello"`
func Str(v string) *ast.Literal { return &ast.Literal{Kind: ast.StringLit, Value: v} }

// Character literal: `#"c"`
func Char(v string) *ast.Literal { return &ast.Literal{Kind: ast.CharLit, Value: v} }

// Variable or constructor: `x`
func Var(name string) *ast.Var { return &ast.Var{Name: name} }

// Curried application: `f a b`
func App(f ast.Expr, args ...ast.Expr) ast.Expr {
	e := f
	for _, arg := range args {
		e = &ast.App{Func: e, Arg: arg}
	}
	return e
}

// Infix application: `a op b`, applied as `op (a, b)`
func Infix(op string, a, b ast.Expr) *ast.App {
	return &ast.App{Func: Var(op), Arg: Tuple(a, b)}
}

// Rule: `p => body`
func Rule(p ast.Pattern, body ast.Expr) ast.Rule { return ast.Rule{Pattern: p, Body: body} }

// Guarded rule: `p if guard => body`
func Guarded(p ast.Pattern, guard, body ast.Expr) ast.Rule {
	return ast.Rule{Pattern: p, Guard: guard, Body: body}
}

// Single-rule function: `fn p => body`
func Fn(p ast.Pattern, body ast.Expr) *ast.Fn { return &ast.Fn{Rules: []ast.Rule{Rule(p, body)}} }

// Multi-rule function: `fn p1 => e1 | p2 => e2`
func FnRules(rules ...ast.Rule) *ast.Fn { return &ast.Fn{Rules: rules} }

// Case analysis: `case e of p1 => e1 | p2 => e2`
func Case(e ast.Expr, rules ...ast.Rule) *ast.Case { return &ast.Case{Scrutinee: e, Rules: rules} }

// Local declarations: `let d1; d2 in body end`
func Let(body ast.Expr, decls ...ast.Decl) *ast.Let { return &ast.Let{Decls: decls, Body: body} }

// Tuple: `(a, b)`
func Tuple(elems ...ast.Expr) *ast.Tuple { return &ast.Tuple{Elems: elems} }

// Unit: `()`
func Unit() *ast.Tuple { return &ast.Tuple{} }

// Record field: `label = e`
func Field(label string, e ast.Expr) ast.Field { return ast.Field{Label: label, Value: e} }

// Record: `{x = 1, y = true}`
func Record(fields ...ast.Field) *ast.Record { return &ast.Record{Fields: fields} }

// Field selector: `#label`
func Select(label string) *ast.Selector { return &ast.Selector{Label: label} }

// List: `[a, b]`
func List(elems ...ast.Expr) *ast.List { return &ast.List{Elems: elems} }

// Sequence: `(a; b)`
func Seq(exprs ...ast.Expr) *ast.Seq { return &ast.Seq{Exprs: exprs} }

// Conditional: `if c then a else b`
func If(cond, then, els ast.Expr) *ast.If { return &ast.If{Cond: cond, Then: then, Else: els} }

func Andalso(a, b ast.Expr) *ast.Andalso { return &ast.Andalso{Left: a, Right: b} }
func Orelse(a, b ast.Expr) *ast.Orelse   { return &ast.Orelse{Left: a, Right: b} }
func Raise(e ast.Expr) *ast.Raise        { return &ast.Raise{Expr: e} }

// Exception handler: `e handle p1 => e1`
func Handle(e ast.Expr, rules ...ast.Rule) *ast.Handle { return &ast.Handle{Expr: e, Rules: rules} }

// Annotation: `(e : t)`
func Annot(e ast.Expr, t ast.TypeExpr) *ast.Constraint { return &ast.Constraint{Expr: e, Type: t} }

// Patterns

func PWild() *ast.Wildcard           { return &ast.Wildcard{} }
func PVar(name string) *ast.PatVar   { return &ast.PatVar{Name: name} }
func PInt(v int) *ast.PatLiteral     { return &ast.PatLiteral{Kind: ast.IntLit, Value: strconv.Itoa(v)} }
func PStr(v string) *ast.PatLiteral  { return &ast.PatLiteral{Kind: ast.StringLit, Value: v} }
func PChar(v string) *ast.PatLiteral { return &ast.PatLiteral{Kind: ast.CharLit, Value: v} }

// Constructor pattern: `SOME p`, or a nullary constructor when arg is nil.
func PCon(name string, arg ast.Pattern) *ast.PatCon { return &ast.PatCon{Name: name, Arg: arg} }

// Cons pattern: `h :: t`
func PCons(head, tail ast.Pattern) *ast.PatCon {
	return &ast.PatCon{Name: "::", Arg: PTuple(head, tail)}
}

// Tuple pattern: `(a, b)`
func PTuple(elems ...ast.Pattern) *ast.PatTuple { return &ast.PatTuple{Elems: elems} }

// List pattern: `[a, b]`
func PList(elems ...ast.Pattern) *ast.PatList { return &ast.PatList{Elems: elems} }

// Record pattern field: `label = p`
func PField(label string, p ast.Pattern) ast.PatField { return ast.PatField{Label: label, Pattern: p} }

// Punned record pattern field: `label`
func PPun(label string) ast.PatField { return ast.PatField{Label: label, Pattern: PVar(label)} }

// Rigid record pattern: `{x, y = p}`
func PRecord(fields ...ast.PatField) *ast.PatRecord { return &ast.PatRecord{Fields: fields} }

// Flexible record pattern: `{x, y, ...}`
func PFlexRecord(fields ...ast.PatField) *ast.PatRecord {
	return &ast.PatRecord{Fields: fields, Flexible: true}
}

// Layered pattern: `name as p`
func PAs(name string, p ast.Pattern) *ast.PatAs { return &ast.PatAs{Name: name, Pattern: p} }

// Annotated pattern: `(p : t)`
func PAnnot(p ast.Pattern, t ast.TypeExpr) *ast.PatConstraint {
	return &ast.PatConstraint{Pattern: p, Type: t}
}

// Types

func TyVar(name string) *ast.TyVar { return &ast.TyVar{Name: name} }

// Type constructor: `int`, `'a list`
func TyCon(name string, args ...ast.TypeExpr) *ast.TyCon { return &ast.TyCon{Name: name, Args: args} }

func TyArrow(arg, ret ast.TypeExpr) *ast.TyArrow       { return &ast.TyArrow{Arg: arg, Return: ret} }
func TyTuple(elems ...ast.TypeExpr) *ast.TyTuple       { return &ast.TyTuple{Elems: elems} }
func TyField(label string, t ast.TypeExpr) ast.TyField { return ast.TyField{Label: label, Type: t} }
func TyRecord(fields ...ast.TyField) *ast.TyRecord     { return &ast.TyRecord{Fields: fields} }

// Declarations

// Value binding: `val p = e`
func Val(p ast.Pattern, e ast.Expr) *ast.Val { return &ast.Val{Pattern: p, Expr: e} }

// Recursive value binding: `val rec name = e`
func ValRec(name string, e ast.Expr) *ast.Val { return &ast.Val{Rec: true, Pattern: PVar(name), Expr: e} }

// Function clause: `p1 p2 = body`
func Clause(body ast.Expr, params ...ast.Pattern) ast.FunClause {
	return ast.FunClause{Params: params, Body: body}
}

// Function binding: `f p1 = e1 | f p2 = e2`
func FunBinding(name string, clauses ...ast.FunClause) ast.FunBinding {
	return ast.FunBinding{Name: name, Clauses: clauses}
}

// Function declaration: `fun f ... and g ...`
func Fun(bindings ...ast.FunBinding) *ast.Fun { return &ast.Fun{Bindings: bindings} }

// Single-clause function declaration: `fun name p1 p2 = body`
func Fun1(name string, body ast.Expr, params ...ast.Pattern) *ast.Fun {
	return Fun(FunBinding(name, Clause(body, params...)))
}

// Constructor binding: `Name of t`, or a nullary constructor when arg is nil.
func Con(name string, arg ast.TypeExpr) ast.ConBinding { return ast.ConBinding{Name: name, Arg: arg} }

// Datatype binding: `'a name = C1 | C2 of t`
func DatatypeBinding(params []string, name string, cons ...ast.ConBinding) ast.DatatypeBinding {
	return ast.DatatypeBinding{Params: params, Name: name, Constructors: cons}
}

// Datatype declaration: `datatype ... and ...`
func Datatype(bindings ...ast.DatatypeBinding) *ast.Datatype { return &ast.Datatype{Bindings: bindings} }

// Type abbreviation: `type 'a name = t`
func TypeAlias(params []string, name string, t ast.TypeExpr) *ast.TypeAlias {
	return &ast.TypeAlias{Params: params, Name: name, Type: t}
}

// Exception declaration: `exception E of t`
func Exception(cons ...ast.ConBinding) *ast.Exception { return &ast.Exception{Bindings: cons} }

// Local declarations: `local decls in body end`
func Local(decls []ast.Decl, body ...ast.Decl) *ast.Local { return &ast.Local{Decls: decls, Body: body} }

// Program: a sequence of top-level declarations.
func Program(decls ...ast.Decl) *ast.Program { return &ast.Program{Decls: decls} }
