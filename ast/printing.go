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
	"strings"
)

// ExprString returns a string representation of an expression in ML surface syntax.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

// PatternString returns a string representation of a pattern.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, false, p)
	return sb.String()
}

// TypeExprString returns a string representation of a type expression.
func TypeExprString(t TypeExpr) string {
	var sb strings.Builder
	typeExprString(&sb, 0, t)
	return sb.String()
}

// DeclString returns a string representation of a declaration.
func DeclString(d Decl) string {
	var sb strings.Builder
	declString(&sb, d)
	return sb.String()
}

func literalString(sb *strings.Builder, kind LiteralKind, value string) {
	switch kind {
	case StringLit:
		sb.WriteByte('"')
		sb.WriteString(value)
		sb.WriteByte('"')
	case CharLit:
		sb.WriteString("#\"")
		sb.WriteString(value)
		sb.WriteByte('"')
	default:
		sb.WriteString(value)
	}
}

// simple is set when a compound expression must be parenthesized
func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch e := e.(type) {
	case *Literal:
		literalString(sb, e.Kind, e.Value)

	case *Var:
		sb.WriteString(e.Name)

	case *Selector:
		sb.WriteByte('#')
		sb.WriteString(e.Label)

	case *App:
		if simple {
			sb.WriteByte('(')
		}
		if _, ok := e.Func.(*App); ok {
			exprString(sb, false, e.Func)
		} else {
			exprString(sb, true, e.Func)
		}
		sb.WriteByte(' ')
		exprString(sb, true, e.Arg)
		if simple {
			sb.WriteByte(')')
		}

	case *Fn:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("fn ")
		rulesString(sb, e.Rules)
		if simple {
			sb.WriteByte(')')
		}

	case *Case:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("case ")
		exprString(sb, false, e.Scrutinee)
		sb.WriteString(" of ")
		rulesString(sb, e.Rules)
		if simple {
			sb.WriteByte(')')
		}

	case *Let:
		sb.WriteString("let ")
		for i, d := range e.Decls {
			if i > 0 {
				sb.WriteString("; ")
			}
			declString(sb, d)
		}
		sb.WriteString(" in ")
		exprString(sb, false, e.Body)
		sb.WriteString(" end")

	case *Tuple:
		sb.WriteByte('(')
		for i, elem := range e.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(')')

	case *Record:
		sb.WriteByte('{')
		for i, field := range e.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(field.Label)
			sb.WriteString(" = ")
			exprString(sb, false, field.Value)
		}
		sb.WriteByte('}')

	case *List:
		sb.WriteByte('[')
		for i, elem := range e.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(']')

	case *Seq:
		sb.WriteByte('(')
		for i, elem := range e.Exprs {
			if i > 0 {
				sb.WriteString("; ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(')')

	case *If:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if ")
		exprString(sb, false, e.Cond)
		sb.WriteString(" then ")
		exprString(sb, false, e.Then)
		sb.WriteString(" else ")
		exprString(sb, false, e.Else)
		if simple {
			sb.WriteByte(')')
		}

	case *Andalso:
		binaryString(sb, simple, e.Left, " andalso ", e.Right)

	case *Orelse:
		binaryString(sb, simple, e.Left, " orelse ", e.Right)

	case *Raise:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("raise ")
		exprString(sb, true, e.Expr)
		if simple {
			sb.WriteByte(')')
		}

	case *Handle:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, e.Expr)
		sb.WriteString(" handle ")
		rulesString(sb, e.Rules)
		if simple {
			sb.WriteByte(')')
		}

	case *Constraint:
		sb.WriteByte('(')
		exprString(sb, false, e.Expr)
		sb.WriteString(" : ")
		typeExprString(sb, 0, e.Type)
		sb.WriteByte(')')
	}
}

func binaryString(sb *strings.Builder, simple bool, left Expr, op string, right Expr) {
	if simple {
		sb.WriteByte('(')
	}
	exprString(sb, true, left)
	sb.WriteString(op)
	exprString(sb, true, right)
	if simple {
		sb.WriteByte(')')
	}
}

func rulesString(sb *strings.Builder, rules []Rule) {
	for i, r := range rules {
		if i > 0 {
			sb.WriteString(" | ")
		}
		patternString(sb, false, r.Pattern)
		if r.Guard != nil {
			sb.WriteString(" if ")
			exprString(sb, true, r.Guard)
		}
		sb.WriteString(" => ")
		exprString(sb, false, r.Body)
	}
}

func patternString(sb *strings.Builder, simple bool, p Pattern) {
	switch p := p.(type) {
	case *Wildcard:
		sb.WriteByte('_')

	case *PatVar:
		sb.WriteString(p.Name)

	case *PatLiteral:
		literalString(sb, p.Kind, p.Value)

	case *PatCon:
		if p.Arg == nil {
			sb.WriteString(p.Name)
			return
		}
		if simple {
			sb.WriteByte('(')
		}
		if tuple, ok := p.Arg.(*PatTuple); ok && p.Name == "::" && len(tuple.Elems) == 2 {
			patternString(sb, true, tuple.Elems[0])
			sb.WriteString(" :: ")
			patternString(sb, false, tuple.Elems[1])
		} else {
			sb.WriteString(p.Name)
			sb.WriteByte(' ')
			patternString(sb, true, p.Arg)
		}
		if simple {
			sb.WriteByte(')')
		}

	case *PatTuple:
		sb.WriteByte('(')
		for i, elem := range p.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, false, elem)
		}
		sb.WriteByte(')')

	case *PatList:
		sb.WriteByte('[')
		for i, elem := range p.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, false, elem)
		}
		sb.WriteByte(']')

	case *PatRecord:
		sb.WriteByte('{')
		for i, field := range p.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			if v, ok := field.Pattern.(*PatVar); ok && v.Name == field.Label {
				sb.WriteString(field.Label)
				continue
			}
			sb.WriteString(field.Label)
			sb.WriteString(" = ")
			patternString(sb, false, field.Pattern)
		}
		if p.Flexible {
			if len(p.Fields) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("...")
		}
		sb.WriteByte('}')

	case *PatAs:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString(p.Name)
		sb.WriteString(" as ")
		patternString(sb, false, p.Pattern)
		if simple {
			sb.WriteByte(')')
		}

	case *PatConstraint:
		sb.WriteByte('(')
		patternString(sb, false, p.Pattern)
		sb.WriteString(" : ")
		typeExprString(sb, 0, p.Type)
		sb.WriteByte(')')
	}
}

// prec: 0 = arrow, 1 = tuple element, 2 = constructor argument
func typeExprString(sb *strings.Builder, prec int, t TypeExpr) {
	switch t := t.(type) {
	case *TyVar:
		sb.WriteString(t.Name)

	case *TyCon:
		switch len(t.Args) {
		case 0:
		case 1:
			typeExprString(sb, 2, t.Args[0])
			sb.WriteByte(' ')
		default:
			sb.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				typeExprString(sb, 0, arg)
			}
			sb.WriteString(") ")
		}
		sb.WriteString(t.Name)

	case *TyArrow:
		if prec > 0 {
			sb.WriteByte('(')
		}
		typeExprString(sb, 1, t.Arg)
		sb.WriteString(" -> ")
		typeExprString(sb, 0, t.Return)
		if prec > 0 {
			sb.WriteByte(')')
		}

	case *TyTuple:
		if prec > 1 {
			sb.WriteByte('(')
		}
		for i, elem := range t.Elems {
			if i > 0 {
				sb.WriteString(" * ")
			}
			typeExprString(sb, 2, elem)
		}
		if prec > 1 {
			sb.WriteByte(')')
		}

	case *TyRecord:
		sb.WriteByte('{')
		for i, field := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(field.Label)
			sb.WriteString(": ")
			typeExprString(sb, 0, field.Type)
		}
		sb.WriteByte('}')
	}
}

func paramsString(sb *strings.Builder, params []string) {
	switch len(params) {
	case 0:
		return
	case 1:
		sb.WriteString(params[0])
	default:
		sb.WriteByte('(')
		sb.WriteString(strings.Join(params, ", "))
		sb.WriteByte(')')
	}
	sb.WriteByte(' ')
}

func conBindingsString(sb *strings.Builder, cons []ConBinding) {
	for i, c := range cons {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(c.Name)
		if c.Arg != nil {
			sb.WriteString(" of ")
			typeExprString(sb, 0, c.Arg)
		}
	}
}

func declString(sb *strings.Builder, d Decl) {
	switch d := d.(type) {
	case *Val:
		sb.WriteString("val ")
		if d.Rec {
			sb.WriteString("rec ")
		}
		patternString(sb, false, d.Pattern)
		sb.WriteString(" = ")
		exprString(sb, false, d.Expr)

	case *Fun:
		sb.WriteString("fun ")
		for i, b := range d.Bindings {
			if i > 0 {
				sb.WriteString(" and ")
			}
			for j, c := range b.Clauses {
				if j > 0 {
					sb.WriteString(" | ")
				}
				sb.WriteString(b.Name)
				for _, p := range c.Params {
					sb.WriteByte(' ')
					patternString(sb, true, p)
				}
				if c.Result != nil {
					sb.WriteString(" : ")
					typeExprString(sb, 0, c.Result)
				}
				sb.WriteString(" = ")
				exprString(sb, false, c.Body)
			}
		}

	case *Datatype:
		sb.WriteString("datatype ")
		for i, b := range d.Bindings {
			if i > 0 {
				sb.WriteString(" and ")
			}
			paramsString(sb, b.Params)
			sb.WriteString(b.Name)
			sb.WriteString(" = ")
			conBindingsString(sb, b.Constructors)
		}

	case *TypeAlias:
		sb.WriteString("type ")
		paramsString(sb, d.Params)
		sb.WriteString(d.Name)
		sb.WriteString(" = ")
		typeExprString(sb, 0, d.Type)

	case *Exception:
		sb.WriteString("exception ")
		for i, c := range d.Bindings {
			if i > 0 {
				sb.WriteString(" and ")
			}
			conBindingsString(sb, []ConBinding{c})
		}

	case *Local:
		sb.WriteString("local ")
		for i, inner := range d.Decls {
			if i > 0 {
				sb.WriteString("; ")
			}
			declString(sb, inner)
		}
		sb.WriteString(" in ")
		for i, inner := range d.Body {
			if i > 0 {
				sb.WriteString("; ")
			}
			declString(sb, inner)
		}
		sb.WriteString(" end")
	}
}
