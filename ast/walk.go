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

// WalkExpr calls f for e and for each sub-expression of e, in pre-order. Expressions within
// nested declarations, guards and rule bodies are visited.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Var, *Literal, *Selector:
		f(e)

	case *App:
		f(e)
		WalkExpr(e.Func, f)
		WalkExpr(e.Arg, f)

	case *Fn:
		f(e)
		walkRules(e.Rules, f)

	case *Case:
		f(e)
		WalkExpr(e.Scrutinee, f)
		walkRules(e.Rules, f)

	case *Let:
		f(e)
		for _, d := range e.Decls {
			WalkDecl(d, f)
		}
		WalkExpr(e.Body, f)

	case *Tuple:
		f(e)
		for _, elem := range e.Elems {
			WalkExpr(elem, f)
		}

	case *Record:
		f(e)
		for _, field := range e.Fields {
			WalkExpr(field.Value, f)
		}

	case *List:
		f(e)
		for _, elem := range e.Elems {
			WalkExpr(elem, f)
		}

	case *Seq:
		f(e)
		for _, elem := range e.Exprs {
			WalkExpr(elem, f)
		}

	case *If:
		f(e)
		WalkExpr(e.Cond, f)
		WalkExpr(e.Then, f)
		WalkExpr(e.Else, f)

	case *Andalso:
		f(e)
		WalkExpr(e.Left, f)
		WalkExpr(e.Right, f)

	case *Orelse:
		f(e)
		WalkExpr(e.Left, f)
		WalkExpr(e.Right, f)

	case *Raise:
		f(e)
		WalkExpr(e.Expr, f)

	case *Handle:
		f(e)
		WalkExpr(e.Expr, f)
		walkRules(e.Rules, f)

	case *Constraint:
		f(e)
		WalkExpr(e.Expr, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

func walkRules(rules []Rule, f func(Expr)) {
	for _, r := range rules {
		if r.Guard != nil {
			WalkExpr(r.Guard, f)
		}
		WalkExpr(r.Body, f)
	}
}

// WalkDecl calls f for each expression within d, in pre-order.
func WalkDecl(d Decl, f func(Expr)) {
	switch d := d.(type) {
	case *Val:
		WalkExpr(d.Expr, f)
	case *Fun:
		for _, b := range d.Bindings {
			for _, c := range b.Clauses {
				WalkExpr(c.Body, f)
			}
		}
	case *Local:
		for _, inner := range d.Decls {
			WalkDecl(inner, f)
		}
		for _, inner := range d.Body {
			WalkDecl(inner, f)
		}
	}
}

// PatternNames returns the variables bound by p, in order of appearance. Names for which isCon
// returns true refer to nullary constructors and are excluded.
func PatternNames(p Pattern, isCon func(string) bool) []string {
	var names []string
	var visit func(p Pattern)
	visit = func(p Pattern) {
		switch p := p.(type) {
		case *PatVar:
			if isCon == nil || !isCon(p.Name) {
				names = append(names, p.Name)
			}
		case *PatCon:
			if p.Arg != nil {
				visit(p.Arg)
			}
		case *PatTuple:
			for _, elem := range p.Elems {
				visit(elem)
			}
		case *PatList:
			for _, elem := range p.Elems {
				visit(elem)
			}
		case *PatRecord:
			for _, field := range p.Fields {
				visit(field.Pattern)
			}
		case *PatAs:
			names = append(names, p.Name)
			visit(p.Pattern)
		case *PatConstraint:
			visit(p.Pattern)
		}
	}
	visit(p)
	return names
}
