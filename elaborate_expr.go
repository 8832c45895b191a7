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

package elab

import (
	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

func (ctx *Context) elabExpr(env *Env, level int, e ast.Expr) (ir.Expr, error) {
	span := e.Loc()
	switch e := e.(type) {
	case *ast.Literal:
		return &ir.Literal{Typed: ir.Typed{Span: span, T: literalType(e.Kind)}, Kind: e.Kind, Value: e.Value}, nil

	case *ast.Var:
		entry, ok := env.LookupValue(e.Name)
		if !ok {
			return nil, diag.Errorf(diag.UnboundIdentifier, span, "Unbound identifier "+e.Name)
		}
		t := ctx.common.Instantiate(level, entry.Scheme)
		return &ir.Var{Typed: ir.Typed{Span: span, T: t}, Name: e.Name, Con: entry.Con}, nil

	case *ast.App:
		fn, err := ctx.elabExpr(env, level, e.Func)
		if err != nil {
			return nil, err
		}
		arg, err := ctx.elabExpr(env, level, e.Arg)
		if err != nil {
			return nil, err
		}
		param, ret, err := ctx.matchFuncType(level, e.Func.Loc(), fn.Type())
		if err != nil {
			return nil, err
		}
		if err := ctx.common.TryUnify(param, arg.Type()); err != nil {
			d := unifyDiagnostic(e.Arg.Loc(), err)
			if ctx.curriedCall(param, ret, arg) {
				d.Message += "; the function is curried, so its arguments must be applied separately"
			}
			return nil, d
		}
		return &ir.App{Typed: ir.Typed{Span: span, T: ret}, Func: fn, Arg: arg}, nil

	case *ast.Fn:
		return ctx.elabFn(env, level, span, e.Rules)

	case *ast.Case:
		scrutinee, err := ctx.elabExpr(env, level, e.Scrutinee)
		if err != nil {
			return nil, err
		}
		result := ctx.common.NewVar(level)
		rules, err := ctx.elabRules(env, level, e.Rules, scrutinee.Type(), result)
		if err != nil {
			return nil, err
		}
		m, err := ctx.compileMatch(siteCase, span, rules, scrutinee.Type())
		if err != nil {
			return nil, err
		}
		return &ir.Case{Typed: ir.Typed{Span: span, T: result}, Scrutinee: scrutinee, Rules: rules, Match: m}, nil

	case *ast.Let:
		scope := env.Scope()
		decls := make([]ir.Decl, 0, len(e.Decls))
		for _, d := range e.Decls {
			decl, next, _, err := ctx.elabDecl(scope, level, d)
			if err != nil {
				return nil, err
			}
			if decl != nil {
				decls = append(decls, decl)
			}
			scope = next
		}
		body, err := ctx.elabExpr(scope, level, e.Body)
		if err != nil {
			return nil, err
		}
		return &ir.Let{Typed: ir.Typed{Span: span, T: body.Type()}, Decls: decls, Body: body}, nil

	case *ast.Tuple:
		if len(e.Elems) == 1 {
			return ctx.elabExpr(env, level, e.Elems[0])
		}
		elems := make([]ir.Expr, len(e.Elems))
		elemTypes := make([]types.Type, len(e.Elems))
		for i, elem := range e.Elems {
			ee, err := ctx.elabExpr(env, level, elem)
			if err != nil {
				return nil, err
			}
			elems[i], elemTypes[i] = ee, ee.Type()
		}
		return &ir.Tuple{Typed: ir.Typed{Span: span, T: types.NewTuple(elemTypes...)}, Elems: elems}, nil

	case *ast.Record:
		labels := types.NewTypeMapBuilder()
		fields := make([]ir.Field, len(e.Fields))
		for i, f := range e.Fields {
			if _, dup := labels.Get(f.Label); dup {
				return nil, diag.Errorf(diag.TypeMismatch, span, "Duplicate label "+f.Label+" in record")
			}
			fe, err := ctx.elabExpr(env, level, f.Value)
			if err != nil {
				return nil, err
			}
			labels.Set(f.Label, fe.Type())
			fields[i] = ir.Field{Label: f.Label, Value: fe}
		}
		t := types.NewRecord(labels.Build(), nil)
		return &ir.Record{Typed: ir.Typed{Span: span, T: t}, Fields: fields}, nil

	case *ast.Selector:
		// #l : {l: 'a | 'r} -> 'a
		field, rest := ctx.common.NewVar(level), ctx.common.NewVar(level)
		record := types.NewRecord(types.SingletonTypeMap(e.Label, field), rest)
		return &ir.Selector{Typed: ir.Typed{Span: span, T: types.NewArrow(record, field)}, Label: e.Label}, nil

	case *ast.List:
		return ctx.elabList(env, level, span, e.Elems)

	case *ast.Seq:
		if len(e.Exprs) == 0 {
			return &ir.Tuple{Typed: ir.Typed{Span: span, T: types.Unit}}, nil
		}
		exprs := make([]ir.Expr, len(e.Exprs))
		for i, elem := range e.Exprs {
			ee, err := ctx.elabExpr(env, level, elem)
			if err != nil {
				return nil, err
			}
			exprs[i] = ee
		}
		return &ir.Seq{Typed: ir.Typed{Span: span, T: exprs[len(exprs)-1].Type()}, Exprs: exprs}, nil

	case *ast.If:
		return ctx.elabCond(env, level, span, e.Cond, e.Then, e.Else)

	case *ast.Andalso:
		// a andalso b == if a then b else false
		return ctx.elabCond(env, level, span, e.Left, e.Right, &ast.Var{Span: span, Name: "false"})

	case *ast.Orelse:
		// a orelse b == if a then true else b
		return ctx.elabCond(env, level, span, e.Left, &ast.Var{Span: span, Name: "true"}, e.Right)

	case *ast.Raise:
		exn, err := ctx.elabExpr(env, level, e.Expr)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(e.Expr.Loc(), types.Exn, exn.Type()); err != nil {
			return nil, err
		}
		return &ir.Raise{Typed: ir.Typed{Span: span, T: ctx.common.NewVar(level)}, Expr: exn}, nil

	case *ast.Handle:
		body, err := ctx.elabExpr(env, level, e.Expr)
		if err != nil {
			return nil, err
		}
		rules, err := ctx.elabRules(env, level, e.Rules, types.Exn, body.Type())
		if err != nil {
			return nil, err
		}
		m, err := ctx.compileMatch(siteHandle, span, rules, types.Exn)
		if err != nil {
			return nil, err
		}
		return &ir.Handle{Typed: ir.Typed{Span: span, T: body.Type()}, Expr: body, Rules: rules, Match: m}, nil

	case *ast.Constraint:
		inner, err := ctx.elabExpr(env, level, e.Expr)
		if err != nil {
			return nil, err
		}
		t, err := ctx.elabType(env, level, e.Type, nil)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(span, t, inner.Type()); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, diag.Errorf(diag.Internal, span, "Unknown expression")
}

// matchFuncType returns the parameter and result types of a function type, binding an unbound
// type-variable to a fresh function type when necessary.
func (ctx *Context) matchFuncType(level int, span ast.Span, t types.Type) (types.Type, types.Type, error) {
	if arrow, ok := types.RealType(t).(*types.Arrow); ok {
		return arrow.Arg, arrow.Return, nil
	}
	param, ret := ctx.common.NewVar(level), ctx.common.NewVar(level)
	if err := ctx.unify(span, types.NewArrow(param, ret), t); err != nil {
		return nil, nil, err
	}
	return param, ret, nil
}

// curriedCall returns true if a failed application passed a tuple to a curried function whose
// first parameter accepts the tuple's first element. Neither type is modified.
func (ctx *Context) curriedCall(param, ret types.Type, arg ir.Expr) bool {
	tuple, ok := arg.(*ir.Tuple)
	if !ok || len(tuple.Elems) < 2 {
		return false
	}
	if _, ok := types.RealType(ret).(*types.Arrow); !ok {
		return false
	}
	return ctx.common.CanUnify(param, tuple.Elems[0].Type())
}

// elabFn types `fn p1 => e1 | p2 => e2` as a single-parameter function which matches on its
// parameter.
func (ctx *Context) elabFn(env *Env, level int, span ast.Span, rules []ast.Rule) (ir.Expr, error) {
	param, result := ctx.common.NewVar(level), ctx.common.NewVar(level)
	out, err := ctx.elabRules(env, level, rules, param, result)
	if err != nil {
		return nil, err
	}
	m, err := ctx.compileMatch(siteFn, span, out, param)
	if err != nil {
		return nil, err
	}
	name := ctx.freshParam()
	scrutinee := &ir.Var{Typed: ir.Typed{Span: span, T: param}, Name: name}
	body := &ir.Case{Typed: ir.Typed{Span: span, T: result}, Scrutinee: scrutinee, Rules: out, Match: m}
	return &ir.Fn{Typed: ir.Typed{Span: span, T: types.NewArrow(param, result)}, Param: name, Body: body}, nil
}

// elabCond types `if c then a else b` as a case over bool.
func (ctx *Context) elabCond(env *Env, level int, span ast.Span, cond, then, els ast.Expr) (ir.Expr, error) {
	trueEntry, err := lookupCon(env, span, "true")
	if err != nil {
		return nil, err
	}
	falseEntry, err := lookupCon(env, span, "false")
	if err != nil {
		return nil, err
	}
	c, err := ctx.elabExpr(env, level, cond)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(cond.Loc(), types.Bool, c.Type()); err != nil {
		return nil, err
	}
	a, err := ctx.elabExpr(env, level, then)
	if err != nil {
		return nil, err
	}
	b, err := ctx.elabExpr(env, level, els)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(els.Loc(), a.Type(), b.Type()); err != nil {
		return nil, err
	}
	rules := []ir.Rule{
		{Pattern: &ir.PatCon{Typed: ir.Typed{Span: then.Loc(), T: types.Bool}, Con: trueEntry.Con}, Body: a},
		{Pattern: &ir.PatCon{Typed: ir.Typed{Span: els.Loc(), T: types.Bool}, Con: falseEntry.Con}, Body: b},
	}
	m, err := ctx.compileMatch(siteCase, span, rules, types.Bool)
	if err != nil {
		return nil, err
	}
	return &ir.Case{Typed: ir.Typed{Span: span, T: a.Type()}, Scrutinee: c, Rules: rules, Match: m}, nil
}

// elabList types `[a, b]` as `a :: b :: nil`.
func (ctx *Context) elabList(env *Env, level int, span ast.Span, elems []ast.Expr) (ir.Expr, error) {
	nilEntry, err := lookupCon(env, span, "nil")
	if err != nil {
		return nil, err
	}
	consEntry, err := lookupCon(env, span, "::")
	if err != nil {
		return nil, err
	}
	elemType := ctx.common.NewVar(level)
	listType := types.NewList(elemType)
	heads := make([]ir.Expr, len(elems))
	for i, elem := range elems {
		he, err := ctx.elabExpr(env, level, elem)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(elem.Loc(), elemType, he.Type()); err != nil {
			return nil, err
		}
		heads[i] = he
	}
	pairType := types.NewTuple(elemType, listType)
	consType := types.NewArrow(pairType, listType)
	var tail ir.Expr = &ir.Var{Typed: ir.Typed{Span: span, T: listType}, Name: "nil", Con: nilEntry.Con}
	for i := len(heads) - 1; i >= 0; i-- {
		at := heads[i].Loc()
		cons := &ir.Var{Typed: ir.Typed{Span: at, T: consType}, Name: "::", Con: consEntry.Con}
		pair := &ir.Tuple{Typed: ir.Typed{Span: at, T: pairType}, Elems: []ir.Expr{heads[i], tail}}
		tail = &ir.App{Typed: ir.Typed{Span: at, T: listType}, Func: cons, Arg: pair}
	}
	return tail, nil
}

// nonexpansive returns true if e is a syntactic value: its evaluation cannot allocate a
// reference cell, so its type may be generalized.
func nonexpansive(env *Env, e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Literal, *ast.Var, *ast.Fn, *ast.Selector:
		return true
	case *ast.Tuple:
		for _, elem := range e.Elems {
			if !nonexpansive(env, elem) {
				return false
			}
		}
		return true
	case *ast.List:
		for _, elem := range e.Elems {
			if !nonexpansive(env, elem) {
				return false
			}
		}
		return true
	case *ast.Record:
		for _, f := range e.Fields {
			if !nonexpansive(env, f.Value) {
				return false
			}
		}
		return true
	case *ast.Constraint:
		return nonexpansive(env, e.Expr)
	case *ast.App:
		// constructor application, other than ref
		fn, ok := e.Func.(*ast.Var)
		if !ok || fn.Name == "ref" || !env.IsConstructor(fn.Name) {
			return false
		}
		return nonexpansive(env, e.Arg)
	}
	return false
}
