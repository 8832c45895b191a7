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
	"github.com/wdamron/elab/internal/astutil"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

// elabDecl elaborates a declaration whose bindings are generalized at level. The extended
// environment and the value bindings introduced by the declaration are returned. Type
// abbreviations produce no typed declaration.
func (ctx *Context) elabDecl(env *Env, level int, d ast.Decl) (ir.Decl, *Env, []ir.Binding, error) {
	switch d := d.(type) {
	case *ast.Val:
		if d.Rec {
			return ctx.elabValRec(env, level, d)
		}
		return ctx.elabVal(env, level, d)
	case *ast.Fun:
		return ctx.elabFun(env, level, d)
	case *ast.Datatype:
		decl, next, err := ctx.elabDatatype(env, level, d)
		return decl, next, nil, err
	case *ast.TypeAlias:
		next, err := ctx.elabTypeAlias(env, level, d)
		return nil, next, nil, err
	case *ast.Exception:
		decl, next, err := ctx.elabException(env, level, d)
		return decl, next, nil, err
	case *ast.Local:
		return ctx.elabLocal(env, level, d)
	}
	return nil, nil, nil, diag.Errorf(diag.Internal, d.Loc(), "Unknown declaration")
}

// bindScheme generalizes t when the bound expression is a syntactic value; otherwise the
// type-variables of t are restricted to level, so they may only be resolved by later use.
func (ctx *Context) bindScheme(env *Env, span ast.Span, level int, t types.Type, generalizable bool) (*types.Scheme, error) {
	if !generalizable {
		types.Restrict(level, t)
		return types.Mono(t), nil
	}
	return ctx.generalize(env, span, level, t)
}

func (ctx *Context) logBindings(bindings []ir.Binding) {
	if !ctx.debug {
		return
	}
	for _, b := range bindings {
		ctx.log.Debug("bound", "name", b.Name, "scheme", types.SchemeString(b.Scheme), "generic", len(b.Scheme.Bound))
	}
}

// `val p = e`
func (ctx *Context) elabVal(env *Env, level int, d *ast.Val) (ir.Decl, *Env, []ir.Binding, error) {
	defer ctx.enterValue(level)()
	expr, err := ctx.elabExpr(env, level+1, d.Expr)
	if err != nil {
		return nil, nil, nil, err
	}
	var vars patVars
	pat, err := ctx.elabPattern(env, level+1, d.Pattern, &vars)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := ctx.unify(d.Pattern.Loc(), pat.Type(), expr.Type()); err != nil {
		return nil, nil, nil, err
	}
	m, err := ctx.compileMatch(siteBinding, d.Loc(), []ir.Rule{{Pattern: pat, Body: expr}}, expr.Type())
	if err != nil {
		return nil, nil, nil, err
	}
	generalizable := nonexpansive(env, d.Expr)
	bindings := make([]ir.Binding, len(vars))
	next := env
	for i, v := range vars {
		s, err := ctx.bindScheme(env, d.Loc(), level, v.t, generalizable)
		if err != nil {
			return nil, nil, nil, err
		}
		bindings[i] = ir.Binding{Name: v.name, Scheme: s}
		next = next.Bind(v.name, s)
	}
	ctx.logBindings(bindings)
	return &ir.Val{Span: d.Span, Pattern: pat, Expr: expr, Match: m, Bindings: bindings}, next, bindings, nil
}

// `val rec f = fn ...`
func (ctx *Context) elabValRec(env *Env, level int, d *ast.Val) (ir.Decl, *Env, []ir.Binding, error) {
	defer ctx.enterValue(level)()
	p, annot := d.Pattern, ast.TypeExpr(nil)
	if c, ok := p.(*ast.PatConstraint); ok {
		p, annot = c.Pattern, c.Type
	}
	v, ok := p.(*ast.PatVar)
	if !ok || env.IsConstructor(v.Name) {
		return nil, nil, nil, diag.Errorf(diag.InvalidPattern, d.Pattern.Loc(), "Recursive value bindings must bind a variable")
	}
	if _, ok := d.Expr.(*ast.Fn); !ok {
		return nil, nil, nil, diag.Errorf(diag.InvalidPattern, d.Expr.Loc(), "Recursive value bindings must bind a function")
	}
	tv := ctx.common.NewVar(level + 1)
	if annot != nil {
		t, err := ctx.elabType(env, level+1, annot, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := ctx.unify(d.Pattern.Loc(), t, tv); err != nil {
			return nil, nil, nil, err
		}
	}
	fn, err := ctx.elabExpr(env.Bind(v.Name, types.Mono(tv)), level+1, d.Expr)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := ctx.unify(d.Expr.Loc(), tv, fn.Type()); err != nil {
		return nil, nil, nil, err
	}
	s, err := ctx.generalize(env, d.Loc(), level, tv)
	if err != nil {
		return nil, nil, nil, err
	}
	bindings := []ir.Binding{{Name: v.Name, Scheme: s}}
	ctx.logBindings(bindings)
	decl := &ir.Fun{Span: d.Span, Bindings: []ir.FunBinding{{Name: v.Name, Scheme: s, Fn: fn}}}
	return decl, env.Bind(v.Name, s), bindings, nil
}

// `fun f ... and g ...`
//
// The group is split into strongly-connected components, which are elaborated and generalized
// in dependency order; within a component, each function is monomorphic until the component
// is generalized.
func (ctx *Context) elabFun(env *Env, level int, d *ast.Fun) (ir.Decl, *Env, []ir.Binding, error) {
	defer ctx.enterValue(level)()
	group := make([]astutil.Binding, len(d.Bindings))
	for i, b := range d.Bindings {
		for _, prev := range d.Bindings[:i] {
			if prev.Name == b.Name {
				return nil, nil, nil, diag.Errorf(diag.InvalidPattern, b.Loc(), "Function "+b.Name+" is bound more than once")
			}
		}
		if env.IsConstructor(b.Name) {
			return nil, nil, nil, diag.Errorf(diag.InvalidPattern, b.Loc(), "Constructor "+b.Name+" cannot be bound as a function")
		}
		clauses := make([]astutil.Clause, len(b.Clauses))
		for j, c := range b.Clauses {
			clauses[j] = astutil.Clause{Params: c.Params, Body: c.Body}
		}
		group[i] = astutil.Binding{Name: b.Name, Clauses: clauses}
	}
	components := ctx.analysis.Components(group)
	if ctx.debug {
		ctx.log.Debug("function group", "pos", d.Span.Start.String(), "functions", len(group), "components", len(components))
	}

	out := make([]ir.FunBinding, len(d.Bindings))
	bindings := make([]ir.Binding, len(d.Bindings))
	vars := make([]*types.Var, len(d.Bindings))
	for _, component := range components {
		scope := env
		for _, i := range component {
			vars[i] = ctx.common.NewVar(level + 1)
			scope = scope.Bind(d.Bindings[i].Name, types.Mono(vars[i]))
		}
		for _, i := range component {
			b := &d.Bindings[i]
			fn, err := ctx.elabFunBinding(scope, level+1, b)
			if err != nil {
				return nil, nil, nil, err
			}
			if err := ctx.unify(b.Loc(), vars[i], fn.Type()); err != nil {
				return nil, nil, nil, err
			}
			out[i] = ir.FunBinding{Name: b.Name, Fn: fn}
		}
		for _, i := range component {
			s, err := ctx.generalize(env, d.Bindings[i].Loc(), level, vars[i])
			if err != nil {
				return nil, nil, nil, err
			}
			out[i].Scheme = s
			bindings[i] = ir.Binding{Name: out[i].Name, Scheme: s}
			env = env.Bind(out[i].Name, s)
		}
	}
	ctx.logBindings(bindings)
	return &ir.Fun{Span: d.Span, Bindings: out}, env, bindings, nil
}

// elabFunBinding types the clauses of a curried function as nested single-parameter functions
// over a match on the tuple of all parameters.
func (ctx *Context) elabFunBinding(env *Env, level int, b *ast.FunBinding) (ir.Expr, error) {
	if len(b.Clauses) == 0 || len(b.Clauses[0].Params) == 0 {
		return nil, diag.Errorf(diag.InvalidPattern, b.Loc(), "Function "+b.Name+" has no parameters")
	}
	arity := len(b.Clauses[0].Params)
	params := make([]types.Type, arity)
	for j := range params {
		params[j] = ctx.common.NewVar(level)
	}
	scrutineeType := types.NewTuple(params...)
	result := ctx.common.NewVar(level)

	rules := make([]ir.Rule, len(b.Clauses))
	for i := range b.Clauses {
		c := &b.Clauses[i]
		if len(c.Params) != arity {
			return nil, diag.Errorf(diag.ArityMismatch, c.Loc(), "Clauses of "+b.Name+" have different numbers of parameters")
		}
		var vars patVars
		pats := make([]ir.Pattern, arity)
		for j, p := range c.Params {
			ip, err := ctx.elabPattern(env, level, p, &vars)
			if err != nil {
				return nil, err
			}
			if err := ctx.unify(p.Loc(), params[j], ip.Type()); err != nil {
				return nil, err
			}
			pats[j] = ip
		}
		scope := vars.bind(env.Scope())
		if c.Result != nil {
			rt, err := ctx.elabType(env, level, c.Result, nil)
			if err != nil {
				return nil, err
			}
			if err := ctx.unify(c.Loc(), rt, result); err != nil {
				return nil, err
			}
		}
		body, err := ctx.elabExpr(scope, level, c.Body)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(c.Body.Loc(), result, body.Type()); err != nil {
			return nil, err
		}
		pat := pats[0]
		if arity > 1 {
			pat = &ir.PatTuple{Typed: ir.Typed{Span: c.Span, T: scrutineeType}, Elems: pats}
		}
		rules[i] = ir.Rule{Pattern: pat, Body: body}
	}
	m, err := ctx.compileMatch(siteFun, b.Loc(), rules, scrutineeType)
	if err != nil {
		return nil, err
	}

	names := make([]string, arity)
	args := make([]ir.Expr, arity)
	for j := range names {
		names[j] = ctx.freshParam()
		args[j] = &ir.Var{Typed: ir.Typed{Span: b.Span, T: params[j]}, Name: names[j]}
	}
	scrutinee := args[0]
	if arity > 1 {
		scrutinee = &ir.Tuple{Typed: ir.Typed{Span: b.Span, T: scrutineeType}, Elems: args}
	}
	var fn ir.Expr = &ir.Case{Typed: ir.Typed{Span: b.Span, T: result}, Scrutinee: scrutinee, Rules: rules, Match: m}
	for j := arity - 1; j >= 0; j-- {
		fn = &ir.Fn{Typed: ir.Typed{Span: b.Span, T: types.NewArrow(params[j], fn.Type())}, Param: names[j], Body: fn}
	}
	return fn, nil
}

// `datatype 'a t = A | B of t2 and ...`
//
// All type names of the declaration are bound before any constructor is elaborated, so the
// datatypes may be mutually recursive.
func (ctx *Context) elabDatatype(env *Env, level int, d *ast.Datatype) (ir.Decl, *Env, error) {
	dts := make([]*types.Datatype, len(d.Bindings))
	params := make([]map[string]*types.Var, len(d.Bindings))
	for i, b := range d.Bindings {
		for _, prev := range d.Bindings[:i] {
			if prev.Name == b.Name {
				return nil, nil, diag.Errorf(diag.InvalidPattern, b.Loc(), "Type "+b.Name+" is declared more than once")
			}
		}
		vars, lookup, err := ctx.typeParams(b.Loc(), b.Params)
		if err != nil {
			return nil, nil, err
		}
		dts[i], params[i] = &types.Datatype{Name: b.Name, Params: vars}, lookup
		env = env.BindType(b.Name, &TypeEntry{Name: b.Name, Arity: len(vars), Datatype: dts[i]})
	}
	seen := make(map[string]bool, 8)
	for i, b := range d.Bindings {
		for _, c := range b.Constructors {
			if seen[c.Name] {
				return nil, nil, diag.Errorf(diag.InvalidPattern, c.Loc(), "Constructor "+c.Name+" is declared more than once")
			}
			seen[c.Name] = true
			var arg types.Type
			if c.Arg != nil {
				var err error
				if arg, err = ctx.elabType(env, level, c.Arg, params[i]); err != nil {
					return nil, nil, err
				}
				types.Generalize(types.TopLevel, arg)
			}
			con := dts[i].AddConstructor(c.Name, arg)
			env = env.BindValue(c.Name, &ValueEntry{Scheme: con.Scheme(), Status: ConstructorId, Con: con})
		}
	}
	if ctx.debug {
		for _, dt := range dts {
			ctx.log.Debug("datatype", "name", dt.Name, "params", len(dt.Params), "constructors", len(dt.Constructors))
		}
	}
	return &ir.Datatype{Span: d.Span, Datatypes: dts}, env, nil
}

// `type 'a t = ...`
func (ctx *Context) elabTypeAlias(env *Env, level int, d *ast.TypeAlias) (*Env, error) {
	vars, lookup, err := ctx.typeParams(d.Loc(), d.Params)
	if err != nil {
		return nil, err
	}
	body, err := ctx.elabType(env, level, d.Type, lookup)
	if err != nil {
		return nil, err
	}
	types.Generalize(types.TopLevel, body)
	return env.BindType(d.Name, &TypeEntry{Name: d.Name, Arity: len(vars), Alias: body, Params: vars}), nil
}

// `exception E of t`
func (ctx *Context) elabException(env *Env, level int, d *ast.Exception) (ir.Decl, *Env, error) {
	exn, ok := env.LookupType("exn")
	if !ok || exn.Datatype == nil {
		return nil, nil, diag.Errorf(diag.UnboundType, d.Loc(), "Unbound type constructor exn")
	}
	noParams := map[string]*types.Var{}
	cons := make([]*types.Constructor, len(d.Bindings))
	for i, c := range d.Bindings {
		var arg types.Type
		if c.Arg != nil {
			var err error
			if arg, err = ctx.elabType(env, level, c.Arg, noParams); err != nil {
				return nil, nil, err
			}
		}
		ctx.exns++
		cons[i] = &types.Constructor{Name: c.Name, Tag: ctx.exns, Arg: arg, Datatype: exn.Datatype}
		env = env.BindValue(c.Name, &ValueEntry{Scheme: cons[i].Scheme(), Status: ExceptionId, Con: cons[i]})
	}
	return &ir.Exception{Span: d.Span, Constructors: cons}, env, nil
}

// `local d1 in d2 end`
func (ctx *Context) elabLocal(env *Env, level int, d *ast.Local) (ir.Decl, *Env, []ir.Binding, error) {
	out := &ir.Local{Span: d.Span}
	inner := env.Scope()
	for _, decl := range d.Decls {
		typed, next, _, err := ctx.elabDecl(inner, level, decl)
		if err != nil {
			return nil, nil, nil, err
		}
		if typed != nil {
			out.Decls = append(out.Decls, typed)
		}
		inner = next
	}
	body := inner.Scope()
	var bindings []ir.Binding
	for _, decl := range d.Body {
		typed, next, bs, err := ctx.elabDecl(body, level, decl)
		if err != nil {
			return nil, nil, nil, err
		}
		if typed != nil {
			out.Body = append(out.Body, typed)
		}
		body, bindings = next, append(bindings, bs...)
	}
	return out, env.Import(body), bindings, nil
}
