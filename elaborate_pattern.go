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

// Variable bound by a pattern, with its monomorphic type.
type patVar struct {
	name string
	t    types.Type
}

type patVars []patVar

func (vs *patVars) add(span ast.Span, name string, t types.Type) error {
	for _, v := range *vs {
		if v.name == name {
			return diag.Errorf(diag.InvalidPattern, span, "Variable "+name+" is bound more than once in a pattern")
		}
	}
	*vs = append(*vs, patVar{name, t})
	return nil
}

// bind adds the variables to env as monomorphic values.
func (vs patVars) bind(env *Env) *Env {
	for _, v := range vs {
		env = env.Bind(v.name, types.Mono(v.t))
	}
	return env
}

func literalType(kind ast.LiteralKind) types.Type {
	switch kind {
	case ast.RealLit:
		return types.Real
	case ast.StringLit:
		return types.String
	case ast.CharLit:
		return types.Char
	}
	return types.Int
}

// lookupCon finds a constructor by name.
func lookupCon(env *Env, span ast.Span, name string) (*ValueEntry, error) {
	entry, ok := env.LookupValue(name)
	if !ok || !entry.IsConstructor() {
		return nil, diag.Errorf(diag.UnboundIdentifier, span, "Unbound constructor "+name)
	}
	return entry, nil
}

// elabPattern types p at level, appending the variables it binds to vars.
func (ctx *Context) elabPattern(env *Env, level int, p ast.Pattern, vars *patVars) (ir.Pattern, error) {
	span := p.Loc()
	switch p := p.(type) {
	case *ast.Wildcard:
		return &ir.Wildcard{Typed: ir.Typed{Span: span, T: ctx.common.NewVar(level)}}, nil

	case *ast.PatVar:
		if entry, ok := env.LookupValue(p.Name); ok && entry.IsConstructor() {
			return ctx.elabConPattern(env, level, span, entry, nil)
		}
		tv := ctx.common.NewVar(level)
		if err := vars.add(span, p.Name, tv); err != nil {
			return nil, err
		}
		return &ir.PatVar{Typed: ir.Typed{Span: span, T: tv}, Name: p.Name}, nil

	case *ast.PatLiteral:
		if p.Kind == ast.RealLit {
			return nil, diag.Errorf(diag.InvalidPattern, span, "Real constants cannot be matched")
		}
		return &ir.PatLiteral{Typed: ir.Typed{Span: span, T: literalType(p.Kind)}, Kind: p.Kind, Value: p.Value}, nil

	case *ast.PatCon:
		entry, err := lookupCon(env, span, p.Name)
		if err != nil {
			return nil, err
		}
		return ctx.elabConPattern(env, level, span, entry, func() (ir.Pattern, error) {
			if p.Arg == nil {
				return nil, nil
			}
			return ctx.elabPattern(env, level, p.Arg, vars)
		})

	case *ast.PatTuple:
		if len(p.Elems) == 1 {
			return ctx.elabPattern(env, level, p.Elems[0], vars)
		}
		elems := make([]ir.Pattern, len(p.Elems))
		elemTypes := make([]types.Type, len(p.Elems))
		for i, elem := range p.Elems {
			ep, err := ctx.elabPattern(env, level, elem, vars)
			if err != nil {
				return nil, err
			}
			elems[i], elemTypes[i] = ep, ep.Type()
		}
		return &ir.PatTuple{Typed: ir.Typed{Span: span, T: types.NewTuple(elemTypes...)}, Elems: elems}, nil

	case *ast.PatRecord:
		labels := types.NewTypeMapBuilder()
		fields := make([]ir.PatField, len(p.Fields))
		for i, f := range p.Fields {
			if _, dup := labels.Get(f.Label); dup {
				return nil, diag.Errorf(diag.InvalidPattern, span, "Duplicate label "+f.Label+" in record pattern")
			}
			fp, err := ctx.elabPattern(env, level, f.Pattern, vars)
			if err != nil {
				return nil, err
			}
			labels.Set(f.Label, fp.Type())
			fields[i] = ir.PatField{Label: f.Label, Pattern: fp}
		}
		var row types.Type
		if p.Flexible {
			row = ctx.common.NewVar(level)
		}
		t := types.NewRecord(labels.Build(), row)
		return &ir.PatRecord{Typed: ir.Typed{Span: span, T: t}, Fields: fields, Flexible: p.Flexible}, nil

	case *ast.PatAs:
		if env.IsConstructor(p.Name) {
			return nil, diag.Errorf(diag.InvalidPattern, span, "Constructor "+p.Name+" cannot be bound by a layered pattern")
		}
		inner, err := ctx.elabPattern(env, level, p.Pattern, vars)
		if err != nil {
			return nil, err
		}
		if err := vars.add(span, p.Name, inner.Type()); err != nil {
			return nil, err
		}
		return &ir.PatAs{Typed: ir.Typed{Span: span, T: inner.Type()}, Name: p.Name, Pattern: inner}, nil

	case *ast.PatList:
		return ctx.elabListPattern(env, level, span, p.Elems, vars)

	case *ast.PatConstraint:
		inner, err := ctx.elabPattern(env, level, p.Pattern, vars)
		if err != nil {
			return nil, err
		}
		t, err := ctx.elabType(env, level, p.Type, nil)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(span, t, inner.Type()); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, diag.Errorf(diag.Internal, span, "Unknown pattern")
}

// elabConPattern instantiates a constructor and types its argument pattern, if any.
func (ctx *Context) elabConPattern(env *Env, level int, span ast.Span, entry *ValueEntry, arg func() (ir.Pattern, error)) (ir.Pattern, error) {
	con := entry.Con
	t := ctx.common.Instantiate(level, entry.Scheme)
	var argPat ir.Pattern
	if arg != nil {
		var err error
		if argPat, err = arg(); err != nil {
			return nil, err
		}
	}
	switch {
	case con.HasArg() && argPat == nil:
		return nil, diag.Errorf(diag.InvalidPattern, span, "Constructor "+con.Name+" requires an argument")
	case !con.HasArg() && argPat != nil:
		return nil, diag.Errorf(diag.InvalidPattern, span, "Constructor "+con.Name+" does not take an argument")
	case !con.HasArg():
		return &ir.PatCon{Typed: ir.Typed{Span: span, T: t}, Con: con}, nil
	}
	arrow := types.RealType(t).(*types.Arrow)
	if err := ctx.unify(argPat.Loc(), arrow.Arg, argPat.Type()); err != nil {
		return nil, err
	}
	return &ir.PatCon{Typed: ir.Typed{Span: span, T: arrow.Return}, Con: con, Arg: argPat}, nil
}

// elabListPattern desugars `[a, b]` into `a :: b :: nil`.
func (ctx *Context) elabListPattern(env *Env, level int, span ast.Span, elems []ast.Pattern, vars *patVars) (ir.Pattern, error) {
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
	heads := make([]ir.Pattern, len(elems))
	for i, elem := range elems {
		hp, err := ctx.elabPattern(env, level, elem, vars)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(hp.Loc(), elemType, hp.Type()); err != nil {
			return nil, err
		}
		heads[i] = hp
	}
	var tail ir.Pattern = &ir.PatCon{Typed: ir.Typed{Span: span, T: listType}, Con: nilEntry.Con}
	for i := len(heads) - 1; i >= 0; i-- {
		pair := &ir.PatTuple{Typed: ir.Typed{Span: heads[i].Loc(), T: types.NewTuple(elemType, listType)}, Elems: []ir.Pattern{heads[i], tail}}
		tail = &ir.PatCon{Typed: ir.Typed{Span: heads[i].Loc(), T: listType}, Con: consEntry.Con, Arg: pair}
	}
	return tail, nil
}
