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
	"strconv"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/types"
)

// elabType converts a type expression. When params is non-nil, type-variables must be among
// params (datatype and abbreviation bodies); otherwise they are scoped to the enclosing value
// declaration.
func (ctx *Context) elabType(env *Env, level int, t ast.TypeExpr, params map[string]*types.Var) (types.Type, error) {
	switch t := t.(type) {
	case *ast.TyVar:
		if params != nil {
			if tv, ok := params[t.Name]; ok {
				return tv, nil
			}
			return nil, diag.Errorf(diag.UnboundType, t.Loc(), "Unbound type-variable "+t.Name)
		}
		if tv, ok := ctx.tyvars[t.Name]; ok {
			return tv, nil
		}
		tv := ctx.common.NewVar(ctx.tyvarLevel)
		ctx.tyvars[t.Name] = tv
		return tv, nil

	case *ast.TyCon:
		entry, ok := env.LookupType(t.Name)
		if !ok {
			return nil, diag.Errorf(diag.UnboundType, t.Loc(), "Unbound type constructor "+t.Name)
		}
		if len(t.Args) != entry.Arity {
			return nil, diag.Errorf(diag.ArityMismatch, t.Loc(), "Type constructor "+t.Name+" expects "+
				strconv.Itoa(entry.Arity)+" argument(s), found "+strconv.Itoa(len(t.Args)))
		}
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			at, err := ctx.elabType(env, level, arg, params)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		if entry.Alias != nil {
			if len(args) == 0 {
				return entry.Alias, nil
			}
			return ctx.common.InstantiateWith(level, entry.Params, args, entry.Alias), nil
		}
		return types.NewConst(entry.Name, args...), nil

	case *ast.TyArrow:
		arg, err := ctx.elabType(env, level, t.Arg, params)
		if err != nil {
			return nil, err
		}
		ret, err := ctx.elabType(env, level, t.Return, params)
		if err != nil {
			return nil, err
		}
		return types.NewArrow(arg, ret), nil

	case *ast.TyTuple:
		elems := make([]types.Type, len(t.Elems))
		for i, elem := range t.Elems {
			et, err := ctx.elabType(env, level, elem, params)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return types.NewTuple(elems...), nil

	case *ast.TyRecord:
		labels := types.NewTypeMapBuilder()
		for _, f := range t.Fields {
			if _, dup := labels.Get(f.Label); dup {
				return nil, diag.Errorf(diag.TypeMismatch, t.Loc(), "Duplicate label "+f.Label+" in record type")
			}
			ft, err := ctx.elabType(env, level, f.Type, params)
			if err != nil {
				return nil, err
			}
			labels.Set(f.Label, ft)
		}
		return types.NewRecord(labels.Build(), nil), nil
	}
	return nil, diag.Errorf(diag.Internal, ast.Span{}, "Unknown type expression")
}

// typeParams allocates generic type-variables for the parameters of a datatype or abbreviation.
func (ctx *Context) typeParams(span ast.Span, names []string) ([]*types.Var, map[string]*types.Var, error) {
	vars := make([]*types.Var, len(names))
	lookup := make(map[string]*types.Var, len(names))
	for i, name := range names {
		if _, dup := lookup[name]; dup {
			return nil, nil, diag.Errorf(diag.InvalidPattern, span, "Duplicate type parameter "+name)
		}
		tv := ctx.common.NewVar(types.TopLevel)
		tv.SetGeneric()
		vars[i], lookup[name] = tv, tv
	}
	return vars, lookup, nil
}
