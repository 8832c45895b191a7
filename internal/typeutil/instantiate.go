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

package typeutil

import (
	"github.com/wdamron/elab/types"
)

// Instantiate replaces the generic type-variables of s with fresh type-variables at the given level.
// The scheme is not modified; non-generic sub-types are shared with the result.
func (ctx *CommonContext) Instantiate(level int, s *types.Scheme) types.Type {
	if s.IsMono() {
		return s.Type
	}
	return ctx.InstantiateType(level, s.Type)
}

// InstantiateType replaces all generic type-variables within t with fresh type-variables.
func (ctx *CommonContext) InstantiateType(level int, t types.Type) types.Type {
	// Path compression:
	t = types.RealType(t)
	// Non-generic types can be shared:
	if !t.IsGeneric() {
		return t
	}
	t = ctx.visitInstantiate(level, t)
	ctx.ClearInstantiationLookup()
	return t
}

// InstantiateWith substitutes args for the generic type-parameters params within body.
// Generic type-variables of body which are not parameters are replaced with fresh type-variables.
func (ctx *CommonContext) InstantiateWith(level int, params []*types.Var, args []types.Type, body types.Type) types.Type {
	body = types.RealType(body)
	if !body.IsGeneric() {
		return body
	}
	for i, p := range params {
		ctx.InstLookup[p.Id()] = args[i]
	}
	t := ctx.visitInstantiate(level, body)
	ctx.ClearInstantiationLookup()
	return t
}

func (ctx *CommonContext) visitInstantiate(level int, t types.Type) types.Type {
	// Path compression:
	t = types.RealType(t)

	// Non-generic types can be shared:
	if !t.IsGeneric() {
		return t
	}

	switch t := t.(type) {
	case *types.Var:
		if inst, ok := ctx.InstLookup[t.Id()]; ok {
			return inst
		}
		next := ctx.VarTracker.New(level)
		ctx.InstLookup[t.Id()] = next
		return next

	case *types.Const:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = ctx.visitInstantiate(level, arg)
		}
		return &types.Const{Name: t.Name, Args: args}

	case *types.Arrow:
		return &types.Arrow{Arg: ctx.visitInstantiate(level, t.Arg), Return: ctx.visitInstantiate(level, t.Return)}

	case *types.Tuple:
		elems := make([]types.Type, len(t.Elems))
		for i, elem := range t.Elems {
			elems[i] = ctx.visitInstantiate(level, elem)
		}
		return &types.Tuple{Elems: elems}

	case *types.Record:
		return &types.Record{Row: ctx.visitInstantiate(level, t.Row)}

	case *types.RowExtend:
		m := t.Labels
		// if the labels don't contain generic types, they don't need to be copied:
		var mb types.TypeMapBuilder
		needsRebuild := false
		m.Range(func(label string, lt types.Type) bool {
			if types.RealType(lt).IsGeneric() {
				needsRebuild = true
				return false
			}
			return true
		})
		if needsRebuild {
			m.Range(func(label string, lt types.Type) bool {
				mb.Set(label, ctx.visitInstantiate(level, lt))
				return true
			})
			m = mb.Build()
		}
		return &types.RowExtend{Row: ctx.visitInstantiate(level, t.Row), Labels: m}
	}
	panic("unexpected generic type " + t.TypeName())
}
