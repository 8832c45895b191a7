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
	"github.com/wdamron/elab/types"
)

// prelude allocates negative ids for its generic type-variables, so they never collide with
// type-variables allocated during elaboration.
type prelude struct {
	env    *Env
	nextId int
	exns   int
}

func (p *prelude) generic() *types.Var {
	p.nextId--
	return types.NewGenericVar(p.nextId)
}

func (p *prelude) prim(name string) {
	p.env = p.env.BindType(name, &TypeEntry{Name: name})
}

func (p *prelude) datatype(name string, arity int, open bool) *types.Datatype {
	dt := &types.Datatype{Name: name, Open: open}
	for i := 0; i < arity; i++ {
		dt.Params = append(dt.Params, p.generic())
	}
	p.env = p.env.BindType(name, &TypeEntry{Name: name, Arity: arity, Datatype: dt})
	return dt
}

func (p *prelude) constructor(dt *types.Datatype, name string, arg types.Type) {
	if arg != nil {
		types.Generalize(types.TopLevel, arg)
	}
	c := dt.AddConstructor(name, arg)
	p.env = p.env.BindValue(name, &ValueEntry{Scheme: c.Scheme(), Status: ConstructorId, Con: c})
}

func (p *prelude) exception(exn *types.Datatype, name string, arg types.Type) {
	c := &types.Constructor{Name: name, Tag: p.exns, Arg: arg, Datatype: exn}
	p.exns++
	p.env = p.env.BindValue(name, &ValueEntry{Scheme: c.Scheme(), Status: ExceptionId, Con: c})
}

func (p *prelude) value(name string, t types.Type) {
	p.env = p.env.Bind(name, types.Generalize(types.TopLevel, t))
}

// NewEnv creates an environment containing the prelude: the primitive types, the bool, list,
// option, order and ref datatypes, the exceptions Match, Bind, Div and Fail, and arithmetic,
// comparison, string and reference operators over int and string.
//
// Each call creates a distinct prelude, so environments created by separate calls may be used
// concurrently.
func NewEnv() *Env {
	p := &prelude{env: NewEmptyEnv()}
	for _, prim := range []*types.Const{types.Int, types.Real, types.String, types.Char} {
		p.prim(prim.Name)
	}
	p.env = p.env.BindType("unit", &TypeEntry{Name: "unit", Alias: types.Unit})

	exn := p.datatype("exn", 0, true)

	boolean := p.datatype("bool", 0, false)
	p.constructor(boolean, "false", nil)
	p.constructor(boolean, "true", nil)

	list := p.datatype("list", 1, false)
	a := list.Params[0]
	p.constructor(list, "nil", nil)
	p.constructor(list, "::", types.NewTuple(a, types.NewList(a)))

	ref := p.datatype("ref", 1, false)
	p.constructor(ref, "ref", ref.Params[0])

	option := p.datatype("option", 1, false)
	p.constructor(option, "NONE", nil)
	p.constructor(option, "SOME", option.Params[0])

	order := p.datatype("order", 0, false)
	p.constructor(order, "LESS", nil)
	p.constructor(order, "EQUAL", nil)
	p.constructor(order, "GREATER", nil)

	p.exception(exn, "Match", nil)
	p.exception(exn, "Bind", nil)
	p.exception(exn, "Div", nil)
	p.exception(exn, "Fail", types.String)

	intPair := types.NewTuple(types.Int, types.Int)
	for _, op := range []string{"+", "-", "*", "div", "mod"} {
		p.value(op, types.NewArrow(intPair, types.Int))
	}
	for _, op := range []string{"<", ">", "<=", ">="} {
		p.value(op, types.NewArrow(intPair, types.Bool))
	}
	p.value("~", types.NewArrow(types.Int, types.Int))
	p.value("compare", types.NewArrow(intPair, order.Type()))
	for _, op := range []string{"=", "<>"} {
		eq := p.generic()
		p.value(op, types.NewArrow(types.NewTuple(eq, eq), types.Bool))
	}
	p.value("^", types.NewArrow(types.NewTuple(types.String, types.String), types.String))
	p.value("size", types.NewArrow(types.String, types.Int))
	p.value("print", types.NewArrow(types.String, types.Unit))
	p.value("not", types.NewArrow(types.Bool, types.Bool))
	p.value("real", types.NewArrow(types.Int, types.Real))
	p.value("floor", types.NewArrow(types.Real, types.Int))

	deref := p.generic()
	p.value("!", types.NewArrow(types.NewRef(deref), deref))
	assign := p.generic()
	p.value(":=", types.NewArrow(types.NewTuple(types.NewRef(assign), assign), types.Unit))

	return p.env
}
