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
	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/elab/types"
)

// Identifier status of a value binding.
type IdStatus uint8

const (
	// Ordinary value
	ValueId IdStatus = iota
	// Datatype constructor
	ConstructorId
	// Exception constructor
	ExceptionId
)

// ValueEntry is the declared type scheme of an identifier.
type ValueEntry struct {
	Scheme *types.Scheme
	Status IdStatus
	// Con is set for constructors and exceptions.
	Con *types.Constructor
}

// IsConstructor returns true for datatype and exception constructors.
func (v *ValueEntry) IsConstructor() bool { return v.Status != ValueId }

// TypeEntry is a declared type constructor: a primitive, a datatype or an abbreviation.
type TypeEntry struct {
	Name  string
	Arity int
	// Datatype is set for datatypes (including bool, list and exn).
	Datatype *types.Datatype
	// Alias is set for type abbreviations; Params are its generic parameters.
	Alias  types.Type
	Params []*types.Var
}

// Env is a persistent, scope-chained environment mapping identifiers to type schemes and type
// names to type constructors.
//
// Binding returns a new environment and never modifies the receiver, so an environment may be
// shared freely between branches of a single elaboration run. Schemes within an environment
// contain mutable type-variables; concurrent runs must not share environments containing
// unresolved (weak) type-variables.
type Env struct {
	parent *Env
	values *immutable.Map // string -> *ValueEntry
	types  *immutable.Map // string -> *TypeEntry
}

var emptyFrame = immutable.NewMap(nil)

// NewEmptyEnv creates an environment without any bindings. See NewEnv for an environment
// containing the prelude.
func NewEmptyEnv() *Env { return &Env{values: emptyFrame, types: emptyFrame} }

// Scope returns an empty child scope of e.
func (e *Env) Scope() *Env { return &Env{parent: e, values: emptyFrame, types: emptyFrame} }

// Parent returns the enclosing scope of e, or nil.
func (e *Env) Parent() *Env { return e.parent }

// BindValue returns an environment with name bound to v in the current scope.
func (e *Env) BindValue(name string, v *ValueEntry) *Env {
	return &Env{parent: e.parent, values: e.values.Set(name, v), types: e.types}
}

// Bind returns an environment with name bound to an ordinary value of the given scheme.
func (e *Env) Bind(name string, s *types.Scheme) *Env {
	return e.BindValue(name, &ValueEntry{Scheme: s})
}

// BindType returns an environment with name bound to t in the current scope.
func (e *Env) BindType(name string, t *TypeEntry) *Env {
	return &Env{parent: e.parent, values: e.values, types: e.types.Set(name, t)}
}

// LookupValue finds the innermost binding of an identifier.
func (e *Env) LookupValue(name string) (*ValueEntry, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values.Get(name); ok {
			return v.(*ValueEntry), true
		}
	}
	return nil, false
}

// Lookup finds the type scheme of an identifier.
func (e *Env) Lookup(name string) (*types.Scheme, bool) {
	v, ok := e.LookupValue(name)
	if !ok {
		return nil, false
	}
	return v.Scheme, true
}

// LookupType finds the innermost binding of a type name.
func (e *Env) LookupType(name string) (*TypeEntry, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.types.Get(name); ok {
			return t.(*TypeEntry), true
		}
	}
	return nil, false
}

// IsConstructor returns true if name refers to a constructor in e.
func (e *Env) IsConstructor(name string) bool {
	v, ok := e.LookupValue(name)
	return ok && v.IsConstructor()
}

// Import returns an environment with the bindings in the current scope of other added to the
// current scope of e.
func (e *Env) Import(other *Env) *Env {
	values, tys := e.values, e.types
	for itr := other.values.Iterator(); !itr.Done(); {
		k, v := itr.Next()
		values = values.Set(k, v)
	}
	for itr := other.types.Iterator(); !itr.Done(); {
		k, v := itr.Next()
		tys = tys.Set(k, v)
	}
	return &Env{parent: e.parent, values: values, types: tys}
}

// FreeVars returns the ids of all unbound type-variables reachable from schemes in e.
func (e *Env) FreeVars() *set.Set[int] {
	vars := set.New[int](8)
	for env := e; env != nil; env = env.parent {
		for itr := env.values.Iterator(); !itr.Done(); {
			_, v := itr.Next()
			types.FreeVars(v.(*ValueEntry).Scheme.Type, vars)
		}
	}
	return vars
}

// Len returns the number of value bindings visible in e, counting shadowed bindings.
func (e *Env) Len() int {
	n := 0
	for env := e; env != nil; env = env.parent {
		n += env.values.Len()
	}
	return n
}
