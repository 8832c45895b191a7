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

package types

import (
	"errors"
)

// Binding-level of the outermost scope.
const TopLevel = 0

// Type is the base interface for all types.
type Type interface {
	TypeName() string
	IsGeneric() bool
}

var (
	_ Type = (*Var)(nil)
	_ Type = (*Const)(nil)
	_ Type = (*Arrow)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*RowExtend)(nil)
	_ Type = RowEmpty{}
)

// TypeFlags are attached to composite types during generalization.
type TypeFlags uint8

const (
	// The type contains generic type-variables and must be instantiated before unification.
	ContainsGenericVars TypeFlags = 1 << iota
)

func (t *Var) TypeName() string       { return "Var" }
func (t *Const) TypeName() string     { return "Const" }
func (t *Arrow) TypeName() string     { return "Arrow" }
func (t *Tuple) TypeName() string     { return "Tuple" }
func (t *Record) TypeName() string    { return "Record" }
func (t *RowExtend) TypeName() string { return "RowExtend" }
func (t RowEmpty) TypeName() string   { return "RowEmpty" }

func (t *Var) IsGeneric() bool {
	r := RealType(t)
	if tv, ok := r.(*Var); ok {
		return tv.IsGenericVar()
	}
	return r.IsGeneric()
}

func (t *Const) IsGeneric() bool     { return t.Flags&ContainsGenericVars != 0 }
func (t *Arrow) IsGeneric() bool     { return t.Flags&ContainsGenericVars != 0 }
func (t *Tuple) IsGeneric() bool     { return t.Flags&ContainsGenericVars != 0 }
func (t *Record) IsGeneric() bool    { return t.Flags&ContainsGenericVars != 0 }
func (t *RowExtend) IsGeneric() bool { return t.Flags&ContainsGenericVars != 0 }
func (t RowEmpty) IsGeneric() bool   { return false }

// Applied type constructor: `int`, `'a list`, `(int, string) pair`
type Const struct {
	Name  string
	Args  []Type
	Flags TypeFlags
}

// Function type: `int -> bool`
type Arrow struct {
	Arg    Type
	Return Type
	Flags  TypeFlags
}

// Product type: `int * bool`. The empty tuple is `unit`.
type Tuple struct {
	Elems []Type
	Flags TypeFlags
}

// Record type: `{x: int, y: bool}`. A record is rigid when its row ends in RowEmpty,
// and flexible when its row ends in an unbound type-variable.
type Record struct {
	Row   Type
	Flags TypeFlags
}

// Row extension: `x: int, y: bool | row`
type RowExtend struct {
	Row    Type
	Labels TypeMap
	Flags  TypeFlags
}

// Empty row; terminates a rigid record.
type RowEmpty struct{}

// Primitive types. Nullary constants are shared.
var (
	Int    = &Const{Name: "int"}
	Real   = &Const{Name: "real"}
	Bool   = &Const{Name: "bool"}
	String = &Const{Name: "string"}
	Char   = &Const{Name: "char"}
	Exn    = &Const{Name: "exn"}
	Unit   = &Tuple{}
)

// NewConst creates an applied type constructor.
func NewConst(name string, args ...Type) *Const {
	if len(args) == 0 {
		return &Const{Name: name}
	}
	return &Const{Name: name, Args: args}
}

// NewArrow creates a function type.
func NewArrow(arg, ret Type) *Arrow { return &Arrow{Arg: arg, Return: ret} }

// NewArrows creates a curried function type: `a -> b -> ret`.
func NewArrows(args []Type, ret Type) Type {
	t := ret
	for i := len(args) - 1; i >= 0; i-- {
		t = &Arrow{Arg: args[i], Return: t}
	}
	return t
}

// NewTuple creates a product type. A single element is returned as-is.
func NewTuple(elems ...Type) Type {
	switch len(elems) {
	case 0:
		return Unit
	case 1:
		return elems[0]
	}
	return &Tuple{Elems: elems}
}

// NewList creates the type `elem list`.
func NewList(elem Type) *Const { return &Const{Name: "list", Args: []Type{elem}} }

// NewRef creates the type `elem ref`.
func NewRef(elem Type) *Const { return &Const{Name: "ref", Args: []Type{elem}} }

// IsRefType returns true if t is a mutable reference-type.
func IsRefType(t Type) bool {
	c, ok := RealType(t).(*Const)
	return ok && c.Name == "ref" && len(c.Args) == 1
}

// NewRecord creates a record type with the given labels. If row is nil, the record is rigid.
func NewRecord(labels TypeMap, row Type) *Record {
	if row == nil {
		row = RowEmpty{}
	}
	if labels.Len() == 0 {
		return &Record{Row: row}
	}
	return &Record{Row: &RowExtend{Row: row, Labels: labels}}
}

// Get the underlying type for a chain of linked type-variables, when applicable.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || !tv.IsLinkVar() {
			return t
		}
		t = tv.Link()
	}
}

// Flatten row extensions into a single row. Labels of outer extensions precede labels of
// inner extensions.
func FlattenRowType(t Type) (labels TypeMap, row Type, err error) {
	b := NewTypeMapBuilder()
	row, err = flattenRowType(&b, t)
	if err == nil {
		labels = b.Build()
	}
	return
}

func flattenRowType(labels *TypeMapBuilder, t Type) (Type, error) {
	switch t := t.(type) {
	case *RowExtend:
		t.Labels.Range(func(label string, lt Type) bool {
			labels.Set(label, lt)
			return true
		})
		return flattenRowType(labels, t.Row)
	case *Var:
		if t.IsLinkVar() {
			return flattenRowType(labels, t.Link())
		}
		return t, nil
	case RowEmpty:
		return t, nil
	default:
		return t, errors.New("Not a row type")
	}
}
