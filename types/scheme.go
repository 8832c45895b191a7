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

// Scheme is a type quantified over its generic type-variables: `forall 'a 'b. 'a -> 'b`.
type Scheme struct {
	// Bound contains the generic type-variables of Type, in order of first occurrence.
	Bound []*Var
	Type  Type
}

// Mono wraps a type without quantifying any type-variables.
func Mono(t Type) *Scheme { return &Scheme{Type: t} }

// IsMono returns true if the scheme does not quantify any type-variables.
func (s *Scheme) IsMono() bool { return len(s.Bound) == 0 }

// Datatype describes a declared sum type and its constructors.
type Datatype struct {
	Name string
	// Generic type-variables for the type parameters, in declaration order.
	Params       []*Var
	Constructors []*Constructor
	// Open datatypes (exn) may be extended with new constructors at any point, so a
	// match over them is never complete without a default.
	Open bool
}

// Constructor returns the constructor with the given name, or nil.
func (dt *Datatype) Constructor(name string) *Constructor {
	for _, c := range dt.Constructors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Type returns the datatype applied to its own generic parameters.
func (dt *Datatype) Type() *Const {
	args := make([]Type, len(dt.Params))
	for i, p := range dt.Params {
		args[i] = p
	}
	c := NewConst(dt.Name, args...)
	if len(args) > 0 {
		c.Flags |= ContainsGenericVars
	}
	return c
}

// AddConstructor appends a constructor to the datatype and assigns its tag.
func (dt *Datatype) AddConstructor(name string, arg Type) *Constructor {
	c := &Constructor{Name: name, Tag: len(dt.Constructors), Arg: arg, Datatype: dt}
	dt.Constructors = append(dt.Constructors, c)
	return c
}

// Constructor of a datatype. Arg is nil for nullary constructors; otherwise it may contain
// the datatype's generic parameters.
type Constructor struct {
	Name     string
	Tag      int
	Arg      Type
	Datatype *Datatype
}

// HasArg returns true if the constructor carries a value.
func (c *Constructor) HasArg() bool { return c.Arg != nil }

// Scheme returns the type scheme of the constructor when used as a value:
// `forall params. arg -> T params`, or `forall params. T params` when nullary.
func (c *Constructor) Scheme() *Scheme {
	dt := c.Datatype
	var t Type = dt.Type()
	if c.Arg != nil {
		arrow := &Arrow{Arg: c.Arg, Return: t}
		if len(dt.Params) > 0 {
			arrow.Flags |= ContainsGenericVars
		}
		t = arrow
	}
	return &Scheme{Bound: dt.Params, Type: t}
}
