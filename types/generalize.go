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
	"github.com/hashicorp/go-set/v2"
)

// Generalize all unbound type-variables in t whose binding-level is greater than level.
//
// See "Efficient Generalization with Levels" (Oleg Kiselyov) -- http://okmij.org/ftp/ML/generalization.html#levels
//
// Type-variables are generalized in place; composite types containing generic type-variables
// are flagged so they will be copied during instantiation.
func Generalize(level int, t Type) *Scheme {
	g := generalizer{level: level, seen: set.New[int](8)}
	t = RealType(t)
	g.visit(t)
	return &Scheme{Bound: g.bound, Type: t}
}

type generalizer struct {
	level int
	seen  *set.Set[int]
	bound []*Var
}

// returns the number of generic type-variables found within t
func (g *generalizer) visit(t Type) int {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			return g.visit(t.Link())
		case t.IsUnboundVar():
			if t.Level() <= g.level {
				return 0
			}
			t.SetGeneric()
		}
		if g.seen.Insert(t.Id()) {
			g.bound = append(g.bound, t)
		}
		return 1

	case *Const:
		n := 0
		for i, arg := range t.Args {
			t.Args[i] = RealType(arg)
			n += g.visit(t.Args[i])
		}
		if n > 0 {
			t.Flags |= ContainsGenericVars
		}
		return n

	case *Arrow:
		t.Arg, t.Return = RealType(t.Arg), RealType(t.Return)
		n := g.visit(t.Arg) + g.visit(t.Return)
		if n > 0 {
			t.Flags |= ContainsGenericVars
		}
		return n

	case *Tuple:
		n := 0
		for i, elem := range t.Elems {
			t.Elems[i] = RealType(elem)
			n += g.visit(t.Elems[i])
		}
		if n > 0 {
			t.Flags |= ContainsGenericVars
		}
		return n

	case *Record:
		t.Row = RealType(t.Row)
		n := g.visit(t.Row)
		if n > 0 {
			t.Flags |= ContainsGenericVars
		}
		return n

	case *RowExtend:
		n := 0
		t.Labels.Range(func(label string, lt Type) bool {
			n += g.visit(lt)
			return true
		})
		t.Row = RealType(t.Row)
		n += g.visit(t.Row)
		if n > 0 {
			t.Flags |= ContainsGenericVars
		}
		return n
	}
	return 0
}

// Restrict lowers the binding-level of all unbound type-variables in t to level, so that
// they will not be generalized by a binding at level or any deeper binding.
func Restrict(level int, t Type) {
	VisitVars(t, func(tv *Var) {
		if tv.IsUnboundVar() && tv.Level() > level {
			tv.SetLevel(level)
		}
	})
}

// FreeVars adds the ids of all unbound type-variables in t to vars.
func FreeVars(t Type, vars *set.Set[int]) {
	VisitVars(t, func(tv *Var) {
		if tv.IsUnboundVar() {
			vars.Insert(tv.Id())
		}
	})
}

// VisitVars calls f for each unbound or generic type-variable reachable from t.
func VisitVars(t Type, f func(*Var)) {
	switch t := t.(type) {
	case *Var:
		if t.IsLinkVar() {
			VisitVars(t.Link(), f)
			return
		}
		f(t)
	case *Const:
		for _, arg := range t.Args {
			VisitVars(arg, f)
		}
	case *Arrow:
		VisitVars(t.Arg, f)
		VisitVars(t.Return, f)
	case *Tuple:
		for _, elem := range t.Elems {
			VisitVars(elem, f)
		}
	case *Record:
		VisitVars(t.Row, f)
	case *RowExtend:
		t.Labels.Range(func(label string, lt Type) bool {
			VisitVars(lt, f)
			return true
		})
		VisitVars(t.Row, f)
	}
}
