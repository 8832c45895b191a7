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
	"testing"

	"github.com/hashicorp/go-set/v2"
)

func TestGeneralizeLevels(t *testing.T) {
	outer, inner := NewVar(1, 1), NewVar(2, 2)
	fn := NewArrow(outer, NewTuple(inner, inner))

	s := Generalize(1, fn)
	if len(s.Bound) != 1 || s.Bound[0] != inner {
		t.Fatalf("expected only the inner type-variable to be generalized, found %d", len(s.Bound))
	}
	if !outer.IsUnboundVar() || !inner.IsGenericVar() {
		t.Fatalf("unexpected type-variable states")
	}
	if !fn.IsGeneric() || !fn.Return.IsGeneric() {
		t.Fatalf("expected generic flags on composite types")
	}
	if str := TypeString(s.Type); str != "'_a -> 'a * 'a" {
		t.Fatalf("type: %s", str)
	}
}

func TestGeneralizeFollowsLinks(t *testing.T) {
	a, b := NewVar(1, 2), NewVar(2, 2)
	a.SetLink(NewList(b))
	s := Generalize(1, NewArrow(a, Int))
	if len(s.Bound) != 1 || s.Bound[0] != b {
		t.Fatalf("expected linked type-variable to be generalized")
	}
	if str := TypeString(s.Type); str != "'a list -> int" {
		t.Fatalf("type: %s", str)
	}
}

func TestRestrict(t *testing.T) {
	a := NewVar(1, 3)
	ref := NewRef(NewList(a))
	Restrict(1, ref)
	if a.Level() != 1 {
		t.Fatalf("expected level 1, found %d", a.Level())
	}
	if s := Generalize(1, ref); len(s.Bound) != 0 {
		t.Fatalf("restricted type-variables must not be generalized")
	}
}

func TestFreeVars(t *testing.T) {
	a, b, g := NewVar(1, 1), NewVar(2, 1), NewGenericVar(3)
	r := NewRecord(SingletonTypeMap("x", a), b)
	vars := set.New[int](4)
	FreeVars(NewArrow(r, g), vars)
	if vars.Size() != 2 || !vars.Contains(1) || !vars.Contains(2) {
		t.Fatalf("free vars: %v", vars.Slice())
	}
}
