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
)

func TestTypeString(t *testing.T) {
	a, b := NewGenericVar(1), NewGenericVar(2)
	u := NewVar(3, 1)

	record := NewRecord(NewTypeMap().
		Set("x", Int).
		Set("y", Bool).
		Set("c", String).
		Set("d", NewRef(Int)), nil)

	flex := NewRecord(SingletonTypeMap("x", Int), NewVar(4, 1))

	cases := []struct {
		t    Type
		want string
	}{
		{Int, "int"},
		{Unit, "unit"},
		{NewList(Int), "int list"},
		{NewList(NewList(Bool)), "bool list list"},
		{NewTuple(Int, Bool), "int * bool"},
		{NewList(NewTuple(Int, Bool)), "(int * bool) list"},
		{NewArrow(a, b), "'a -> 'b"},
		{NewArrow(NewArrow(a, b), NewArrow(NewList(a), NewList(b))), "('a -> 'b) -> 'a list -> 'b list"},
		{NewTuple(NewArrow(a, a), Int), "('a -> 'a) * int"},
		{NewConst("pair", Int, String), "(int, string) pair"},
		{NewRef(u), "'_a ref"},
		{NewArrow(u, a), "'_a -> 'a"},
		{record, "{x: int, y: bool, c: string, d: int ref}"},
		{flex, "{x: int, ...}"},
		{NewRecord(EmptyTypeMap, nil), "{}"},
	}
	for _, c := range cases {
		if s := TypeString(c.t); s != c.want {
			t.Fatalf("expected %s, found %s", c.want, s)
		}
	}
}

func TestTypeStringLinks(t *testing.T) {
	tv := NewVar(1, 1)
	tv.SetLink(NewList(String))
	if s := TypeString(NewArrow(tv, tv)); s != "string list -> string list" {
		t.Fatalf("type: %s", s)
	}

	tail := NewVar(2, 1)
	r := NewRecord(SingletonTypeMap("x", Int), tail)
	tail.SetLink(&RowExtend{Row: RowEmpty{}, Labels: SingletonTypeMap("y", Bool)})
	if s := TypeString(r); s != "{x: int, y: bool}" {
		t.Fatalf("type: %s", s)
	}
}

func TestTypeStringsShareNames(t *testing.T) {
	u, w := NewVar(1, 1), NewVar(2, 1)
	names := TypeStrings(u, NewArrow(w, u))
	if names[0] != "'_a" || names[1] != "'_b -> '_a" {
		t.Fatalf("types: %v", names)
	}
}
