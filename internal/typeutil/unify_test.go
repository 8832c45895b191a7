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
	"errors"
	"testing"

	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/elab/types"
)

func newContext() *CommonContext {
	ctx := &CommonContext{}
	ctx.Init()
	return ctx
}

func record(fields ...interface{}) types.TypeMap {
	m := types.NewTypeMap()
	for i := 0; i < len(fields); i += 2 {
		m = m.Set(fields[i].(string), fields[i+1].(types.Type))
	}
	return m
}

func unifyErrorKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var uerr *UnifyError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected unification error, found %v", err)
	}
	return uerr.Kind
}

func TestUnifyVars(t *testing.T) {
	ctx := newContext()
	a, b := ctx.NewVar(1), ctx.NewVar(2)
	if err := ctx.Unify(a, types.NewList(b)); err != nil {
		t.Fatal(err)
	}
	if b.Level() != 1 {
		t.Fatalf("expected level of b to be adjusted to 1, found %d", b.Level())
	}
	if err := ctx.Unify(types.NewList(types.Int), a); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(a); s != "int list" {
		t.Fatalf("type: %s", s)
	}
}

func TestUnifyMismatches(t *testing.T) {
	ctx := newContext()
	cases := []struct {
		a, b types.Type
		kind ErrorKind
	}{
		{types.Int, types.Bool, ConstructorMismatch},
		{types.NewList(types.Int), types.NewConst("option", types.Int), ConstructorMismatch},
		{types.NewConst("pair", types.Int), types.NewConst("pair", types.Int, types.Int), ArityMismatch},
		{types.NewTuple(types.Int, types.Int), types.NewTuple(types.Int, types.Int, types.Int), ArityMismatch},
		{types.NewArrow(types.Int, types.Int), types.Int, TypeMismatch},
		{types.Unit, types.Int, TypeMismatch},
		{types.NewList(types.Int), types.NewList(types.String), ConstructorMismatch},
	}
	for _, c := range cases {
		if kind := unifyErrorKind(t, ctx.Unify(c.a, c.b)); kind != c.kind {
			t.Fatalf("%s ~ %s: expected %v, found %v", types.TypeString(c.a), types.TypeString(c.b), c.kind, kind)
		}
	}
}

func TestOccursCheck(t *testing.T) {
	ctx := newContext()
	a := ctx.NewVar(1)
	cases := []types.Type{
		types.NewList(a),
		types.NewArrow(types.Int, a),
		types.NewTuple(a, types.Bool),
		types.NewRecord(record("x", types.NewRef(a)), nil),
	}
	for _, c := range cases {
		if kind := unifyErrorKind(t, ctx.Unify(a, c)); kind != InfiniteType {
			t.Fatalf("expected InfiniteType, found %v", kind)
		}
		if kind := unifyErrorKind(t, ctx.Unify(c, a)); kind != InfiniteType {
			t.Fatalf("expected InfiniteType, found %v", kind)
		}
	}

	// occurs through a link:
	b := ctx.NewVar(1)
	if err := ctx.Unify(b, types.NewList(a)); err != nil {
		t.Fatal(err)
	}
	if kind := unifyErrorKind(t, ctx.Unify(a, types.NewTuple(b, b))); kind != InfiniteType {
		t.Fatalf("expected InfiniteType, found %v", kind)
	}
	if !a.IsUnboundVar() {
		t.Fatalf("type-variable must remain unbound after a failed occurs check")
	}
}

func TestUnifyRigidRows(t *testing.T) {
	ctx := newContext()
	x := ctx.NewVar(1)
	a := types.NewRecord(record("x", x, "y", types.Bool), nil)
	b := types.NewRecord(record("y", types.Bool, "x", types.Int), nil)
	if err := ctx.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(x); s != "int" {
		t.Fatalf("type: %s", s)
	}

	c := types.NewRecord(record("x", types.Int), nil)
	err := ctx.Unify(a, c)
	var uerr *UnifyError
	if !errors.As(err, &uerr) || uerr.Kind != TypeMismatch || uerr.Label != "y" {
		t.Fatalf("expected missing field y, found %v", err)
	}
}

func TestUnifyFlexibleWithRigid(t *testing.T) {
	ctx := newContext()
	x, y, tail := ctx.NewVar(1), ctx.NewVar(1), ctx.NewVar(1)
	pattern := types.NewRecord(record("x", x, "y", y), tail)
	rigid := types.NewRecord(record(
		"x", types.Int,
		"y", types.Bool,
		"c", types.String,
		"d", types.NewRef(types.Int),
	), nil)

	if err := ctx.Unify(pattern, rigid); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(types.NewTuple(x, y)); s != "int * bool" {
		t.Fatalf("type: %s", s)
	}
	if s := types.TypeString(pattern); s != "{x: int, y: bool, c: string, d: int ref}" {
		t.Fatalf("type: %s", s)
	}
	if s := types.TypeString(rigid); s != "{x: int, y: bool, c: string, d: int ref}" {
		t.Fatalf("type: %s", s)
	}
}

func TestUnifyFlexibleMissingField(t *testing.T) {
	ctx := newContext()
	pattern := types.NewRecord(record("z", ctx.NewVar(1)), ctx.NewVar(1))
	rigid := types.NewRecord(record("x", types.Int, "y", types.Bool), nil)

	for _, err := range []error{ctx.Unify(pattern, rigid), ctx.Unify(rigid, pattern)} {
		var uerr *UnifyError
		if !errors.As(err, &uerr) || uerr.Kind != TypeMismatch || uerr.Label != "z" {
			t.Fatalf("expected missing field z, found %v", err)
		}
	}
}

func TestUnifyFlexibleRows(t *testing.T) {
	ctx := newContext()
	tailA, tailB := ctx.NewVar(2), ctx.NewVar(1)
	a := types.NewRecord(record("x", types.Int), tailA)
	b := types.NewRecord(record("y", types.Bool), tailB)
	if err := ctx.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(a); s != "{x: int, y: bool, ...}" {
		t.Fatalf("type: %s", s)
	}
	if s := types.TypeString(b); s != "{y: bool, x: int, ...}" {
		t.Fatalf("type: %s", s)
	}
	_, rest, _ := types.FlattenRowType(a.Row)
	tail, ok := rest.(*types.Var)
	if !ok || tail.Level() != 1 {
		t.Fatalf("expected a shared flexible tail at level 1")
	}

	// the merged row can still be closed by a rigid row:
	rigid := types.NewRecord(record("x", types.Int, "y", types.Bool, "z", types.String), nil)
	if err := ctx.Unify(a, rigid); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(b); s != "{y: bool, x: int, z: string}" {
		t.Fatalf("type: %s", s)
	}
}

func TestUnifyFlexibleRowsConflict(t *testing.T) {
	ctx := newContext()
	a := types.NewRecord(record("x", types.Int), ctx.NewVar(1))
	b := types.NewRecord(record("x", types.Bool), ctx.NewVar(1))
	if kind := unifyErrorKind(t, ctx.Unify(a, b)); kind != ConstructorMismatch {
		t.Fatalf("expected ConstructorMismatch, found %v", kind)
	}
}

func TestUnifySharedTail(t *testing.T) {
	ctx := newContext()
	tail := ctx.NewVar(1)
	a := types.NewRecord(record("x", types.Int), tail)
	b := types.NewRecord(record("y", types.Int), tail)
	if kind := unifyErrorKind(t, ctx.Unify(a, b)); kind != InfiniteType {
		t.Fatalf("expected InfiniteType, found %v", kind)
	}
}

func TestSpeculativeUnification(t *testing.T) {
	ctx := newContext()
	a, b := ctx.NewVar(1), ctx.NewVar(2)
	fn := types.NewArrow(a, types.NewTuple(b, types.Int))

	if ctx.CanUnify(fn, types.NewArrow(types.Int, types.NewTuple(types.Bool, types.String))) {
		t.Fatalf("expected unification to fail")
	}
	if !a.IsUnboundVar() || !b.IsUnboundVar() || b.Level() != 2 {
		t.Fatalf("expected type-variables to be restored after rollback")
	}

	if err := ctx.TryUnify(fn, types.NewArrow(types.Int, types.NewTuple(types.Bool, types.Int))); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(fn); s != "int -> bool * int" {
		t.Fatalf("type: %s", s)
	}
	if len(ctx.LinkStash) != 0 || ctx.Speculate {
		t.Fatalf("expected an empty link stash after commit")
	}
}

func TestNestedTxnRollback(t *testing.T) {
	ctx := newContext()
	a, b := ctx.NewVar(1), ctx.NewVar(1)
	outer := ctx.NewUnifyTxn()
	if err := ctx.TryUnify(a, types.Int); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Unify(b, types.Bool); err != nil {
		t.Fatal(err)
	}
	ctx.Rollback(outer)
	if !a.IsUnboundVar() || !b.IsUnboundVar() {
		t.Fatalf("expected the enclosing rollback to restore committed links")
	}
}

func TestInstantiate(t *testing.T) {
	ctx := newContext()
	a, free := ctx.NewVar(2), ctx.NewVar(1)
	s := types.Generalize(1, types.NewArrow(a, types.NewTuple(a, free)))

	t1 := ctx.Instantiate(1, s)
	t2 := ctx.Instantiate(1, s)
	if str := types.TypeString(s.Type); str != "'a -> 'a * '_a" {
		t.Fatalf("scheme: %s", str)
	}
	if err := ctx.Unify(t1, types.NewArrow(types.Int, ctx.NewVar(1))); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Unify(t2, types.NewArrow(types.Bool, ctx.NewVar(1))); err != nil {
		t.Fatal(err)
	}
	if str := types.TypeString(t1); str != "int -> int * '_a" {
		t.Fatalf("type: %s", str)
	}
	if str := types.TypeString(s.Type); str != "'a -> 'a * '_a" {
		t.Fatalf("instantiation must not modify the scheme: %s", str)
	}
}

func TestGeneralizeCheck(t *testing.T) {
	ctx := newContext()
	a := ctx.NewVar(2)
	envVars := set.New[int](1)
	envVars.Insert(a.Id())
	if _, err := ctx.Generalize(1, types.NewList(a), envVars); err == nil {
		t.Fatalf("expected a generalization error")
	}
}
