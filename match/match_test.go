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

package match

import (
	"strconv"
	"testing"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

var (
	boolType = &types.Datatype{Name: "bool"}
	falseCon = boolType.AddConstructor("false", nil)
	trueCon  = boolType.AddConstructor("true", nil)

	optionType = &types.Datatype{Name: "option", Params: []*types.Var{types.NewGenericVar(0)}}
	noneCon    = optionType.AddConstructor("NONE", nil)
	someCon    = optionType.AddConstructor("SOME", optionType.Params[0])

	listType = &types.Datatype{Name: "list", Params: []*types.Var{types.NewGenericVar(1)}}
	nilCon   = listType.AddConstructor("nil", nil)
	consCon  = listType.AddConstructor("::", types.NewTuple(listType.Params[0], listType.Type()))

	exnType = &types.Datatype{Name: "exn", Open: true}
	failCon = exnType.AddConstructor("Fail", types.String)
)

func wildcard() ir.Pattern           { return &ir.Wildcard{} }
func pvar(name string) ir.Pattern    { return &ir.PatVar{Name: name} }
func pint(n int) ir.Pattern          { return &ir.PatLiteral{Kind: ast.IntLit, Value: strconv.Itoa(n)} }
func ptuple(ps ...ir.Pattern) ir.Pattern { return &ir.PatTuple{Elems: ps} }

func pcon(c *types.Constructor, arg ir.Pattern) ir.Pattern { return &ir.PatCon{Con: c, Arg: arg} }

func clauses(ps ...ir.Pattern) []Clause {
	cs := make([]Clause, len(ps))
	for i, p := range ps {
		cs[i] = Clause{Pattern: p}
	}
	return cs
}

func mustCompile(t testing.TB, cs []Clause, scrutinee types.Type) *Result {
	res, err := Compile(cs, scrutinee)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestListMatch(t *testing.T) {
	res := mustCompile(t, clauses(
		pcon(nilCon, nil),
		pcon(consCon, ptuple(pvar("x"), pvar("xs"))),
	), types.NewList(types.Int))

	if s := ir.DecisionString(res.Tree); s != "switch $ {nil => leaf 0 | :: => leaf 1}" {
		t.Fatalf("tree: %s", s)
	}
	if !res.Exhaustive || res.Unreachable.Size() != 0 || len(res.Missing) != 0 {
		t.Fatalf("expected an exhaustive match without unreachable clauses, got %+v", res)
	}
	leaf := res.Tree.(*ir.Switch).Cases[1].Decision.(*ir.Leaf)
	if len(leaf.Bindings) != 2 {
		t.Fatalf("expected 2 bindings, found %d", len(leaf.Bindings))
	}
	if b := leaf.Bindings[0]; b.Name != "x" || b.Path.String() != "$.::.0" {
		t.Fatalf("binding: %s at %s", b.Name, b.Path)
	}
	if b := leaf.Bindings[1]; b.Name != "xs" || b.Path.String() != "$.::.1" {
		t.Fatalf("binding: %s at %s", b.Name, b.Path)
	}
}

func TestNonExhaustiveList(t *testing.T) {
	res := mustCompile(t, clauses(pcon(nilCon, nil)), types.NewList(types.Int))
	if s := ir.DecisionString(res.Tree); s != "switch $ {nil => leaf 0 | _ => fail}" {
		t.Fatalf("tree: %s", s)
	}
	if res.Exhaustive {
		t.Fatalf("expected a non-exhaustive match")
	}
	if len(res.Missing) != 1 || res.Missing[0] != "_ :: _" {
		t.Fatalf("missing: %v", res.Missing)
	}
}

func TestRedundantClause(t *testing.T) {
	res := mustCompile(t, clauses(
		pcon(someCon, pvar("x")),
		pcon(noneCon, nil),
		wildcard(),
	), types.NewConst("option", types.Int))

	if s := ir.DecisionString(res.Tree); s != "switch $ {SOME => leaf 0 | NONE => leaf 1}" {
		t.Fatalf("tree: %s", s)
	}
	if !res.Exhaustive {
		t.Fatalf("expected an exhaustive match")
	}
	if res.Unreachable.Size() != 1 || !res.Unreachable.Contains(2) {
		t.Fatalf("unreachable: %v", res.Unreachable.Slice())
	}
	if m := res.Match(); len(m.Unreachable) != 1 || m.Unreachable[0] != 2 {
		t.Fatalf("unreachable: %v", m.Unreachable)
	}
}

func TestDuplicateClauseIsRedundant(t *testing.T) {
	res := mustCompile(t, clauses(pint(1), pint(1), wildcard()), types.Int)
	if !res.Exhaustive || res.Unreachable.Size() != 1 || !res.Unreachable.Contains(1) {
		t.Fatalf("expected clause 1 to be unreachable, got %v", res.Unreachable.Slice())
	}
}

func TestGuardFallsThroughToNextRow(t *testing.T) {
	cs := clauses(
		pcon(someCon, pvar("x")),
		pcon(someCon, pint(1)),
		wildcard(),
	)
	cs[0].Guarded = true
	res := mustCompile(t, cs, types.NewConst("option", types.Int))

	expected := "switch $ {SOME => leaf 0 if guard else switch $.SOME {1 => leaf 1 | _ => leaf 2} | _ => leaf 2}"
	if s := ir.DecisionString(res.Tree); s != expected {
		t.Fatalf("tree: %s", s)
	}
	if !res.Exhaustive || res.Unreachable.Size() != 0 {
		t.Fatalf("expected an exhaustive match without unreachable clauses")
	}
}

func TestGuardedRowDoesNotCoverItsPattern(t *testing.T) {
	cs := clauses(pvar("b"))
	cs[0].Guarded = true
	res := mustCompile(t, cs, types.Bool)
	if s := ir.DecisionString(res.Tree); s != "leaf 0 if guard else fail" {
		t.Fatalf("tree: %s", s)
	}
	if res.Exhaustive || len(res.Missing) != 1 || res.Missing[0] != "_" {
		t.Fatalf("expected a non-exhaustive match, missing: %v", res.Missing)
	}
}

func TestTupleWitness(t *testing.T) {
	res := mustCompile(t, clauses(
		ptuple(pcon(trueCon, nil), wildcard()),
		ptuple(wildcard(), pcon(trueCon, nil)),
	), types.NewTuple(types.Bool, types.Bool))

	expected := "switch $.0 {true => leaf 0 | _ => switch $.1 {true => leaf 1 | _ => fail}}"
	if s := ir.DecisionString(res.Tree); s != expected {
		t.Fatalf("tree: %s", s)
	}
	if res.Exhaustive || len(res.Missing) != 1 || res.Missing[0] != "(false, false)" {
		t.Fatalf("missing: %v", res.Missing)
	}
}

func TestFlexibleRecordColumns(t *testing.T) {
	res := mustCompile(t, clauses(
		&ir.PatRecord{Fields: []ir.PatField{{Label: "x", Pattern: pint(1)}}, Flexible: true},
		&ir.PatRecord{Fields: []ir.PatField{{Label: "y", Pattern: pcon(trueCon, nil)}}, Flexible: true},
		wildcard(),
	), types.NewVar(0, 1))

	expected := "switch $.x {1 => leaf 0 | _ => switch $.y {true => leaf 1 | _ => leaf 2}}"
	if s := ir.DecisionString(res.Tree); s != expected {
		t.Fatalf("tree: %s", s)
	}
	if !res.Exhaustive || res.Unreachable.Size() != 0 {
		t.Fatalf("expected an exhaustive match without unreachable clauses")
	}
}

func TestIrrefutableRecordPattern(t *testing.T) {
	labels := types.NewTypeMap().Set("x", types.Int).Set("y", types.Bool).Set("c", types.String)
	res := mustCompile(t, clauses(
		&ir.PatRecord{Fields: []ir.PatField{{Label: "x", Pattern: pvar("x")}, {Label: "y", Pattern: pvar("y")}}, Flexible: true},
	), types.NewRecord(labels, nil))

	leaf, ok := res.Tree.(*ir.Leaf)
	if !ok {
		t.Fatalf("expected a leaf, found %s", ir.DecisionString(res.Tree))
	}
	if !res.Exhaustive || len(leaf.Bindings) != 2 || leaf.Bindings[0].Path.String() != "$.x" || leaf.Bindings[1].Path.String() != "$.y" {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
}

func TestLiteralWitness(t *testing.T) {
	res := mustCompile(t, clauses(pint(0), pint(1)), types.Int)
	if res.Exhaustive || len(res.Missing) != 1 || res.Missing[0] != "2" {
		t.Fatalf("missing: %v", res.Missing)
	}
}

func TestOpenDatatypeNeedsDefault(t *testing.T) {
	res := mustCompile(t, clauses(pcon(failCon, wildcard())), types.Exn)
	if res.Exhaustive || len(res.Missing) != 1 || res.Missing[0] != "_" {
		t.Fatalf("missing: %v", res.Missing)
	}
	res = mustCompile(t, clauses(pcon(failCon, wildcard()), pvar("e")), types.Exn)
	if !res.Exhaustive {
		t.Fatalf("expected an exhaustive match")
	}
}

func TestAsPatternBindsWholeValue(t *testing.T) {
	res := mustCompile(t, clauses(
		&ir.PatAs{Name: "all", Pattern: pcon(someCon, pvar("x"))},
		pcon(noneCon, nil),
	), types.NewConst("option", types.Int))

	leaf := res.Tree.(*ir.Switch).Cases[0].Decision.(*ir.Leaf)
	if len(leaf.Bindings) != 2 || leaf.Bindings[0].Name != "all" || leaf.Bindings[0].Path.String() != "$" ||
		leaf.Bindings[1].Name != "x" || leaf.Bindings[1].Path.String() != "$.SOME" {
		t.Fatalf("unexpected bindings: %+v", leaf.Bindings)
	}
}

func TestMalformedInput(t *testing.T) {
	if _, err := Compile(nil, types.Int); err != ErrNoClauses {
		t.Fatalf("expected ErrNoClauses, found %v", err)
	}
	if _, err := Compile(clauses(ptuple(pint(1), pint(2)), ptuple(pint(1))), types.Int); err != ErrMixedPatterns {
		t.Fatalf("expected ErrMixedPatterns, found %v", err)
	}
}

// value is a concrete value of a tuple, int or datatype.
type value struct {
	con   *types.Constructor
	lit   int
	arg   *value
	elems []value
}

func (v value) at(path ir.Path) value {
	for _, step := range path {
		switch step.Kind {
		case ir.TupleField:
			v = v.elems[step.Index]
		case ir.ConArg:
			v = *v.arg
		}
	}
	return v
}

func (v value) tag() ir.Tag {
	if v.con != nil {
		return ir.ConTag(v.con)
	}
	return ir.LiteralTag(ast.IntLit, strconv.Itoa(v.lit))
}

func matches(p ir.Pattern, v value) bool {
	switch p := p.(type) {
	case *ir.Wildcard, *ir.PatVar:
		return true
	case *ir.PatLiteral:
		return v.con == nil && p.Value == strconv.Itoa(v.lit)
	case *ir.PatCon:
		return v.con == p.Con && (p.Arg == nil || matches(p.Arg, *v.arg))
	case *ir.PatTuple:
		for i, elem := range p.Elems {
			if !matches(elem, v.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func eval(t *testing.T, d ir.Decision, v value) int {
	for {
		switch n := d.(type) {
		case *ir.Fail:
			return -1
		case *ir.Leaf:
			return n.Clause
		case *ir.Switch:
			tag := v.at(n.Path).tag()
			next := n.Default
			for _, c := range n.Cases {
				if c.Tag.Equal(tag) {
					next = c.Decision
					break
				}
			}
			if next == nil {
				t.Fatalf("no branch for %s at %s", tag, n.Path)
			}
			d = next
		}
	}
}

func TestFirstMatchingClauseWins(t *testing.T) {
	cs := clauses(
		ptuple(pint(0), pcon(noneCon, nil)),
		ptuple(pvar("x"), pcon(someCon, pint(1))),
		ptuple(pint(1), wildcard()),
		ptuple(wildcard(), pcon(someCon, pvar("y"))),
	)
	res := mustCompile(t, cs, types.NewTuple(types.Int, types.NewConst("option", types.Int)))

	var options []value
	options = append(options, value{con: noneCon})
	for n := 0; n < 3; n++ {
		options = append(options, value{con: someCon, arg: &value{lit: n}})
	}
	failed := false
	for n := 0; n < 3; n++ {
		for _, opt := range options {
			v := value{elems: []value{{lit: n}, opt}}
			expected := -1
			for i, c := range cs {
				if matches(c.Pattern, v) {
					expected = i
					break
				}
			}
			if found := eval(t, res.Tree, v); found != expected {
				t.Fatalf("value %d/%v: expected clause %d, found %d", n, opt.con.Name, expected, found)
			}
			failed = failed || expected < 0
		}
	}
	if !failed || res.Exhaustive {
		t.Fatalf("expected (2, NONE) to be unmatched")
	}
	if len(res.Missing) != 1 || res.Missing[0] != "(2, NONE)" {
		t.Fatalf("missing: %v", res.Missing)
	}
	if res.Unreachable.Size() != 0 {
		t.Fatalf("unreachable: %v", res.Unreachable.Slice())
	}
}

func BenchmarkCompile(b *testing.B) {
	cs := clauses(
		ptuple(pcon(nilCon, nil), pcon(nilCon, nil)),
		ptuple(pcon(consCon, ptuple(pint(0), pvar("xs"))), pcon(nilCon, nil)),
		ptuple(pcon(consCon, ptuple(pvar("x"), pvar("xs"))), pcon(consCon, ptuple(pvar("y"), pvar("ys")))),
		ptuple(wildcard(), wildcard()),
	)
	scrutinee := types.NewTuple(types.NewList(types.Int), types.NewList(types.Int))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(cs, scrutinee); err != nil {
			b.Fatal(err)
		}
	}
}
