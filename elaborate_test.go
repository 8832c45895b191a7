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

package elab_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	. "github.com/wdamron/elab/construct"

	"github.com/wdamron/elab"
	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/config"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

func elaborate(t *testing.T, cfg config.Config, decls ...ast.Decl) (*elab.Unit, error) {
	t.Helper()
	unit, err := elab.NewContext(cfg).Elaborate(Program(decls...), nil)
	if unit == nil {
		t.Fatalf("expected a unit, found error %v", err)
	}
	return unit, err
}

func bindingStrings(unit *elab.Unit) []string {
	out := make([]string, len(unit.Program.Bindings))
	for i, b := range unit.Program.Bindings {
		out[i] = b.Name + ": " + types.SchemeString(b.Scheme)
	}
	return out
}

func diagKinds(unit *elab.Unit) []diag.Kind {
	kinds := make([]diag.Kind, len(unit.Diagnostics))
	for i, d := range unit.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

func expectBindings(t *testing.T, unit *elab.Unit, expected ...string) {
	t.Helper()
	if found := bindingStrings(unit); !reflect.DeepEqual(found, expected) {
		t.Fatalf("expected bindings %q, found %q", expected, found)
	}
}

func TestRecordBindings(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PVar("record"), Record(
			Field("x", Int(10)),
			Field("y", Var("true")),
			Field("c", Str("hello")),
			Field("d", App(Var("ref"), Int(10))),
		)),
		Val(PFlexRecord(PPun("x"), PPun("y")), Var("record")),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "record: {x: int, y: bool, c: string, d: int ref}", "x: int", "y: bool")
	if s, ok := unit.Env.Lookup("x"); !ok || types.SchemeString(s) != "int" {
		t.Fatalf("expected x to be bound in the resulting environment")
	}
}

func TestLetPolymorphism(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PVar("id"), Fn(PVar("x"), Var("x"))),
		Val(PVar("pair"), Tuple(App(Var("id"), Int(1)), App(Var("id"), Var("true")))),
		Val(PVar("twice"), Let(
			Tuple(App(Var("f"), Str("a")), App(Var("f"), Int(2))),
			Fun1("f", Var("y"), PVar("y")),
		)),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "id: 'a -> 'a", "pair: int * bool", "twice: string * int")
}

func TestValueRestriction(t *testing.T) {
	unit, err := elaborate(t, config.Default(), Val(PVar("r"), App(Var("ref"), Var("nil"))))
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "r: '_a list ref")

	// the weak type-variable is resolved by later use:
	unit, err = elaborate(t, config.Default(),
		Val(PVar("r"), App(Var("ref"), Var("nil"))),
		Val(PWild(), Infix(":=", Var("r"), List(Int(1)))),
		Val(PVar("s"), App(Var("!"), Var("r"))),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "r: int list ref", "s: int list")

	// constructor applications other than ref are values:
	unit, err = elaborate(t, config.Default(), Val(PVar("o"), App(Var("SOME"), Var("nil"))))
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "o: 'a list option")
}

func TestMutualRecursion(t *testing.T) {
	minus1 := func(name string) ast.Expr { return Infix("-", Var(name), Int(1)) }
	unit, err := elaborate(t, config.Default(), Fun(
		FunBinding("even", Clause(Var("true"), PInt(0)), Clause(App(Var("odd"), minus1("n")), PVar("n"))),
		FunBinding("odd", Clause(Var("false"), PInt(0)), Clause(App(Var("even"), minus1("n")), PVar("n"))),
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "even: int -> bool", "odd: int -> bool")
}

func TestRecursiveGroupIsSplit(t *testing.T) {
	// id does not depend on f, so it is generalized before f is elaborated:
	unit, err := elaborate(t, config.Default(), Fun(
		FunBinding("f", Clause(Tuple(App(Var("id"), Int(1)), App(Var("id"), Var("true"))), PVar("y"))),
		FunBinding("id", Clause(Var("x"), PVar("x"))),
	))
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "f: 'a -> int * bool", "id: 'a -> 'a")
}

func TestCurriedClauses(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Fun(FunBinding("map",
			Clause(Var("nil"), PWild(), PCon("nil", nil)),
			Clause(Infix("::", App(Var("f"), Var("x")), App(Var("map"), Var("f"), Var("xs"))), PVar("f"), PCons(PVar("x"), PVar("xs"))),
		)),
		Val(PVar("lengths"), App(Var("map"), Var("size"), List(Str("a"), Str("bc")))),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "map: ('a -> 'b) -> 'a list -> 'b list", "lengths: int list")

	// curried parameters are matched as a tuple:
	fn := unit.Program.Decls[0].(*ir.Fun).Bindings[0].Fn
	inner := fn.(*ir.Fn).Body.(*ir.Fn).Body.(*ir.Case)
	if d := ir.DecisionString(inner.Match.Decision); d != "switch $.1 {nil => leaf 0 | :: => leaf 1}" {
		t.Fatalf("decision: %s", d)
	}
	if !inner.Match.Exhaustive || len(inner.Match.Unreachable) != 0 {
		t.Fatalf("expected an exhaustive match without redundant clauses")
	}
}

func TestValRec(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		ValRec("len", FnRules(
			Rule(PCon("nil", nil), Int(0)),
			Rule(PCons(PWild(), PVar("t")), Infix("+", Int(1), App(Var("len"), Var("t")))),
		)),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "len: 'a list -> int")

	unit, err = elaborate(t, config.Default(), ValRec("x", Int(1)))
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.InvalidPattern}) {
		t.Fatalf("expected an invalid recursive binding, found %v", unit.Diagnostics)
	}
}

func TestDatatypes(t *testing.T) {
	tree := TyCon("tree", TyVar("'a"))
	unit, err := elaborate(t, config.Default(),
		Datatype(DatatypeBinding([]string{"'a"}, "tree",
			Con("Leaf", nil),
			Con("Node", TyTuple(tree, TyVar("'a"), tree)),
		)),
		Fun(FunBinding("size",
			Clause(Int(0), PCon("Leaf", nil)),
			Clause(Infix("+", App(Var("size"), Var("l")), Infix("+", Int(1), App(Var("size"), Var("r")))),
				PCon("Node", PTuple(PVar("l"), PWild(), PVar("r")))),
		)),
		Val(PVar("t"), App(Var("Node"), Tuple(Var("Leaf"), Str("x"), Var("Leaf")))),
		Val(PVar("n"), App(Var("size"), Var("t"))),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "size: 'a tree -> int", "t: string tree", "n: int")
	if len(unit.Program.Decls) != 4 {
		t.Fatalf("expected 4 typed declarations, found %d", len(unit.Program.Decls))
	}
}

func TestTypeAlias(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		TypeAlias([]string{"'a"}, "pair", TyTuple(TyVar("'a"), TyVar("'a"))),
		Val(PVar("p"), Annot(Tuple(Int(1), Int(2)), TyCon("pair", TyCon("int")))),
		Val(PVar("q"), Annot(Tuple(Int(1), Str("a")), TyCon("pair", TyCon("int")))),
	)
	if err == nil {
		t.Fatalf("expected a type error")
	}
	expectBindings(t, unit, "p: int * int")
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.ConstructorMismatch}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}

	unit, _ = elaborate(t, config.Default(), Val(PVar("p"), Annot(Int(1), TyCon("list"))))
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.ArityMismatch}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	unit, _ = elaborate(t, config.Default(), Val(PVar("p"), Annot(Int(1), TyCon("missing"))))
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.UnboundType}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
}

func TestSelectorsAndFlexibleRecords(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PVar("getx"), Select("x")),
		Val(PVar("n"), App(Var("getx"), Record(Field("x", Int(1)), Field("y", Str("a"))))),
		Fun1("gety", Var("y"), PFlexRecord(PPun("y"))),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "getx: {x: 'a, ...} -> 'a", "n: int", "gety: {y: 'a, ...} -> 'a")

	unit, err = elaborate(t, config.Default(), Val(PFlexRecord(PPun("z")), Record(Field("x", Int(1)))))
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.TypeMismatch}) {
		t.Fatalf("expected a missing field, found %v", unit.Diagnostics)
	}
	if !strings.Contains(unit.Diagnostics[0].Message, "z") {
		t.Fatalf("expected the missing label in %q", unit.Diagnostics[0].Message)
	}
}

func TestFlexiblePatternsTakeRigidFields(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PAs("whole", PFlexRecord(PPun("x"))), Record(Field("x", Int(10)), Field("y", Var("true")), Field("c", Str("hello")))),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "x: int", "whole: {x: int, y: bool, c: string}")

	// a flexible rule, then a rigid rule over the same value:
	unit, err = elaborate(t, config.Default(),
		Val(PVar("f"), Fn(PVar("r"), Infix("+",
			Case(Var("r"), Rule(PFlexRecord(PPun("x")), Var("x"))),
			Case(Var("r"), Rule(PRecord(PField("x", PWild()), PField("y", PWild())), Int(1))),
		))),
		Val(PVar("v"), App(Var("f"), Record(Field("x", Int(1)), Field("y", Int(2))))),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "f: {x: int, y: 'a} -> int", "v: int")

	unit, err = elaborate(t, config.Default(),
		Val(PVar("h"), FnRules(
			Rule(PList(PFlexRecord(PField("a", PVar("true")))), Int(1)),
			Rule(PCons(PRecord(PField("a", PWild()), PField("b", PChar("c"))), PWild()), Int(2)),
		)),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "h: {a: bool, b: char} list -> int")
}

func TestFlexibleRowsMergeThenClose(t *testing.T) {
	getxy := func(r ast.Expr) []ast.Expr {
		return []ast.Expr{App(Select("x"), r), App(Select("y"), r)}
	}
	unit, err := elaborate(t, config.Default(),
		Val(PVar("g"), Fn(PVar("r"), Tuple(getxy(Var("r"))...))),
		Val(PVar("q"), Fn(PVar("r"), Tuple(append(getxy(Var("r")),
			Infix("=", Var("r"), Record(Field("x", Int(1)), Field("y", Var("true")), Field("z", Str("s")))))...,
		))),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit,
		"g: {x: 'a, y: 'b, ...} -> 'a * 'b",
		"q: {x: int, y: bool, z: string} -> int * bool * bool")
}

func TestExplicitTypeVariableScope(t *testing.T) {
	// 'a belongs to the outer declaration, so the inner let cannot generalize it:
	unit, err := elaborate(t, config.Default(),
		Val(PVar("f"), Fn(PVar("x"), Let(
			Annot(App(Var("g"), Var("x")), TyVar("'a")),
			Val(PVar("g"), Fn(PAnnot(PVar("y"), TyVar("'a")), Var("y"))),
		))),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "f: 'a -> 'a")

	// each value declaration scopes its own type-variables:
	unit, err = elaborate(t, config.Default(),
		Val(PVar("id"), Fn(PAnnot(PVar("x"), TyVar("'a")), Var("x"))),
		Local(nil,
			Val(PVar("k"), Fn(PAnnot(PVar("y"), TyVar("'a")), Tuple(Var("y"), Int(1)))),
			Val(PVar("j"), Fn(PAnnot(PVar("z"), TyVar("'a")), Var("z"))),
		),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "id: 'a -> 'a", "k: 'a -> 'a * int", "j: 'a -> 'a")
}

func TestExceptions(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Exception(Con("Oops", TyCon("string"))),
		Fun1("safe", Handle(Infix("div", Var("x"), Int(0)),
			Rule(PVar("Div"), Int(0)),
			Rule(PCon("Oops", PVar("s")), App(Var("size"), Var("s"))),
		), PVar("x")),
		Fun1("fail", Raise(App(Var("Oops"), Var("msg"))), PVar("msg")),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "safe: int -> int", "fail: string -> 'a")
}

func TestErrorsDoNotStopElaboration(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PVar("a"), Var("missing")),
		Val(PVar("b"), Tuple(Var("a"), Int(1))),
		Val(PVar("c"), Infix("+", Int(1), Str("x"))),
		Val(PVar("d"), Var("b")),
	)
	var errs diag.List
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("expected 2 errors, found %v", err)
	}
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.UnboundIdentifier, diag.ConstructorMismatch}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "b: 'a * int", "d: 'a * int")
	if s, ok := unit.Env.Lookup("c"); !ok || types.SchemeString(s) != "'a" {
		t.Fatalf("expected c to be bound to the most general type")
	}
}

func TestMaxErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Diagnostics.MaxErrors = 1
	unit, _ := elaborate(t, cfg, Val(PVar("a"), Var("missing")), Val(PVar("b"), Var("missing")))
	if len(unit.Diagnostics) != 1 {
		t.Fatalf("expected elaboration to stop after 1 error, found %v", unit.Diagnostics)
	}
}

func TestInfiniteType(t *testing.T) {
	unit, err := elaborate(t, config.Default(), Fun1("f", Var("f"), PVar("x")))
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.InfiniteType}) {
		t.Fatalf("expected an infinite type, found %v", unit.Diagnostics)
	}
}

func TestClauseArity(t *testing.T) {
	unit, err := elaborate(t, config.Default(), Fun(FunBinding("f",
		Clause(Int(0), PVar("x"), PVar("y")),
		Clause(Int(1), PVar("x")),
	)))
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.ArityMismatch}) {
		t.Fatalf("expected an arity mismatch, found %v", unit.Diagnostics)
	}
}

func TestMatchDiagnostics(t *testing.T) {
	head := Fun(FunBinding("head", Clause(Var("x"), PCons(PVar("x"), PWild()))))
	unit, err := elaborate(t, config.Default(), head)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "head: 'a list -> 'a")
	if len(unit.Diagnostics) != 1 {
		t.Fatalf("expected 1 warning, found %v", unit.Diagnostics)
	}
	if d := unit.Diagnostics[0]; d.Kind != diag.NonExhaustiveMatch || d.Severity != diag.Warning || !strings.Contains(d.Message, "nil") {
		t.Fatalf("unexpected diagnostic: %v", d)
	}

	strict := config.Default()
	strict.Match.NonExhaustive = "error"
	unit, err = elaborate(t, strict, head)
	if err == nil || unit.Diagnostics[0].Severity != diag.Error {
		t.Fatalf("expected a non-exhaustive match error, found %v", unit.Diagnostics)
	}

	redundant := Val(PVar("r"), Fn(PVar("x"), Case(Var("x"), Rule(PWild(), Int(1)), Rule(PInt(0), Int(2)))))
	unit, err = elaborate(t, config.Default(), redundant)
	if err != nil {
		t.Fatal(err)
	}
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.RedundantClause}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}

	quiet := config.Default()
	quiet.Match.Redundant = "ignore"
	unit, _ = elaborate(t, quiet, redundant)
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}

	// non-exhaustive bindings:
	unit, _ = elaborate(t, config.Default(), Val(PCons(PVar("h"), PWild()), List(Int(1))))
	if kinds := diagKinds(unit); !reflect.DeepEqual(kinds, []diag.Kind{diag.NonExhaustiveMatch}) {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "h: int")
}

func TestGuardsAndLayers(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Val(PVar("f"), FnRules(
			Guarded(PAs("all", PCons(PVar("x"), PWild())), Infix(">", Var("x"), Int(0)), Var("all")),
			Rule(PWild(), Var("nil")),
		)),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "f: int list -> int list")
}

func TestInvalidPatterns(t *testing.T) {
	for _, decl := range []ast.Decl{
		Val(PTuple(PVar("x"), PVar("x")), Tuple(Int(1), Int(2))),
		Val(PCon("SOME", nil), App(Var("SOME"), Int(1))),
		Val(PCon("NONE", PVar("x")), Var("NONE")),
		Fun1("f", Int(0), &ast.PatLiteral{Kind: ast.RealLit, Value: "1.0"}),
	} {
		unit, err := elaborate(t, config.Default(), decl)
		if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.InvalidPattern}) {
			t.Fatalf("expected an invalid pattern for %s, found %v", ast.DeclString(decl), unit.Diagnostics)
		}
	}
}

func TestLocal(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Local([]ast.Decl{Val(PVar("secret"), Int(1))}, Val(PVar("exposed"), Infix("+", Var("secret"), Int(1)))),
		Val(PVar("z"), Var("secret")),
	)
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.UnboundIdentifier}) {
		t.Fatalf("expected secret to be unbound, found %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "exposed: int")
}

func TestConditionals(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Fun1("max", If(Infix(">", Var("a"), Var("b")), Var("a"), Var("b")), PTuple(PVar("a"), PVar("b"))),
		Fun1("both", Andalso(Var("a"), Orelse(Var("b"), Var("false"))), PVar("a"), PVar("b")),
		Val(PVar("s"), Seq(App(Var("print"), Str("x")), Int(1))),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", unit.Diagnostics)
	}
	expectBindings(t, unit, "max: int * int -> int", "both: bool -> bool -> bool", "s: int")
}

func TestElaborateExpr(t *testing.T) {
	ctx := elab.NewContext(config.Default())
	env := elab.NewEnv()
	// Elaborate twice to ensure state is properly reset between calls:
	for i := 0; i < 2; i++ {
		e, s, diags, err := ctx.ElaborateExpr(Fn(PVar("x"), Tuple(Var("x"), Var("x"))), env)
		if err != nil {
			t.Fatal(err)
		}
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if e.ExprName() != "Fn" {
			t.Fatalf("expected a function, found %s", e.ExprName())
		}
		if ts := types.SchemeString(s); ts != "'a -> 'a * 'a" {
			t.Fatalf("type: %s", ts)
		}
	}
	if _, _, _, err := ctx.ElaborateExpr(Var("missing"), env); err == nil {
		t.Fatalf("expected an unbound identifier")
	}
}

func TestEnvIsPersistent(t *testing.T) {
	env := elab.NewEnv()
	n := env.Len()
	unit, err := elab.NewContext(config.Default()).Elaborate(Program(Val(PVar("x"), Int(1))), env)
	if err != nil {
		t.Fatal(err)
	}
	if env.Len() != n {
		t.Fatalf("expected an unmodified environment after elaboration")
	}
	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("expected x to be unbound in the original environment")
	}
	if _, ok := unit.Env.Lookup("x"); !ok {
		t.Fatalf("expected x to be bound in the resulting environment")
	}
	shadowed := unit.Env.Bind("x", types.Mono(types.String))
	if s, _ := shadowed.Lookup("x"); types.SchemeString(s) != "string" {
		t.Fatalf("expected x to be shadowed")
	}
	if s, _ := unit.Env.Lookup("x"); types.SchemeString(s) != "int" {
		t.Fatalf("expected shadowing to leave the original binding")
	}
}

func TestGeneralizationCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Check.Generalization = true
	unit, err := elaborate(t, cfg,
		Val(PVar("r"), App(Var("ref"), Var("nil"))),
		Val(PVar("id"), Fn(PVar("x"), Var("x"))),
		Fun1("k", Fn(PWild(), Var("x")), PVar("x")),
	)
	if err != nil {
		t.Fatal(err)
	}
	expectBindings(t, unit, "r: '_a list ref", "id: 'a -> 'a", "k: 'a -> 'b -> 'a")
}

func TestCurriedCallHint(t *testing.T) {
	unit, err := elaborate(t, config.Default(),
		Fun1("add", Infix("+", Var("x"), Var("y")), PVar("x"), PVar("y")),
		Val(PVar("n"), App(Var("add"), Tuple(Int(1), Int(2)))),
	)
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.TypeMismatch}) {
		t.Fatalf("expected a type mismatch, found %v", unit.Diagnostics)
	}
	if msg := unit.Diagnostics[0].Message; !strings.Contains(msg, "curried") {
		t.Fatalf("expected a hint for the curried function in %q", msg)
	}
	expectBindings(t, unit, "add: int -> int -> int")

	unit, err = elaborate(t, config.Default(), Val(PVar("m"), App(Var("+"), Tuple(Str("a"), Int(1)))))
	if err == nil || !reflect.DeepEqual(diagKinds(unit), []diag.Kind{diag.ConstructorMismatch}) {
		t.Fatalf("expected a constructor mismatch, found %v", unit.Diagnostics)
	}
	if msg := unit.Diagnostics[0].Message; strings.Contains(msg, "curried") {
		t.Fatalf("unexpected hint in %q", msg)
	}
}
