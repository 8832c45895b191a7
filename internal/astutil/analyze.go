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

package astutil

import (
	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/internal/util"
)

// Dependency analysis for recursive binding groups (`fun f ... and g ...`); borrowed from Haskell.
// https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
//
//   In Haskell 98, a group of bindings is sorted into strongly-connected components, and then type-checked
//   in dependency order (H98 s4.5.1). As each dependency group is type-checked, any binders of the group
//   that have an explicit type signature are put in the type environment with the specified polymorphic type,
//   and all others are monomorphic until the group is generalized (H98 s4.5.2).
type Analysis struct {
	Scopes     map[string]int // map from variable to binding number (or -1 for variables which shadow a binding)
	ScopeStash []StashedScope // shadowed variable-scope mappings
	Graph      util.Graph     // edges point from a binding to the bindings which reference it
	Current    int            // binding number of the clause being analyzed

	// initial space:
	_scopeStash [16]StashedScope
}

type StashedScope struct {
	Name       string
	BindingNum int
}

// Binding is a member of a recursive group.
type Binding struct {
	Name    string
	Clauses []Clause
}

// Clause of a binding. Params are empty for `val rec` bindings.
type Clause struct {
	Params []ast.Pattern
	Body   ast.Expr
}

func (a *Analysis) Init() {
	a.Scopes = make(map[string]int, 16)
	a.ScopeStash = a._scopeStash[:0]
}

func (a *Analysis) Reset() {
	for v := range a.Scopes {
		delete(a.Scopes, v)
	}
	for i := range a._scopeStash {
		a._scopeStash[i] = StashedScope{}
	}
	a.ScopeStash, a.Graph, a.Current = a._scopeStash[:0], nil, 0
}

// Components sorts the bindings of a recursive group into strongly-connected components, in
// dependency order: each component only references bindings within itself or earlier components.
// Binding numbers within a component are in declaration order.
func (a *Analysis) Components(bindings []Binding) [][]int {
	if a.Scopes == nil {
		a.Init()
	}
	a.Reset()
	a.Graph = util.NewGraph(len(bindings))
	for i, b := range bindings {
		a.Scopes[b.Name] = i
	}
	for i, b := range bindings {
		a.Current = i
		for _, c := range b.Clauses {
			stashed := a.bindPatterns(c.Params...)
			a.analyzeExpr(c.Body)
			a.unbind(stashed)
		}
	}
	return a.Graph.SortedSCC()
}

func (a *Analysis) reference(name string) {
	if bindingNum, ok := a.Scopes[name]; ok && bindingNum >= 0 {
		a.Graph.AddEdge(bindingNum, a.Current)
	}
}

// returns the names which were shadowed
func (a *Analysis) bindPatterns(ps ...ast.Pattern) []string {
	var names []string
	for _, p := range ps {
		names = append(names, ast.PatternNames(p, nil)...)
	}
	a.bind(names)
	return names
}

func (a *Analysis) bind(names []string) {
	for _, name := range names {
		if bindingNum, exists := a.Scopes[name]; exists {
			a.ScopeStash = append(a.ScopeStash, StashedScope{name, bindingNum})
		} else {
			a.ScopeStash = append(a.ScopeStash, StashedScope{name, -2})
		}
		a.Scopes[name] = -1
	}
}

func (a *Analysis) unbind(names []string) {
	stash := a.ScopeStash
	for i := 0; i < len(names); i++ {
		s := stash[len(stash)-1-i]
		if s.BindingNum == -2 {
			delete(a.Scopes, s.Name)
		} else {
			a.Scopes[s.Name] = s.BindingNum
		}
	}
	a.ScopeStash = stash[:len(stash)-len(names)]
}

func (a *Analysis) analyzeRules(rules []ast.Rule) {
	for _, r := range rules {
		stashed := a.bindPatterns(r.Pattern)
		if r.Guard != nil {
			a.analyzeExpr(r.Guard)
		}
		a.analyzeExpr(r.Body)
		a.unbind(stashed)
	}
}

// returns the names bound by the declaration, which remain in scope until unbound by the caller
func (a *Analysis) analyzeDecl(d ast.Decl) []string {
	switch d := d.(type) {
	case *ast.Val:
		names := ast.PatternNames(d.Pattern, nil)
		if d.Rec {
			a.bind(names)
			a.analyzeExpr(d.Expr)
			return names
		}
		a.analyzeExpr(d.Expr)
		a.bind(names)
		return names

	case *ast.Fun:
		names := make([]string, len(d.Bindings))
		for i, b := range d.Bindings {
			names[i] = b.Name
		}
		a.bind(names)
		for _, b := range d.Bindings {
			for _, c := range b.Clauses {
				stashed := a.bindPatterns(c.Params...)
				a.analyzeExpr(c.Body)
				a.unbind(stashed)
			}
		}
		return names

	case *ast.Datatype:
		var names []string
		for _, b := range d.Bindings {
			for _, c := range b.Constructors {
				names = append(names, c.Name)
			}
		}
		a.bind(names)
		return names

	case *ast.Exception:
		names := make([]string, len(d.Bindings))
		for i, c := range d.Bindings {
			names[i] = c.Name
		}
		a.bind(names)
		return names

	case *ast.Local:
		var names []string
		for _, inner := range d.Decls {
			names = append(names, a.analyzeDecl(inner)...)
		}
		for _, inner := range d.Body {
			names = append(names, a.analyzeDecl(inner)...)
		}
		return names
	}
	return nil
}

func (a *Analysis) analyzeExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Var:
		a.reference(e.Name)

	case *ast.App:
		a.analyzeExpr(e.Func)
		a.analyzeExpr(e.Arg)

	case *ast.Fn:
		a.analyzeRules(e.Rules)

	case *ast.Case:
		a.analyzeExpr(e.Scrutinee)
		a.analyzeRules(e.Rules)

	case *ast.Let:
		var names []string
		for _, d := range e.Decls {
			names = append(names, a.analyzeDecl(d)...)
		}
		a.analyzeExpr(e.Body)
		a.unbind(names)

	case *ast.Tuple:
		for _, elem := range e.Elems {
			a.analyzeExpr(elem)
		}

	case *ast.Record:
		for _, f := range e.Fields {
			a.analyzeExpr(f.Value)
		}

	case *ast.List:
		for _, elem := range e.Elems {
			a.analyzeExpr(elem)
		}

	case *ast.Seq:
		for _, elem := range e.Exprs {
			a.analyzeExpr(elem)
		}

	case *ast.If:
		a.analyzeExpr(e.Cond)
		a.analyzeExpr(e.Then)
		a.analyzeExpr(e.Else)

	case *ast.Andalso:
		a.analyzeExpr(e.Left)
		a.analyzeExpr(e.Right)

	case *ast.Orelse:
		a.analyzeExpr(e.Left)
		a.analyzeExpr(e.Right)

	case *ast.Raise:
		a.analyzeExpr(e.Expr)

	case *ast.Handle:
		a.analyzeExpr(e.Expr)
		a.analyzeRules(e.Rules)

	case *ast.Constraint:
		a.analyzeExpr(e.Expr)
	}
}
