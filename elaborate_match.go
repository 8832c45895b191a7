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
	"strconv"
	"strings"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/match"
	"github.com/wdamron/elab/types"
)

// Kind of clause-bearing construct, which determines the diagnostics reported for its match.
type matchSite uint8

const (
	siteCase matchSite = iota
	siteFn
	siteFun
	siteHandle
	siteBinding
)

// elabRules types rules matched against a value of type arg; each body is unified with result.
func (ctx *Context) elabRules(env *Env, level int, rules []ast.Rule, arg, result types.Type) ([]ir.Rule, error) {
	out := make([]ir.Rule, len(rules))
	for i, r := range rules {
		var vars patVars
		p, err := ctx.elabPattern(env, level, r.Pattern, &vars)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(p.Loc(), arg, p.Type()); err != nil {
			return nil, err
		}
		scope := vars.bind(env.Scope())
		var guard ir.Expr
		if r.Guard != nil {
			if guard, err = ctx.elabExpr(scope, level, r.Guard); err != nil {
				return nil, err
			}
			if err := ctx.unify(r.Guard.Loc(), types.Bool, guard.Type()); err != nil {
				return nil, err
			}
		}
		body, err := ctx.elabExpr(scope, level, r.Body)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(r.Body.Loc(), result, body.Type()); err != nil {
			return nil, err
		}
		out[i] = ir.Rule{Pattern: p, Guard: guard, Body: body}
	}
	return out, nil
}

// compileMatch builds the decision procedure for rules and reports non-exhaustive and redundant
// matches according to the configured policy.
func (ctx *Context) compileMatch(site matchSite, span ast.Span, rules []ir.Rule, scrutinee types.Type) (*ir.Match, error) {
	clauses := make([]match.Clause, len(rules))
	for i, r := range rules {
		clauses[i] = match.Clause{Pattern: r.Pattern, Guarded: r.Guard != nil}
	}
	res, err := match.Compile(clauses, scrutinee)
	if err != nil {
		return nil, diag.Errorf(diag.Internal, span, err.Error())
	}
	if ctx.debug {
		ctx.log.Debug("compiled match", "pos", span.Start.String(), "clauses", len(clauses),
			"exhaustive", res.Exhaustive, "unreachable", res.Unreachable.Size(),
			"decision", ir.DecisionString(res.Tree))
	}
	m := res.Match()
	if !m.Exhaustive && site != siteHandle {
		msg := "Non-exhaustive match"
		if site == siteBinding {
			msg = "Non-exhaustive binding"
		}
		if len(m.Missing) > 0 {
			msg += "; missing: " + strings.Join(m.Missing, ", ")
		}
		if ctx.cfg.NonExhaustiveIsError() {
			ctx.report(diag.Errorf(diag.NonExhaustiveMatch, span, msg))
		} else {
			ctx.report(diag.Warnf(diag.NonExhaustiveMatch, span, msg))
		}
	}
	if ctx.cfg.ReportRedundant() {
		for _, i := range m.Unreachable {
			ctx.report(diag.Warnf(diag.RedundantClause, rules[i].Pattern.Loc(), "Redundant clause "+strconv.Itoa(i+1)+" can never be selected"))
		}
	}
	return m, nil
}
