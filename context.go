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
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/config"
	"github.com/wdamron/elab/diag"
	"github.com/wdamron/elab/internal/astutil"
	"github.com/wdamron/elab/internal/typeutil"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

// Context is a reusable context for elaboration.
//
// A context cannot be used concurrently.
type Context struct {
	common   typeutil.CommonContext
	analysis astutil.Analysis
	cfg      config.Config
	log      *slog.Logger
	debug    bool

	diags    diag.List
	errCount int
	stopped  bool
	// explicit type-variables of the outermost value declaration being elaborated, and the
	// level at which they are allocated
	tyvars     map[string]*types.Var
	tyvarLevel int
	valDepth   int
	// number of generated parameter names
	params int
	// number of declared exceptions
	exns int
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for debug tracing. By default, logs are discarded.
func WithLogger(log *slog.Logger) Option { return func(ctx *Context) { ctx.log = log } }

// NewContext creates an elaboration context. A context may be reused for elaboration.
func NewContext(cfg config.Config, opts ...Option) *Context {
	ctx := &Context{cfg: cfg, tyvars: make(map[string]*types.Var, 4)}
	ctx.common.Init()
	ctx.analysis.Init()
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.log == nil {
		ctx.log = cfg.Logger(io.Discard)
	}
	ctx.log = ctx.log.With("component", "elab")
	ctx.debug = ctx.log.Enabled(context.Background(), slog.LevelDebug)
	return ctx
}

// Unit is the result of elaborating a program.
type Unit struct {
	Program *ir.Program
	// Env contains the bindings of the program, on top of the environment it was elaborated in.
	Env         *Env
	Diagnostics diag.List
}

func (ctx *Context) reset() {
	ctx.common.Reset()
	ctx.diags, ctx.errCount, ctx.stopped, ctx.params = nil, 0, false, 0
	ctx.tyvarLevel, ctx.valDepth = types.TopLevel+1, 0
	clear(ctx.tyvars)
}

// Elaborate type-checks prog within env and compiles its pattern matches. If env is nil, the
// prelude is used.
//
// Elaboration continues after errors: a declaration which fails to elaborate binds its names
// to the most general type, so later declarations are still checked. All diagnostics are
// returned in the unit; the returned error is non-nil if any diagnostic is an error.
func (ctx *Context) Elaborate(prog *ast.Program, env *Env) (*Unit, error) {
	if prog == nil {
		return nil, errors.New("Empty program")
	}
	if env == nil {
		env = NewEnv()
	}
	ctx.reset()
	out := &ir.Program{Decls: make([]ir.Decl, 0, len(prog.Decls))}
	scope := env.Scope()
	for _, d := range prog.Decls {
		if ctx.stopped {
			break
		}
		decl, next, bindings, err := ctx.elabDecl(scope, types.TopLevel, d)
		if err != nil {
			ctx.report(err)
			scope = ctx.poison(scope, d)
		} else {
			scope = next
			if decl != nil {
				out.Decls = append(out.Decls, decl)
			}
			out.Bindings = append(out.Bindings, bindings...)
		}
		ctx.common.VarTracker.FlattenLinks()
	}
	ctx.diags.Sort()
	unit := &Unit{Program: out, Env: scope, Diagnostics: ctx.diags}
	ctx.log.Info("elaborated program", "decls", len(out.Decls), "errors", ctx.errCount, "warnings", len(ctx.diags)-ctx.errCount)
	return unit, ctx.diags.Err()
}

// ElaborateExpr type-checks a single expression within env and generalizes its type. If env is
// nil, the prelude is used.
func (ctx *Context) ElaborateExpr(e ast.Expr, env *Env) (ir.Expr, *types.Scheme, diag.List, error) {
	if e == nil {
		return nil, nil, nil, errors.New("Empty expression")
	}
	if env == nil {
		env = NewEnv()
	}
	ctx.reset()
	// the expression scopes its own explicit type-variables
	ctx.valDepth = 1
	out, err := ctx.elabExpr(env, types.TopLevel+1, e)
	if err != nil {
		ctx.report(err)
		ctx.diags.Sort()
		return nil, nil, ctx.diags, ctx.diags.Err()
	}
	ctx.common.VarTracker.FlattenLinks()
	var s *types.Scheme
	if nonexpansive(env, e) {
		s = types.Generalize(types.TopLevel, out.Type())
	} else {
		types.Restrict(types.TopLevel, out.Type())
		s = types.Mono(out.Type())
	}
	ctx.diags.Sort()
	return out, s, ctx.diags, ctx.diags.Err()
}

// report records a diagnostic. Errors which are not diagnostics are recorded as internal errors.
func (ctx *Context) report(err error) {
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		d = diag.Errorf(diag.Internal, ast.Span{}, err.Error())
	}
	ctx.diags = append(ctx.diags, d)
	if ctx.debug {
		ctx.log.Debug("diagnostic", "kind", d.Kind.String(), "severity", d.Severity.String(), "pos", d.Span.Start.String())
	}
	if d.Severity != diag.Error {
		return
	}
	ctx.errCount++
	if limit := ctx.cfg.Diagnostics.MaxErrors; limit > 0 && ctx.errCount >= limit {
		ctx.stopped = true
	}
}

// poison binds the values declared by a failed declaration to `forall 'a. 'a`, so references
// from later declarations do not produce further errors.
func (ctx *Context) poison(env *Env, d ast.Decl) *Env {
	for _, name := range declNames(env, d) {
		tv := ctx.common.NewVar(types.TopLevel + 1)
		env = env.Bind(name, types.Generalize(types.TopLevel, tv))
	}
	return env
}

// declNames returns the value names bound by d.
func declNames(env *Env, d ast.Decl) []string {
	switch d := d.(type) {
	case *ast.Val:
		return ast.PatternNames(d.Pattern, env.IsConstructor)
	case *ast.Fun:
		names := make([]string, len(d.Bindings))
		for i, b := range d.Bindings {
			names[i] = b.Name
		}
		return names
	case *ast.Datatype:
		var names []string
		for _, b := range d.Bindings {
			for _, c := range b.Constructors {
				names = append(names, c.Name)
			}
		}
		return names
	case *ast.Exception:
		names := make([]string, len(d.Bindings))
		for i, c := range d.Bindings {
			names[i] = c.Name
		}
		return names
	case *ast.Local:
		var names []string
		for _, inner := range d.Body {
			names = append(names, declNames(env, inner)...)
		}
		return names
	}
	return nil
}

func (ctx *Context) unify(span ast.Span, expected, found types.Type) error {
	if err := ctx.common.Unify(expected, found); err != nil {
		return unifyDiagnostic(span, err)
	}
	return nil
}

// unifyDiagnostic converts a unification failure into a diagnostic of the matching kind.
func unifyDiagnostic(span ast.Span, err error) *diag.Diagnostic {
	var ue *typeutil.UnifyError
	if !errors.As(err, &ue) {
		return diag.Errorf(diag.Internal, span, err.Error())
	}
	kind := diag.TypeMismatch
	switch ue.Kind {
	case typeutil.ConstructorMismatch:
		kind = diag.ConstructorMismatch
	case typeutil.ArityMismatch:
		kind = diag.ArityMismatch
	case typeutil.InfiniteType:
		kind = diag.InfiniteType
	}
	return diag.Errorf(kind, span, ue.Error())
}

// generalize t at level, checking the result against the free type-variables of env when
// generalization checks are enabled.
func (ctx *Context) generalize(env *Env, span ast.Span, level int, t types.Type) (*types.Scheme, error) {
	var envVars *set.Set[int]
	if ctx.cfg.Check.Generalization {
		envVars = env.FreeVars()
	}
	s, err := ctx.common.Generalize(level, t, envVars)
	if err != nil {
		return nil, diag.Errorf(diag.Internal, span, err.Error())
	}
	return s, nil
}

// enterValue scopes explicit type-variables to the outermost value declaration which mentions
// them. They are allocated at level+1, so let-bindings nested within the declaration never
// generalize them. The returned func must be called when the declaration has been elaborated.
func (ctx *Context) enterValue(level int) func() {
	if ctx.valDepth == 0 {
		clear(ctx.tyvars)
		ctx.tyvarLevel = level + 1
	}
	ctx.valDepth++
	return func() { ctx.valDepth-- }
}

func (ctx *Context) freshParam() string {
	ctx.params++
	return "$" + strconv.Itoa(ctx.params-1)
}
