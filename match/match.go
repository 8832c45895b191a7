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

// Package match compiles ordered pattern-matching rules into decision procedures.
//
// The compiler works over a pattern matrix with one row per rule and one column per
// sub-value of the scrutinee, in the manner of "Compiling Pattern Matching to Good Decision
// Trees" (Luc Maranget). Tuples and records are expanded in place; the leftmost refutable
// column of the first row is tested next. The first rule (in order) whose pattern matches
// and whose guard holds is always selected.
package match

import (
	"errors"
	"slices"
	"strconv"

	"github.com/hashicorp/go-set/v2"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/ir"
	"github.com/wdamron/elab/types"
)

// Clause is a single rule of a clause-bearing construct.
type Clause struct {
	Pattern ir.Pattern
	// Guarded rules fall through to the following rules when their guard fails.
	Guarded bool
}

// Result is a compiled decision procedure and its diagnostics.
type Result struct {
	Tree ir.Decision
	// Exhaustive is false if some value of the scrutinee's type reaches a Fail node.
	Exhaustive bool
	// Unreachable contains the indexes of clauses which can never be selected.
	Unreachable *set.Set[int]
	// Missing contains example patterns which are not matched, one for each distinct Fail.
	Missing []string
}

// Match converts the result into the form embedded within typed expressions.
func (r *Result) Match() *ir.Match {
	unreachable := r.Unreachable.Slice()
	slices.Sort(unreachable)
	return &ir.Match{Decision: r.Tree, Exhaustive: r.Exhaustive, Unreachable: unreachable, Missing: r.Missing}
}

var (
	ErrNoClauses     = errors.New("Pattern match has no clauses")
	ErrNoScrutinee   = errors.New("Pattern match has no scrutinee type")
	ErrMixedPatterns = errors.New("Patterns of incompatible shapes were matched against the same value")
)

// Compile builds a decision procedure for clauses matched against a value of type scrutinee.
// An error is returned only for malformed input; non-exhaustive and redundant matches are
// reported in the result.
func Compile(clauses []Clause, scrutinee types.Type) (*Result, error) {
	if len(clauses) == 0 {
		return nil, ErrNoClauses
	}
	if scrutinee == nil {
		return nil, ErrNoScrutinee
	}
	c := compiler{
		shapes:  make(map[string]shape, 4),
		reached: set.New[int](len(clauses)),
		seen:    set.New[string](2),
	}
	c.registerShape(nil, scrutinee)
	m := matrix{paths: []ir.Path{nil}, rows: make([]row, len(clauses))}
	for i, cl := range clauses {
		if cl.Pattern == nil {
			return nil, errors.New("Clause " + strconv.Itoa(i) + " has no pattern")
		}
		m.rows[i] = row{pats: []ir.Pattern{cl.Pattern}, clause: i, guarded: cl.Guarded}
	}
	tree := c.compile(m)
	if c.err != nil {
		return nil, c.err
	}
	unreachable := set.New[int](0)
	for i := range clauses {
		if !c.reached.Contains(i) {
			unreachable.Insert(i)
		}
	}
	return &Result{Tree: tree, Exhaustive: !c.failed, Unreachable: unreachable, Missing: c.missing}, nil
}

type row struct {
	pats     []ir.Pattern
	clause   int
	guarded  bool
	bindings []ir.Binder
}

type matrix struct {
	paths []ir.Path
	rows  []row
}

type shapeKind uint8

const (
	shapeNone shapeKind = iota
	shapeTuple
	shapeRecord
)

type shape struct {
	kind   shapeKind
	arity  int
	labels []string
}

// fact records the constructor or literal assumed at a path along the current branch.
type fact struct {
	path   ir.Path
	head   string
	hasArg bool
}

type compiler struct {
	shapes  map[string]shape
	facts   []fact
	reached *set.Set[int]
	seen    *set.Set[string]
	missing []string
	failed  bool
	err     error
}

var wild ir.Pattern = &ir.Wildcard{}

func isWild(p ir.Pattern) bool {
	if p == nil {
		return true
	}
	_, ok := p.(*ir.Wildcard)
	return ok
}

func (c *compiler) compile(m matrix) ir.Decision {
	if c.err != nil {
		return &ir.Fail{}
	}
	if len(m.rows) == 0 {
		return c.fail()
	}
	m = c.normalize(m)
	first := m.rows[0]
	for col, p := range first.pats {
		if !isWild(p) {
			return c.switchOn(m, col)
		}
	}
	c.reached.Insert(first.clause)
	leaf := &ir.Leaf{Clause: first.clause, Bindings: first.bindings}
	if first.guarded {
		leaf.Guarded = true
		leaf.Fallback = c.compile(matrix{paths: m.paths, rows: m.rows[1:]})
	}
	return leaf
}

func (c *compiler) fail() ir.Decision {
	c.failed = true
	if w := c.witness(); c.seen.Insert(w) {
		c.missing = append(c.missing, w)
	}
	return &ir.Fail{}
}

// normalize moves variable bindings from the matrix into its rows, then expands tuple and
// record columns into one column per component.
func (c *compiler) normalize(m matrix) matrix {
	rows := make([]row, len(m.rows))
	for i, r := range m.rows {
		r.pats = append([]ir.Pattern(nil), r.pats...)
		r.bindings = r.bindings[:len(r.bindings):len(r.bindings)]
		rows[i] = r
	}
	paths := append([]ir.Path(nil), m.paths...)
	for col := 0; col < len(paths); {
		for i := range rows {
			rows[i].pats[col] = rows[i].bind(rows[i].pats[col], paths[col])
		}
		sh := c.columnShape(rows, col)
		switch sh.kind {
		case shapeTuple:
			c.shapes[paths[col].String()] = sh
			paths, rows = expandTuple(paths, rows, col, sh.arity)
		case shapeRecord:
			c.shapes[paths[col].String()] = sh
			paths, rows = expandRecord(paths, rows, col, sh.labels)
		default:
			col++
		}
	}
	return matrix{paths: paths, rows: rows}
}

func (r *row) bind(p ir.Pattern, path ir.Path) ir.Pattern {
	for {
		switch q := p.(type) {
		case nil:
			return wild
		case *ir.PatVar:
			r.bindings = append(r.bindings, ir.Binder{Name: q.Name, Path: path})
			return wild
		case *ir.PatAs:
			r.bindings = append(r.bindings, ir.Binder{Name: q.Name, Path: path})
			p = q.Pattern
		default:
			return p
		}
	}
}

func (c *compiler) columnShape(rows []row, col int) shape {
	var sh shape
	var seen *set.Set[string]
	for _, r := range rows {
		switch p := r.pats[col].(type) {
		case *ir.PatTuple:
			switch {
			case sh.kind == shapeNone:
				sh = shape{kind: shapeTuple, arity: len(p.Elems)}
			case sh.kind != shapeTuple || sh.arity != len(p.Elems):
				c.err = ErrMixedPatterns
				return shape{}
			}
		case *ir.PatRecord:
			switch sh.kind {
			case shapeNone:
				sh, seen = shape{kind: shapeRecord}, set.New[string](len(p.Fields))
			case shapeTuple:
				c.err = ErrMixedPatterns
				return shape{}
			}
			for _, f := range p.Fields {
				if seen.Insert(f.Label) {
					sh.labels = append(sh.labels, f.Label)
				}
			}
		}
	}
	return sh
}

func replaceColumn(paths []ir.Path, col int, with []ir.Path) []ir.Path {
	next := make([]ir.Path, 0, len(paths)-1+len(with))
	next = append(next, paths[:col]...)
	next = append(next, with...)
	return append(next, paths[col+1:]...)
}

func replacePattern(pats []ir.Pattern, col int, with []ir.Pattern) []ir.Pattern {
	next := make([]ir.Pattern, 0, len(pats)-1+len(with))
	next = append(next, pats[:col]...)
	next = append(next, with...)
	return append(next, pats[col+1:]...)
}

func wilds(n int) []ir.Pattern {
	ps := make([]ir.Pattern, n)
	for i := range ps {
		ps[i] = wild
	}
	return ps
}

func expandTuple(paths []ir.Path, rows []row, col, arity int) ([]ir.Path, []row) {
	sub := make([]ir.Path, arity)
	for i := range sub {
		sub[i] = paths[col].Extend(ir.Step{Kind: ir.TupleField, Index: i})
	}
	for i := range rows {
		if t, ok := rows[i].pats[col].(*ir.PatTuple); ok {
			rows[i].pats = replacePattern(rows[i].pats, col, t.Elems)
		} else {
			rows[i].pats = replacePattern(rows[i].pats, col, wilds(arity))
		}
	}
	return replaceColumn(paths, col, sub), rows
}

func expandRecord(paths []ir.Path, rows []row, col int, labels []string) ([]ir.Path, []row) {
	sub := make([]ir.Path, len(labels))
	for i, label := range labels {
		sub[i] = paths[col].Extend(ir.Step{Kind: ir.RecordField, Label: label})
	}
	for i := range rows {
		fields := wilds(len(labels))
		if r, ok := rows[i].pats[col].(*ir.PatRecord); ok {
			for _, f := range r.Fields {
				for j, label := range labels {
					if label == f.Label {
						fields[j] = f.Pattern
						break
					}
				}
			}
		}
		rows[i].pats = replacePattern(rows[i].pats, col, fields)
	}
	return replaceColumn(paths, col, sub), rows
}

func headTag(p ir.Pattern) (ir.Tag, bool) {
	switch p := p.(type) {
	case *ir.PatCon:
		return ir.ConTag(p.Con), true
	case *ir.PatLiteral:
		return ir.LiteralTag(p.Kind, p.Value), true
	}
	return ir.Tag{}, false
}

func (c *compiler) switchOn(m matrix, col int) ir.Decision {
	path := m.paths[col]
	var tags []ir.Tag
	for _, r := range m.rows {
		tag, ok := headTag(r.pats[col])
		if !ok {
			continue
		}
		if len(tags) > 0 && !compatibleTags(tags[0], tag) {
			c.err = ErrMixedPatterns
			return &ir.Fail{}
		}
		if !containsTag(tags, tag) {
			tags = append(tags, tag)
		}
	}

	sw := &ir.Switch{Path: path, Cases: make([]ir.SwitchCase, 0, len(tags))}
	for _, tag := range tags {
		c.facts = append(c.facts, fact{path: path, head: tag.String(), hasArg: tag.Con != nil && tag.Con.HasArg()})
		sw.Cases = append(sw.Cases, ir.SwitchCase{Tag: tag, Decision: c.compile(specialize(m, col, tag))})
		c.facts = c.facts[:len(c.facts)-1]
	}
	if !isComplete(tags) {
		head, hasArg := missingHead(tags)
		c.facts = append(c.facts, fact{path: path, head: head, hasArg: hasArg})
		sw.Default = c.compile(defaultMatrix(m, col))
		c.facts = c.facts[:len(c.facts)-1]
	}
	return sw
}

func compatibleTags(a, b ir.Tag) bool {
	if a.Con != nil || b.Con != nil {
		return a.Con != nil && b.Con != nil && a.Con.Datatype == b.Con.Datatype
	}
	return a.Kind == b.Kind
}

func containsTag(tags []ir.Tag, tag ir.Tag) bool {
	for _, t := range tags {
		if t.Equal(tag) {
			return true
		}
	}
	return false
}

// A constructor signature is complete when every constructor of a closed datatype is
// present. Literals never form a complete signature.
func isComplete(tags []ir.Tag) bool {
	if len(tags) == 0 || tags[0].Con == nil {
		return false
	}
	dt := tags[0].Con.Datatype
	return !dt.Open && len(tags) == len(dt.Constructors)
}

// specialize keeps the rows whose pattern at col may match tag, replacing the column with
// the constructor's argument (if any).
func specialize(m matrix, col int, tag ir.Tag) matrix {
	arity := 0
	if tag.Con != nil && tag.Con.HasArg() {
		arity = 1
	}
	var sub []ir.Path
	if arity == 1 {
		sub = []ir.Path{m.paths[col].Extend(ir.Step{Kind: ir.ConArg, Con: tag.Con})}
	}
	next := matrix{paths: replaceColumn(m.paths, col, sub)}
	for _, r := range m.rows {
		p := r.pats[col]
		if isWild(p) {
			r.pats = replacePattern(r.pats, col, wilds(arity))
			next.rows = append(next.rows, r)
			continue
		}
		if head, _ := headTag(p); !head.Equal(tag) {
			continue
		}
		var args []ir.Pattern
		if arity == 1 {
			arg := p.(*ir.PatCon).Arg
			if arg == nil {
				arg = wild
			}
			args = []ir.Pattern{arg}
		}
		r.pats = replacePattern(r.pats, col, args)
		next.rows = append(next.rows, r)
	}
	return next
}

// defaultMatrix keeps the rows with a wildcard at col, removing the column.
func defaultMatrix(m matrix, col int) matrix {
	next := matrix{paths: replaceColumn(m.paths, col, nil)}
	for _, r := range m.rows {
		if isWild(r.pats[col]) {
			r.pats = replacePattern(r.pats, col, nil)
			next.rows = append(next.rows, r)
		}
	}
	return next
}

// missingHead returns an example constructor or literal which is not among tags.
func missingHead(tags []ir.Tag) (head string, hasArg bool) {
	if len(tags) == 0 {
		return "", false
	}
	if con := tags[0].Con; con != nil {
		if con.Datatype.Open {
			return "", false
		}
		for _, candidate := range con.Datatype.Constructors {
			if !containsTag(tags, ir.ConTag(candidate)) {
				return candidate.Name, candidate.HasArg()
			}
		}
		return "", false
	}
	if tags[0].Kind != ast.IntLit {
		return "", false
	}
	for n := 0; ; n++ {
		if !containsTag(tags, ir.LiteralTag(ast.IntLit, strconv.Itoa(n))) {
			return strconv.Itoa(n), false
		}
	}
}

func (c *compiler) registerShape(path ir.Path, t types.Type) {
	switch t := types.RealType(t).(type) {
	case *types.Tuple:
		if len(t.Elems) > 0 {
			c.shapes[path.String()] = shape{kind: shapeTuple, arity: len(t.Elems)}
		}
	case *types.Record:
		labels, _, err := types.FlattenRowType(t.Row)
		if err == nil && labels.Len() > 0 {
			c.shapes[path.String()] = shape{kind: shapeRecord, labels: labels.Labels()}
		}
	}
}
