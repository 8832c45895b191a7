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

package ir

import (
	"strconv"
	"strings"

	"github.com/wdamron/elab/ast"
	"github.com/wdamron/elab/types"
)

// Decision is a node of a compiled decision procedure. Decision procedures are immutable
// once built.
type Decision interface {
	DecisionName() string
}

var (
	_ Decision = (*Fail)(nil)
	_ Decision = (*Leaf)(nil)
	_ Decision = (*Switch)(nil)
)

// Fail is reached when no rule matches.
type Fail struct{}

// Leaf selects a rule. Bindings give the location of each variable bound by the rule's
// pattern. If the rule is guarded, Fallback is taken when the guard is false.
type Leaf struct {
	Clause   int
	Bindings []Binder
	Guarded  bool
	Fallback Decision
}

// Binder locates the value bound to a pattern variable.
type Binder struct {
	Name string
	Path Path
}

// Switch tests the constructor or literal at Path. Default is nil when Cases cover every
// constructor of the tested type.
type Switch struct {
	Path    Path
	Cases   []SwitchCase
	Default Decision
}

// SwitchCase is a branch of a Switch.
type SwitchCase struct {
	Tag      Tag
	Decision Decision
}

func (d *Fail) DecisionName() string   { return "Fail" }
func (d *Leaf) DecisionName() string   { return "Leaf" }
func (d *Switch) DecisionName() string { return "Switch" }

// Tag is either a constructor or a literal value.
type Tag struct {
	Con   *types.Constructor
	Kind  ast.LiteralKind
	Value string
}

// ConTag creates a constructor tag.
func ConTag(c *types.Constructor) Tag { return Tag{Con: c} }

// LiteralTag creates a literal tag.
func LiteralTag(kind ast.LiteralKind, value string) Tag { return Tag{Kind: kind, Value: value} }

// Equal returns true if t and other test for the same constructor or literal.
func (t Tag) Equal(other Tag) bool {
	if t.Con != nil || other.Con != nil {
		return t.Con == other.Con
	}
	return t.Kind == other.Kind && t.Value == other.Value
}

func (t Tag) String() string {
	if t.Con != nil {
		return t.Con.Name
	}
	switch t.Kind {
	case ast.StringLit:
		return `"` + t.Value + `"`
	case ast.CharLit:
		return `#"` + t.Value + `"`
	}
	return t.Value
}

// Kind of path step.
type StepKind uint8

const (
	TupleField StepKind = iota
	RecordField
	ConArg
)

// Step selects a component of a value.
type Step struct {
	Kind  StepKind
	Index int
	Label string
	Con   *types.Constructor
}

// Path locates a value within the scrutinee. The empty path is the scrutinee itself.
type Path []Step

// Extend returns a new path with step appended. The receiver is not modified.
func (p Path) Extend(step Step) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = step
	return next
}

// String renders the path as `$`, `$.0`, `$.x`, `$.SOME`, ...
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range p {
		sb.WriteByte('.')
		switch s.Kind {
		case TupleField:
			sb.WriteString(strconv.Itoa(s.Index))
		case RecordField:
			sb.WriteString(s.Label)
		case ConArg:
			sb.WriteString(s.Con.Name)
		}
	}
	return sb.String()
}

// DecisionString renders a decision procedure on a single line:
//
//	switch $ {nil => leaf 0 | :: => leaf 1}
//	leaf 0 if guard else fail
func DecisionString(d Decision) string {
	var sb strings.Builder
	decisionString(&sb, d)
	return sb.String()
}

func decisionString(sb *strings.Builder, d Decision) {
	switch d := d.(type) {
	case *Fail:
		sb.WriteString("fail")
	case *Leaf:
		sb.WriteString("leaf ")
		sb.WriteString(strconv.Itoa(d.Clause))
		if d.Guarded {
			sb.WriteString(" if guard else ")
			if d.Fallback == nil {
				sb.WriteString("fail")
			} else {
				decisionString(sb, d.Fallback)
			}
		}
	case *Switch:
		sb.WriteString("switch ")
		sb.WriteString(d.Path.String())
		sb.WriteString(" {")
		for i, c := range d.Cases {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(c.Tag.String())
			sb.WriteString(" => ")
			decisionString(sb, c.Decision)
		}
		if d.Default != nil {
			if len(d.Cases) > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString("_ => ")
			decisionString(sb, d.Default)
		}
		sb.WriteByte('}')
	}
}
