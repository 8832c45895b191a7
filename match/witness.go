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
	"strings"

	"github.com/wdamron/elab/ir"
)

// witness is a partially-known value, built from the facts along a failing branch.
type witness struct {
	head   string
	hasArg bool
	arg    *witness
	elems  []*witness
	labels []string
	fields []*witness
}

// witness renders an example value which reaches the current branch.
func (c *compiler) witness() string {
	root := &witness{}
	for _, f := range c.facts {
		w := root
		for i, step := range f.path {
			w = c.child(w, f.path[:i], step)
		}
		w.head, w.hasArg = f.head, f.hasArg
	}
	var sb strings.Builder
	writeWitness(&sb, root, false)
	return sb.String()
}

func (c *compiler) child(w *witness, prefix ir.Path, step ir.Step) *witness {
	switch step.Kind {
	case ir.TupleField:
		if w.elems == nil {
			n := c.shapes[prefix.String()].arity
			if n <= step.Index {
				n = step.Index + 1
			}
			w.elems = newWitnesses(n)
		}
		return w.elems[step.Index]

	case ir.RecordField:
		if w.fields == nil {
			w.labels = c.shapes[prefix.String()].labels
			w.fields = newWitnesses(len(w.labels))
		}
		for i, label := range w.labels {
			if label == step.Label {
				return w.fields[i]
			}
		}
		w.labels = append(w.labels, step.Label)
		w.fields = append(w.fields, &witness{})
		return w.fields[len(w.fields)-1]

	default:
		if w.arg == nil {
			w.arg = &witness{}
		}
		return w.arg
	}
}

func newWitnesses(n int) []*witness {
	ws := make([]*witness, n)
	for i := range ws {
		ws[i] = &witness{}
	}
	return ws
}

// simple is set when a constructor application must be parenthesized
func writeWitness(sb *strings.Builder, w *witness, simple bool) {
	switch {
	case w.head != "":
		if !w.hasArg {
			sb.WriteString(w.head)
			return
		}
		arg := w.arg
		if arg == nil {
			arg = &witness{}
		}
		if simple {
			sb.WriteByte('(')
		}
		if w.head == "::" {
			if len(arg.elems) == 2 {
				writeWitness(sb, arg.elems[0], true)
				sb.WriteString(" :: ")
				writeWitness(sb, arg.elems[1], false)
			} else {
				sb.WriteString("_ :: _")
			}
		} else {
			sb.WriteString(w.head)
			sb.WriteByte(' ')
			writeWitness(sb, arg, true)
		}
		if simple {
			sb.WriteByte(')')
		}

	case w.elems != nil:
		sb.WriteByte('(')
		for i, elem := range w.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeWitness(sb, elem, false)
		}
		sb.WriteByte(')')

	case w.fields != nil:
		sb.WriteByte('{')
		for i, field := range w.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(w.labels[i])
			sb.WriteString(" = ")
			writeWitness(sb, field, false)
		}
		sb.WriteByte('}')

	default:
		sb.WriteByte('_')
	}
}
