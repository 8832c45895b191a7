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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{idNames: make(map[int]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.idNames {
		delete(p.idNames, k)
	}
	p.generic, p.unbound = 0, 0
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type. Generic type-variables are named
// 'a, 'b, ... and unbound type-variables '_a, '_b, ... in order of appearance.
func TypeString(t Type) string {
	p := newTypePrinter()
	p.typeString(precArrow, t)
	s := p.sb.String()
	p.Release()
	return s
}

// TypeStrings returns string representations of multiple types, sharing type-variable names.
func TypeStrings(ts ...Type) []string {
	p := newTypePrinter()
	out := make([]string, len(ts))
	for i, t := range ts {
		p.typeString(precArrow, t)
		out[i] = p.sb.String()
		p.sb.Reset()
	}
	p.Release()
	return out
}

// SchemeString returns a string representation of a type scheme.
func SchemeString(s *Scheme) string { return TypeString(s.Type) }

// Operator precedence, from loosest to tightest binding:
const (
	precArrow = iota
	precTuple
	precApp
)

type typePrinter struct {
	idNames map[int]string
	generic int
	unbound int
	sb      strings.Builder
}

func varName(prefix string, i int) string {
	name := prefix + string(byte('a'+i%26))
	if i >= 26 {
		name += strconv.Itoa(i / 26)
	}
	return name
}

func (p *typePrinter) typeString(prec int, t Type) {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			p.typeString(prec, t.Link())
			return
		case t.IsGenericVar():
			if name, ok := p.idNames[t.Id()]; ok {
				p.sb.WriteString(name)
				return
			}
			name := varName("'", p.generic)
			p.generic++
			p.idNames[t.Id()] = name
			p.sb.WriteString(name)
		default:
			if name, ok := p.idNames[t.Id()]; ok {
				p.sb.WriteString(name)
				return
			}
			name := varName("'_", p.unbound)
			p.unbound++
			p.idNames[t.Id()] = name
			p.sb.WriteString(name)
		}

	case *Const:
		switch len(t.Args) {
		case 0:
		case 1:
			p.typeString(precApp, t.Args[0])
			p.sb.WriteByte(' ')
		default:
			p.sb.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				p.typeString(precArrow, arg)
			}
			p.sb.WriteString(") ")
		}
		p.sb.WriteString(t.Name)

	case *Arrow:
		if prec > precArrow {
			p.sb.WriteByte('(')
		}
		p.typeString(precTuple, t.Arg)
		p.sb.WriteString(" -> ")
		p.typeString(precArrow, t.Return)
		if prec > precArrow {
			p.sb.WriteByte(')')
		}

	case *Tuple:
		if len(t.Elems) == 0 {
			p.sb.WriteString("unit")
			return
		}
		if prec > precTuple {
			p.sb.WriteByte('(')
		}
		for i, elem := range t.Elems {
			if i > 0 {
				p.sb.WriteString(" * ")
			}
			p.typeString(precApp, elem)
		}
		if prec > precTuple {
			p.sb.WriteByte(')')
		}

	case *Record:
		labels, rest, err := FlattenRowType(t.Row)
		if err != nil {
			p.sb.WriteString("{<INVALID-ROW>}")
			return
		}
		p.sb.WriteByte('{')
		i := 0
		labels.Range(func(label string, lt Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(label)
			p.sb.WriteString(": ")
			p.typeString(precArrow, lt)
			i++
			return true
		})
		if _, ok := rest.(*Var); ok {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString("...")
		}
		p.sb.WriteByte('}')

	case *RowExtend:
		p.typeString(prec, &Record{Row: t})

	case RowEmpty:
		p.sb.WriteString("{}")
	}
}
