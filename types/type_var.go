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

// Reserved levels mark linked and generic type-variables.
const (
	GenericVarLevel = 1<<31 - 1
	LinkVarLevel    = -1 << 31
)

// Var is a union-find node: unbound at some level, linked to a type, or generic.
// Ids of prelude type-variables are negative.
type Var struct {
	link  Type
	id    int32
	level int32
}

func NewVar(id, level int) *Var { return &Var{id: int32(id), level: int32(level)} }

func NewGenericVar(id int) *Var { return &Var{id: int32(id), level: GenericVarLevel} }

func (tv *Var) Id() int        { return int(tv.id) }
func (tv *Var) SetId(id int)   { tv.id = int32(id) }
func (tv *Var) Level() int     { return int(tv.level) }
func (tv *Var) Link() Type     { return tv.link }
func (tv *Var) SetLevel(l int) { tv.level = int32(l) }

func (tv *Var) IsUnboundVar() bool { return tv.level != LinkVarLevel && tv.level != GenericVarLevel }
func (tv *Var) IsLinkVar() bool    { return tv.level == LinkVarLevel }
func (tv *Var) IsGenericVar() bool { return tv.level == GenericVarLevel }

// SetLink binds tv to t. Occurs checks are the caller's job.
func (tv *Var) SetLink(t Type) { tv.link, tv.level = t, LinkVarLevel }

// SetGeneric quantifies tv in place.
func (tv *Var) SetGeneric() { tv.level = GenericVarLevel }

// Flatten compresses a chain of links, so tv links directly to a non-link type.
func (tv *Var) Flatten() {
	if tv.IsLinkVar() {
		tv.link = RealType(tv.link)
	}
}
