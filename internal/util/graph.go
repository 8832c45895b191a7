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

package util

import "slices"

// Graph is an adjacency list over vertices 0..len(g)-1.
type Graph [][]int

func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

// AddEdge adds an edge from -> to, ignoring duplicates.
func (g Graph) AddEdge(from, to int) {
	if !g.HasEdge(from, to) {
		g[from] = append(g[from], to)
	}
}

func (g Graph) HasEdge(from, to int) bool { return slices.Contains(g[from], to) }

// SCC returns the strongly-connected components of g in topological order: when an edge
// crosses from one component to another, the source component is returned first.
// Vertices within a component are in no particular order.
func (g Graph) SCC() [][]int {
	t := tarjan{
		graph:   g,
		index:   make([]int, len(g)),
		low:     make([]int, len(g)),
		onStack: make([]bool, len(g)),
	}
	for v := range g {
		if t.index[v] == 0 {
			t.visit(v)
		}
	}
	// Tarjan emits components in reverse topological order.
	slices.Reverse(t.sccs)
	return t.sccs
}

// SortedSCC is SCC with the vertices of each component sorted in ascending order.
func (g Graph) SortedSCC() [][]int {
	sccs := g.SCC()
	for _, c := range sccs {
		slices.Sort(c)
	}
	return sccs
}

// Tarjan's algorithm, following https://github.com/gonum/gonum/blob/master/graph/topo/tarjan.go
type tarjan struct {
	graph   Graph
	counter int
	index   []int // 0 for unvisited vertices
	low     []int
	onStack []bool
	stack   []int
	sccs    [][]int
}

func (t *tarjan) visit(v int) {
	t.counter++
	t.index[v], t.low[v] = t.counter, t.counter
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.graph[v] {
		switch {
		case t.index[w] == 0:
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		case t.onStack[w]:
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	// v is the root of a component; pop it off the stack.
	var c []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		c = append(c, w)
		if w == v {
			break
		}
	}
	t.sccs = append(t.sccs, c)
}
