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

import (
	"reflect"
	"testing"
)

func TestSCC(t *testing.T) {
	// 0 -> 1 -> 2 -> 0, 2 -> 3, 4 -> 3
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	g.AddEdge(2, 3)
	g.AddEdge(4, 3)
	g.AddEdge(4, 3)
	if len(g[4]) != 1 {
		t.Fatalf("expected duplicate edges to be ignored, found %v", g[4])
	}
	sccs := g.SortedSCC()
	expected := [][]int{{4}, {0, 1, 2}, {3}}
	if !reflect.DeepEqual(sccs, expected) {
		t.Fatalf("expected %v, found %v", expected, sccs)
	}
}

func TestSCCTopologicalOrder(t *testing.T) {
	// a chain without cycles is returned in edge order:
	g := NewGraph(4)
	g.AddEdge(3, 2)
	g.AddEdge(2, 1)
	g.AddEdge(1, 0)
	sccs := g.SCC()
	expected := [][]int{{3}, {2}, {1}, {0}}
	if !reflect.DeepEqual(sccs, expected) {
		t.Fatalf("expected %v, found %v", expected, sccs)
	}
	if !g.HasEdge(3, 2) || g.HasEdge(2, 3) {
		t.Fatalf("unexpected edges: %v", g)
	}
}
