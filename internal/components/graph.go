// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package components implements the connected-components index the
// row-selection oracle uses for its r=2 tie-break substep: a disjoint-set
// structure over V-region columns, represented as flat integer arrays
// rather than a graph of pointers (no node objects, no edges to walk).
package components

// noComponent marks a column not yet assigned to any component.
const noComponent = 0

// Graph is a union-find over column ids, tracking component membership and
// size without any pointer-based node/edge structures.
type Graph struct {
	nodeComponent   []int // column -> component id (possibly not canonical)
	mergedInto      []int // component id -> component id it was merged into (union-find parent)
	componentSize   []int // component id -> live column count
	numComponents   int
}

// New allocates a Graph over maxNodes columns (ids [0, maxNodes)).
func New(maxNodes int) *Graph {
	g := &Graph{
		nodeComponent: make([]int, maxNodes),
		mergedInto:    make([]int, maxNodes+1),
		componentSize: make([]int, maxNodes+1),
	}
	for i := range g.mergedInto {
		g.mergedInto[i] = i
	}
	return g
}

// createComponent allocates a new component id.
func (g *Graph) createComponent() int {
	g.numComponents++
	return noComponent + g.numComponents
}

// AddNode assigns column to the given (possibly non-canonical) component.
func (g *Graph) AddNode(column, component int) {
	if component > g.numComponents {
		panic("components: component id out of range")
	}
	if g.nodeComponent[column] != noComponent {
		panic("components: column already has a component")
	}
	canonical := g.canonical(component)
	g.nodeComponent[column] = canonical
	g.componentSize[canonical]++
}

// Swap exchanges the component membership of two columns; used to keep the
// index consistent with matrixstore's logical column permutation.
func (g *Graph) Swap(col1, col2 int) {
	g.nodeComponent[col1], g.nodeComponent[col2] = g.nodeComponent[col2], g.nodeComponent[col1]
}

// Contains reports whether column has been assigned to a component.
func (g *Graph) Contains(column int) bool {
	return g.nodeComponent[column] != noComponent
}

// RemoveNode drops column from its component, decrementing that
// component's size. A no-op if the column had no component.
func (g *Graph) RemoveNode(column int) {
	component := g.canonical(g.nodeComponent[column])
	if component == noComponent {
		return
	}
	g.componentSize[component]--
	g.nodeComponent[column] = noComponent
}

// AddEdge connects col1 and col2, creating, extending, or merging
// components as needed. Components are always merged into the
// lower-numbered id, which keeps union-find chains short without needing
// union-by-rank.
func (g *Graph) AddEdge(col1, col2 int) {
	c1 := g.canonical(g.nodeComponent[col1])
	c2 := g.canonical(g.nodeComponent[col2])

	switch {
	case c1 == noComponent && c2 == noComponent:
		id := g.createComponent()
		g.nodeComponent[col1] = id
		g.nodeComponent[col2] = id
		g.componentSize[id] = 2
	case c1 == noComponent:
		g.nodeComponent[col1] = c2
		g.componentSize[c2]++
	case c2 == noComponent:
		g.nodeComponent[col2] = c1
		g.componentSize[c1]++
	case c1 != c2:
		mergeTo, mergeFrom := c1, c2
		if mergeFrom < mergeTo {
			mergeTo, mergeFrom = mergeFrom, mergeTo
		}
		g.componentSize[mergeTo] += g.componentSize[mergeFrom]
		g.componentSize[mergeFrom] = 0
		g.mergedInto[mergeFrom] = mergeTo
	}
}

// GetNodeInLargestComponent returns some column within [startNode,endNode)
// that belongs to the largest component in the graph.
func (g *Graph) GetNodeInLargestComponent(startNode, endNode int) (int, bool) {
	maxSize, largest := 0, noComponent
	for i := 1; i <= g.numComponents; i++ {
		if g.componentSize[i] > maxSize {
			maxSize = g.componentSize[i]
			largest = i
		}
	}
	if largest == noComponent {
		return 0, false
	}
	for node := startNode; node < endNode; node++ {
		if g.canonical(g.nodeComponent[node]) == largest {
			return node, true
		}
	}
	return 0, false
}

// canonical walks the union-find parent chain to the representative id of
// a component. Path compression is not performed (chains in this solver
// are bounded by the number of Phase-1 iterations, so repeated walks are
// cheap) — matching the RFC reference's own non-path-compressing design.
func (g *Graph) canonical(id int) int {
	if id == noComponent {
		return id
	}
	for g.mergedInto[id] != id {
		id = g.mergedInto[id]
	}
	return id
}

// Reset clears all component assignments, ready for the next Phase-1 r=2
// substep to rebuild the graph from scratch.
func (g *Graph) Reset() {
	for i := 1; i <= g.numComponents; i++ {
		g.componentSize[i] = 0
		g.mergedInto[i] = i
	}
	g.numComponents = 0
	for i := range g.nodeComponent {
		g.nodeComponent[i] = noComponent
	}
}
