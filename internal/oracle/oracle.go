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

// Package oracle implements the row-selection oracle Phase 1 of the
// solver queries on every iteration: which row to pivot on next, chosen by
// the minimum count of non-zeros in the active V region, with RFC
// 6330-mandated tie-break rules for r=2.
package oracle

import (
	"github.com/raptorq-go/raptorq/internal/components"
	"github.com/raptorq-go/raptorq/internal/matrixstore"
)

// Oracle tracks, for every row still in play, its non-zero and one count
// within the current V region, its original (construction-time) degree,
// and whether it is an HDPC row. A histogram of non-zero-count -> row-count
// makes "find the minimum r with r>0" an O(histogram width) scan instead of
// an O(rows) one.
type Oracle struct {
	nonZerosPerRow []int
	onesPerRow     []int
	originalDegree []int
	hdpcRow        []bool

	histogram []int // histogram[r] = number of rows with exactly r non-zeros in V

	startRow, endRow int
	startCol, endCol int
}

// New builds an oracle over m's rows [0,rows), scanning the initial V
// region [0, cols) to seed per-row stats. hdpcRow marks, by initial row
// index, which rows are HDPC (dense, high-degree constraint rows that
// should be deprioritized as pivots whenever a non-HDPC alternative ties).
func New(m matrixstore.Matrix, hdpcRow []bool) *Oracle {
	rows, cols := m.Rows(), m.Cols()
	o := &Oracle{
		nonZerosPerRow: make([]int, rows),
		onesPerRow:     make([]int, rows),
		originalDegree: make([]int, rows),
		hdpcRow:        append([]bool(nil), hdpcRow...),
		histogram:      make([]int, cols+1),
		startRow:       0,
		endRow:         rows,
		startCol:       0,
		endCol:         cols,
	}
	for r := 0; r < rows; r++ {
		ones, nonzeros := m.CountOnesAndNonzeros(r, 0, cols)
		o.nonZerosPerRow[r] = nonzeros
		o.onesPerRow[r] = ones
		o.originalDegree[r] = nonzeros
		o.histogram[nonzeros]++
	}
	return o
}

// SwapRows exchanges the per-row stats the oracle tracks for logical rows
// i and j, keeping them aligned with the matrix's own row permutation
// after a pivot swap.
func (o *Oracle) SwapRows(i, j int) {
	o.nonZerosPerRow[i], o.nonZerosPerRow[j] = o.nonZerosPerRow[j], o.nonZerosPerRow[i]
	o.onesPerRow[i], o.onesPerRow[j] = o.onesPerRow[j], o.onesPerRow[i]
	o.originalDegree[i], o.originalDegree[j] = o.originalDegree[j], o.originalDegree[i]
	o.hdpcRow[i], o.hdpcRow[j] = o.hdpcRow[j], o.hdpcRow[i]
}

// Resize narrows the V region after a pivot has been eliminated: the row
// range loses its first row and the column range loses one or more columns
// from its right edge (the columns absorbed into U). It only moves the
// bounds; row stats are not rescanned, so the caller recomputes any row
// whose non-zeros included the columns that left V.
func (o *Oracle) Resize(startRow, endRow, startCol, endCol int) {
	o.startRow, o.endRow = startRow, endRow
	o.startCol, o.endCol = startCol, endCol
}

// RecomputeRow fully rescans a row's stats against the matrix after an FMA
// whose effect on the row's non-zero pattern isn't known to be a simple
// single-entry cancellation.
func (o *Oracle) RecomputeRow(row int, m matrixstore.Matrix) {
	o.histogram[o.nonZerosPerRow[row]]--
	ones, nonzeros := m.CountOnesAndNonzeros(row, o.startCol, o.endCol)
	o.nonZerosPerRow[row] = nonzeros
	o.onesPerRow[row] = ones
	o.histogram[nonzeros]++
}

// EliminateLeadingValue is the fast path for the common case where an FMA
// is known to cancel exactly one V-entry in the row and introduce no new
// ones: decrement the row's non-zero (and, if the cancelled value was one,
// ones) count directly instead of rescanning.
func (o *Oracle) EliminateLeadingValue(row int, valueWasOne bool) {
	o.histogram[o.nonZerosPerRow[row]]--
	o.nonZerosPerRow[row]--
	o.histogram[o.nonZerosPerRow[row]]++
	if valueWasOne {
		o.onesPerRow[row]--
	}
}

// FirstPhaseSelection picks the next pivot row per RFC 6330's tie-break
// rules: minimum non-zero count r in the V region; if r>=2 and a non-HDPC
// row has exactly two ones, prefer a row in the largest connected
// component of the two-ones graph; otherwise prefer the row of smallest
// original degree, non-HDPC rows breaking ties against HDPC ones. Returns
// ok=false when every row in range is all-zero in V (decoding failure).
func (o *Oracle) FirstPhaseSelection(m matrixstore.Matrix) (row int, r int, ok bool) {
	minR := 0
	for candidate := 1; candidate < len(o.histogram); candidate++ {
		if o.histogram[candidate] > 0 {
			minR = candidate
			break
		}
	}
	if minR == 0 {
		return 0, 0, false
	}

	if minR >= 2 {
		if chosen, found := o.twoOnesGraphSelection(m, minR); found {
			return chosen, minR, true
		}
	}

	return o.smallestOriginalDegreeSelection(minR), minR, true
}

// twoOnesGraphSelection implements the RFC's r=2-with-two-ones substep: it
// only applies when at least one non-HDPC row in range has exactly two
// ones and minR is consistent with that (the RFC text only invokes the
// graph substep when the minimum non-zero row also happens to expose a
// two-ones row; a row with minR non-zeros but more than 2 ones, or whose
// two non-zeros aren't both ones, falls through to the degree-based rule).
func (o *Oracle) twoOnesGraphSelection(m matrixstore.Matrix, minR int) (int, bool) {
	g := components.New(o.endCol)
	anyTwoOnes := false
	rowOfEdge := map[[2]int]int{}

	for r := o.startRow; r < o.endRow; r++ {
		if o.nonZerosPerRow[r] != minR || o.hdpcRow[r] || o.onesPerRow[r] != 2 {
			continue
		}
		entries := m.RowIter(r, o.startCol, o.endCol)
		var ones []int
		for _, e := range entries {
			if e.Value == 1 {
				ones = append(ones, e.Col)
			}
		}
		if len(ones) != 2 {
			continue
		}
		anyTwoOnes = true
		g.AddEdge(ones[0], ones[1])
		key := [2]int{ones[0], ones[1]}
		rowOfEdge[key] = r
	}

	if !anyTwoOnes {
		return 0, false
	}

	node, found := g.GetNodeInLargestComponent(o.startCol, o.endCol)
	if !found {
		return 0, false
	}
	// Several rows may touch this node; break the tie by taking the first
	// one found while re-scanning rows in order, rather than the order
	// edges were added to the graph above.
	for r := o.startRow; r < o.endRow; r++ {
		if o.nonZerosPerRow[r] != minR || o.hdpcRow[r] || o.onesPerRow[r] != 2 {
			continue
		}
		entries := m.RowIter(r, o.startCol, o.endCol)
		for _, e := range entries {
			if e.Value == 1 && e.Col == node {
				return r, true
			}
		}
	}
	return 0, false
}

// smallestOriginalDegreeSelection picks, among rows with exactly minR
// non-zeros in V, the one with smallest original degree; non-HDPC rows are
// preferred over HDPC rows at any degree.
func (o *Oracle) smallestOriginalDegreeSelection(minR int) int {
	best := -1
	bestDegree := 0
	bestHDPC := true
	for r := o.startRow; r < o.endRow; r++ {
		if o.nonZerosPerRow[r] != minR {
			continue
		}
		if best == -1 {
			best, bestDegree, bestHDPC = r, o.originalDegree[r], o.hdpcRow[r]
			continue
		}
		switch {
		case bestHDPC && !o.hdpcRow[r]:
			best, bestDegree, bestHDPC = r, o.originalDegree[r], false
		case bestHDPC == o.hdpcRow[r] && o.originalDegree[r] < bestDegree:
			best, bestDegree = r, o.originalDegree[r]
		}
	}
	return best
}
