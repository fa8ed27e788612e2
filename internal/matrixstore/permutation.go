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

package matrixstore

// permutation maps logical row/column indices to physical storage slots and
// back, so that SwapRows/SwapColumns are O(1): they only ever rewrite four
// entries, never move the underlying data. Both Dense and Hybrid embed one.
type permutation struct {
	rowLogicalToPhysical []int
	rowPhysicalToLogical []int
	colLogicalToPhysical []int
	colPhysicalToLogical []int
}

func newPermutation(rows, cols int) *permutation {
	p := &permutation{
		rowLogicalToPhysical: make([]int, rows),
		rowPhysicalToLogical: make([]int, rows),
		colLogicalToPhysical: make([]int, cols),
		colPhysicalToLogical: make([]int, cols),
	}
	for i := range p.rowLogicalToPhysical {
		p.rowLogicalToPhysical[i] = i
		p.rowPhysicalToLogical[i] = i
	}
	for j := range p.colLogicalToPhysical {
		p.colLogicalToPhysical[j] = j
		p.colPhysicalToLogical[j] = j
	}
	return p
}

func (p *permutation) swapRows(i, j int) {
	pi, pj := p.rowLogicalToPhysical[i], p.rowLogicalToPhysical[j]
	p.rowLogicalToPhysical[i], p.rowLogicalToPhysical[j] = pj, pi
	p.rowPhysicalToLogical[pi], p.rowPhysicalToLogical[pj] = j, i
}

func (p *permutation) swapCols(i, j int) {
	pi, pj := p.colLogicalToPhysical[i], p.colLogicalToPhysical[j]
	p.colLogicalToPhysical[i], p.colLogicalToPhysical[j] = pj, pi
	p.colPhysicalToLogical[pi], p.colPhysicalToLogical[pj] = j, i
}

func (p *permutation) physicalRow(logical int) int { return p.rowLogicalToPhysical[logical] }
func (p *permutation) physicalCol(logical int) int { return p.colLogicalToPhysical[logical] }
func (p *permutation) logicalCol(physical int) int { return p.colPhysicalToLogical[physical] }
