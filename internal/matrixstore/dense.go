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

import (
	"github.com/raptorq-go/raptorq/internal/gf256"
	"github.com/raptorq-go/raptorq/internal/symbol"
)

// Dense stores every element as one byte in row-major physical order.
// Swaps are handled entirely by the permutation arrays: row and column
// operations that touch a full row (FMARows, MulRow) work directly on the
// physical byte slice, since applying the same transform to every physical
// column is unaffected by what logical column that slot currently denotes.
type Dense struct {
	perm *permutation
	rows [][]byte // physical row -> physical-column-ordered bytes

	logicalRows int
	logicalCols int
	physicalCols int
}

// NewDense allocates a zeroed rows x cols dense matrix. Unlike Hybrid it
// takes no dense-band hint, since every row is stored dense.
func NewDense(rows, cols int) *Dense {
	d := &Dense{
		perm:         newPermutation(rows, cols),
		rows:         make([][]byte, rows),
		logicalRows:  rows,
		logicalCols:  cols,
		physicalCols: cols,
	}
	for i := range d.rows {
		d.rows[i] = make([]byte, cols)
	}
	return d
}

// Identity returns the n x n dense identity matrix.
func Identity(n int) *Dense {
	m := NewDense(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, gf256.One)
	}
	return m
}

func (d *Dense) Rows() int { return d.logicalRows }
func (d *Dense) Cols() int { return d.logicalCols }

func (d *Dense) Get(i, j int) gf256.Octet {
	return gf256.Octet(d.rows[d.perm.physicalRow(i)][d.perm.physicalCol(j)])
}

func (d *Dense) Set(i, j int, v gf256.Octet) {
	d.rows[d.perm.physicalRow(i)][d.perm.physicalCol(j)] = v.Byte()
}

func (d *Dense) SwapRows(i, j int) { d.perm.swapRows(i, j) }
func (d *Dense) SwapColumns(i, j int) { d.perm.swapCols(i, j) }

func (d *Dense) FMARows(dst, src int, scalar gf256.Octet) {
	if scalar == gf256.Zero {
		return
	}
	dstRow := symbol.Symbol(d.rows[d.perm.physicalRow(dst)])
	srcRow := symbol.Symbol(d.rows[d.perm.physicalRow(src)])
	if scalar == gf256.One {
		dstRow.AddAssign(srcRow)
		return
	}
	dstRow.FusedAddAssignMulScalar(srcRow, scalar)
}

func (d *Dense) MulRow(row int, scalar gf256.Octet) {
	symbol.Symbol(d.rows[d.perm.physicalRow(row)]).MulAssignScalar(scalar)
}

func (d *Dense) CountOnesAndNonzeros(row, startCol, endCol int) (ones, nonzeros int) {
	phys := d.rows[d.perm.physicalRow(row)]
	for j := startCol; j < endCol; j++ {
		v := phys[d.perm.physicalCol(j)]
		if v != 0 {
			nonzeros++
			if v == 1 {
				ones++
			}
		}
	}
	return
}

func (d *Dense) RowIter(row, startCol, endCol int) []ColValue {
	phys := d.rows[d.perm.physicalRow(row)]
	var out []ColValue
	for j := startCol; j < endCol; j++ {
		v := phys[d.perm.physicalCol(j)]
		if v != 0 {
			out = append(out, ColValue{Col: j, Value: gf256.Octet(v)})
		}
	}
	return out
}

func (d *Dense) ColIndexIter(col, startRow, endRow int) []int {
	physCol := d.perm.physicalCol(col)
	var out []int
	for i := startRow; i < endRow; i++ {
		if d.rows[d.perm.physicalRow(i)][physCol] != 0 {
			out = append(out, i)
		}
	}
	return out
}

func (d *Dense) RowCopy(row int) symbol.Symbol {
	phys := d.rows[d.perm.physicalRow(row)]
	out := make(symbol.Symbol, d.logicalCols)
	for j := 0; j < d.logicalCols; j++ {
		out[j] = phys[d.perm.physicalCol(j)]
	}
	return out
}

func (d *Dense) SetRow(row int, data symbol.Symbol) {
	phys := d.rows[d.perm.physicalRow(row)]
	for j := 0; j < d.logicalCols; j++ {
		phys[d.perm.physicalCol(j)] = data[j]
	}
}

// Dense keeps no column index and no sparse/dense row distinction, so the
// lifecycle hooks are no-ops; they exist only to satisfy the Matrix
// interface uniformly with Hybrid.
func (d *Dense) DisableColumnIndex()              {}
func (d *Dense) FreezeLastSparseColumnAsDense(int) {}
func (d *Dense) CompactDenseRows()                {}

func (d *Dense) Resize(newRows, newCols int) {
	d.logicalRows = newRows
	d.logicalCols = newCols
}

func (d *Dense) MulAssignSubmatrix(other Matrix, k int) {
	mulAssignSubmatrixGeneric(d, other, k)
}
