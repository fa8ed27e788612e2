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

package solver

import "github.com/raptorq-go/raptorq/internal/gf256"

// phase1 triangularizes A by repeatedly picking, via the oracle, a row of
// minimum non-zero count r in the active V region, moving its non-zero
// entries into place (one at column i, the rest to the rightmost u
// columns, which become inactivated), and eliminating that column from
// every row below. It terminates with i+u == L: every column has either
// been pivoted on (the first i) or inactivated (the last u).
func (dec *decoder) phase1() error {
	for dec.i+dec.u < dec.l {
		row, r, ok := dec.oracle.FirstPhaseSelection(dec.a)
		if !ok {
			return ErrCannotDecodeYet
		}
		dec.swapRows(dec.i, row)

		found := 0
		for col := dec.l - dec.u - 1; found < r && col >= dec.i; col-- {
			if dec.a.Get(dec.i, col) == gf256.Zero {
				continue
			}
			if found == r-1 {
				dec.swapColumns(dec.i, col)
			} else {
				dec.swapColumns(dec.l-dec.u-1-found, col)
			}
			found++
		}
		if found < r {
			panic("solver: oracle row stats disagree with the active row's actual non-zero count")
		}

		pivot := dec.a.Get(dec.i, dec.i)
		for rp := dec.i + 1; rp < dec.a.Rows(); rp++ {
			leading := dec.a.Get(rp, dec.i)
			if leading == gf256.Zero {
				continue
			}
			wasOne := leading == gf256.One
			dec.fmaRows(rp, dec.i, leading.Div(pivot))
			if r == 1 {
				dec.oracle.EliminateLeadingValue(rp, wasOne)
			} else {
				dec.oracle.RecomputeRow(rp, dec.a)
			}
		}

		dec.i++
		dec.u += r - 1
		dec.oracle.Resize(dec.i, dec.a.Rows(), dec.i, dec.l-dec.u)
		// Resize only moves the bounds: rescan the rows whose counts still
		// include columns that have just left V. The pivot row drops to zero.
		if r > 1 {
			for rp := dec.i; rp < dec.a.Rows(); rp++ {
				dec.oracle.RecomputeRow(rp, dec.a)
			}
		}
		dec.oracle.RecomputeRow(dec.i-1, dec.a)
	}

	dec.a.DisableColumnIndex()
	for col := dec.l - dec.u; col < dec.l; col++ {
		dec.a.FreezeLastSparseColumnAsDense(col)
	}
	dec.a.CompactDenseRows()
	return nil
}

// phase2 reduces the u x u block at [i,i+u) to the identity by row-reduced
// echelon form, drawing pivots from any remaining row (including rows
// beyond L supplied by extra received symbols) when the block's own rows
// are degenerate. It then drops A down to its final L x L shape.
func (dec *decoder) phase2() error {
	rowOffset, colOffset, size := dec.i, dec.i, dec.u
	dec.x.Resize(dec.i, dec.i)

	for k := 0; k < size; k++ {
		pivotRow := -1
		for r := rowOffset + k; r < dec.a.Rows(); r++ {
			if dec.a.Get(r, colOffset+k) != gf256.Zero {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			return ErrCannotDecodeYet
		}
		dec.swapRows(rowOffset+k, pivotRow)

		if pivotVal := dec.a.Get(rowOffset+k, colOffset+k); pivotVal != gf256.One {
			dec.mulRow(rowOffset+k, pivotVal.Inverse())
		}

		for r := rowOffset + k + 1; r < dec.a.Rows(); r++ {
			if scalar := dec.a.Get(r, colOffset+k); scalar != gf256.Zero {
				dec.fmaRows(r, rowOffset+k, scalar)
			}
		}
	}

	for k := size - 1; k >= 0; k-- {
		for j := 0; j < k; j++ {
			if scalar := dec.a.Get(rowOffset+j, colOffset+k); scalar != gf256.Zero {
				dec.fmaRows(rowOffset+j, rowOffset+k, scalar)
			}
		}
	}

	dec.a.Resize(dec.l, dec.l)
	return nil
}

// phase3 applies X, the record of Phase 1's row/column swaps on the
// original top-left i x i submatrix, to A's first i rows in one shot via
// MulAssignSubmatrix, then replays the same combination onto D by reading
// X directly (X is never mutated past Phase 1, so its entries are stable
// for the whole of this pass). X is lower triangular, so only columns
// [0,row) of each row ever contribute, and because rows are walked from
// i-1 down to 0, a row's own combination always reads D entries that this
// loop has not yet touched.
func (dec *decoder) phase3() {
	if dec.i == 0 {
		return
	}
	dec.a.MulAssignSubmatrix(dec.x, dec.i)

	for row := dec.i - 1; row >= 0; row-- {
		dec.recordMulD(row, dec.x.Get(row, row))
		for col := 0; col < row; col++ {
			if v := dec.x.Get(row, col); v != gf256.Zero {
				dec.recordFmaD(row, col, v)
			}
		}
	}
}

// phase4 cancels the HDPC and other above-the-pivot rows' contamination in
// the u inactivated columns, using the now-solved rows [i, i+u) (which, by
// the i+u == L invariant, is the whole of U and holds the identity block
// phase2 established there).
func (dec *decoder) phase4() {
	for r := 0; r < dec.i; r++ {
		for j := 0; j < dec.u; j++ {
			if b := dec.a.Get(r, dec.i+j); b != gf256.Zero {
				dec.fmaRows(r, dec.i+j, b)
			}
		}
	}
}

// phase5 scales each of the first i rows to a unit diagonal and forward-
// eliminates the strictly-lower-triangular entries using the
// already-normalized earlier rows, leaving A's top-left i x i block the
// identity.
func (dec *decoder) phase5() {
	for j := 0; j < dec.i; j++ {
		if diag := dec.a.Get(j, j); diag != gf256.One {
			dec.mulRow(j, diag.Inverse())
		}
		for l := 0; l < j; l++ {
			if v := dec.a.Get(j, l); v != gf256.Zero {
				dec.fmaRows(j, l, v)
			}
		}
	}
}
