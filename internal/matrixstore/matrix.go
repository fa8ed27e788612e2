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

// Package matrixstore implements the constraint-matrix store the solver
// operates over: a logical-index view backed by either a fully dense byte
// matrix or a hybrid sparse/dense representation, selected by row/column
// permutation arrays so that swaps never move data.
package matrixstore

import (
	"fmt"

	"github.com/raptorq-go/raptorq/internal/gf256"
	"github.com/raptorq-go/raptorq/internal/symbol"
)

// ColValue is one non-zero entry yielded by RowIter: a logical column and
// its value.
type ColValue struct {
	Col   int
	Value gf256.Octet
}

// Matrix is the constraint-matrix contract the five-phase solver is
// written against. Every index is logical (post-permutation); the backing
// implementation is responsible for translating to physical storage.
type Matrix interface {
	Rows() int
	Cols() int

	Get(i, j int) gf256.Octet
	Set(i, j int, v gf256.Octet)

	SwapRows(i, j int)
	SwapColumns(i, j int)

	// FMARows sets row dst to row dst + scalar*row src, across the full
	// row width. scalar == 0 is a no-op; scalar == 1 degenerates to a
	// plain row xor.
	FMARows(dst, src int, scalar gf256.Octet)
	// MulRow scales row by scalar in place.
	MulRow(row int, scalar gf256.Octet)

	// CountOnesAndNonzeros reports, within logical columns
	// [startCol, endCol), how many entries equal one and how many are
	// non-zero.
	CountOnesAndNonzeros(row, startCol, endCol int) (ones, nonzeros int)
	// RowIter returns the non-zero entries of row within logical columns
	// [startCol, endCol).
	RowIter(row, startCol, endCol int) []ColValue
	// ColIndexIter returns rows within [startRow, endRow) that may have a
	// non-zero at the given logical column. Over-approximation is
	// permitted: a stale hit from a cancelled FMA is not an error.
	ColIndexIter(col, startRow, endRow int) []int

	// RowCopy returns a snapshot of the full logical row, in logical
	// column order. SetRow overwrites it. These back MulAssignSubmatrix
	// and the solver's phase 3/4 bookkeeping.
	RowCopy(row int) symbol.Symbol
	SetRow(row int, data symbol.Symbol)

	// DisableColumnIndex frees any column-oriented index structures,
	// called at the end of Phase 1 once ColIndexIter is no longer needed.
	DisableColumnIndex()
	// FreezeLastSparseColumnAsDense is called when the column at the given
	// logical index becomes part of U and should no longer be tracked
	// sparsely.
	FreezeLastSparseColumnAsDense(col int)
	// CompactDenseRows migrates HDPC rows into a unified dense storage,
	// called at the end of Phase 1.
	CompactDenseRows()
	// Resize drops the logical dimensions down to (newRows, newCols),
	// called at the start of Phase 2.
	Resize(newRows, newCols int)

	// MulAssignSubmatrix sets rows [0,k) of the receiver to
	// other * receiver_rows[0,k). other must be k x k.
	MulAssignSubmatrix(other Matrix, k int)
}

// mulAssignSubmatrixGeneric implements Matrix.MulAssignSubmatrix against
// the Get/RowCopy/SetRow primitives, so Dense and Hybrid share one
// implementation (Phase 3's X*A application does not need a fast path: X is
// small, i x i, and applied once per solve).
func mulAssignSubmatrixGeneric(m Matrix, other Matrix, k int) {
	if other.Rows() != k || other.Cols() != k {
		panic(fmt.Sprintf("matrixstore: MulAssignSubmatrix expected %dx%d, got %dx%d", k, k, other.Rows(), other.Cols()))
	}
	if k == 0 {
		return
	}
	original := make([]symbol.Symbol, k)
	for r := 0; r < k; r++ {
		original[r] = m.RowCopy(r)
	}
	width := len(original[0])
	for r := 0; r < k; r++ {
		result := symbol.NewSymbol(width)
		for c := 0; c < k; c++ {
			coeff := other.Get(r, c)
			if coeff == gf256.Zero {
				continue
			}
			if coeff == gf256.One {
				result.AddAssign(original[c])
			} else {
				result.FusedAddAssignMulScalar(original[c], coeff)
			}
		}
		m.SetRow(r, result)
	}
}
