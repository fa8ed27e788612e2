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

// Hybrid stores LT/LDPC rows sparsely (a physical-column -> value map) and
// HDPC rows densely (a full physical-column byte slice), matching
// google-gofountain's block.go sparseMatrix row-per-equation layout
// generalized to GF(256) values instead of binary XOR-only coefficients.
// A sparse row is lazily densified the first time it is the destination of
// an FMA: by Phase 1's later iterations most rows have accumulated enough
// fill-in that this is no loss, and it keeps FMARows simple and correct
// rather than chasing an always-sparse-representation that the RFC's own
// reference implementation does not guarantee either.
type Hybrid struct {
	perm *permutation

	sparse []map[int]byte // physical row -> (physical col -> value), nil once densified
	dense  [][]byte        // physical row -> physical-column-ordered bytes, nil until densified

	logicalRows  int
	logicalCols  int
	physicalCols int

	// denseColHint records the construction-time hint for the trailing
	// dense column band. It does not change how columns are stored here
	// (FMARows/MulRow apply uniformly to the full physical row regardless
	// of which columns are logically "dense"), and nothing reads it back.
	denseColHint int
}

// NewHybrid allocates a rows x cols hybrid matrix. denseColHint is the
// number of trailing columns expected to be dense (informational only, see
// Hybrid's doc comment). Physical rows in [denseRowStart, denseRowStart+
// numDenseRows) start densely stored (intended for the HDPC band); all
// other rows start sparse (intended for the LDPC/LT band).
func NewHybrid(rows, cols, denseColHint, denseRowStart, numDenseRows int) *Hybrid {
	h := &Hybrid{
		perm:         newPermutation(rows, cols),
		sparse:       make([]map[int]byte, rows),
		dense:        make([][]byte, rows),
		logicalRows:  rows,
		logicalCols:  cols,
		physicalCols: cols,
		denseColHint: denseColHint,
	}
	for i := 0; i < rows; i++ {
		if i >= denseRowStart && i < denseRowStart+numDenseRows {
			h.dense[i] = make([]byte, cols)
		} else {
			h.sparse[i] = make(map[int]byte)
		}
	}
	return h
}

func (h *Hybrid) Rows() int { return h.logicalRows }
func (h *Hybrid) Cols() int { return h.logicalCols }

func (h *Hybrid) ensureDense(physRow int) []byte {
	if h.dense[physRow] != nil {
		return h.dense[physRow]
	}
	buf := make([]byte, h.physicalCols)
	for c, v := range h.sparse[physRow] {
		buf[c] = v
	}
	h.dense[physRow] = buf
	h.sparse[physRow] = nil
	return buf
}

func (h *Hybrid) Get(i, j int) gf256.Octet {
	pr, pc := h.perm.physicalRow(i), h.perm.physicalCol(j)
	if h.dense[pr] != nil {
		return gf256.Octet(h.dense[pr][pc])
	}
	return gf256.Octet(h.sparse[pr][pc])
}

func (h *Hybrid) Set(i, j int, v gf256.Octet) {
	pr, pc := h.perm.physicalRow(i), h.perm.physicalCol(j)
	if h.dense[pr] != nil {
		h.dense[pr][pc] = v.Byte()
		return
	}
	if v == gf256.Zero {
		delete(h.sparse[pr], pc)
		return
	}
	h.sparse[pr][pc] = v.Byte()
}

func (h *Hybrid) SwapRows(i, j int) { h.perm.swapRows(i, j) }
func (h *Hybrid) SwapColumns(i, j int) { h.perm.swapCols(i, j) }

func (h *Hybrid) FMARows(dst, src int, scalar gf256.Octet) {
	if scalar == gf256.Zero {
		return
	}
	dstBuf := h.ensureDense(h.perm.physicalRow(dst))
	prSrc := h.perm.physicalRow(src)
	if h.dense[prSrc] != nil {
		dstRow := symbol.Symbol(dstBuf)
		srcRow := symbol.Symbol(h.dense[prSrc])
		if scalar == gf256.One {
			dstRow.AddAssign(srcRow)
		} else {
			dstRow.FusedAddAssignMulScalar(srcRow, scalar)
		}
		return
	}
	for c, v := range h.sparse[prSrc] {
		acc := gf256.Octet(dstBuf[c])
		if scalar == gf256.One {
			acc = acc.Add(gf256.Octet(v))
		} else {
			gf256.FMA(&acc, gf256.Octet(v), scalar)
		}
		dstBuf[c] = acc.Byte()
	}
}

func (h *Hybrid) MulRow(row int, scalar gf256.Octet) {
	pr := h.perm.physicalRow(row)
	if h.dense[pr] != nil {
		symbol.Symbol(h.dense[pr]).MulAssignScalar(scalar)
		return
	}
	if scalar == gf256.One {
		return
	}
	if scalar == gf256.Zero {
		h.sparse[pr] = make(map[int]byte)
		return
	}
	for c, v := range h.sparse[pr] {
		h.sparse[pr][c] = gf256.Octet(v).Mul(scalar).Byte()
	}
}

func (h *Hybrid) CountOnesAndNonzeros(row, startCol, endCol int) (ones, nonzeros int) {
	pr := h.perm.physicalRow(row)
	if h.dense[pr] != nil {
		buf := h.dense[pr]
		for j := startCol; j < endCol; j++ {
			v := buf[h.perm.physicalCol(j)]
			if v != 0 {
				nonzeros++
				if v == 1 {
					ones++
				}
			}
		}
		return
	}
	for pc, v := range h.sparse[pr] {
		logical := h.perm.logicalCol(pc)
		if logical >= startCol && logical < endCol && v != 0 {
			nonzeros++
			if v == 1 {
				ones++
			}
		}
	}
	return
}

func (h *Hybrid) RowIter(row, startCol, endCol int) []ColValue {
	pr := h.perm.physicalRow(row)
	var out []ColValue
	if h.dense[pr] != nil {
		buf := h.dense[pr]
		for j := startCol; j < endCol; j++ {
			v := buf[h.perm.physicalCol(j)]
			if v != 0 {
				out = append(out, ColValue{Col: j, Value: gf256.Octet(v)})
			}
		}
		return out
	}
	for pc, v := range h.sparse[pr] {
		logical := h.perm.logicalCol(pc)
		if logical >= startCol && logical < endCol && v != 0 {
			out = append(out, ColValue{Col: logical, Value: gf256.Octet(v)})
		}
	}
	return out
}

func (h *Hybrid) ColIndexIter(col, startRow, endRow int) []int {
	var out []int
	for i := startRow; i < endRow; i++ {
		if h.Get(i, col) != gf256.Zero {
			out = append(out, i)
		}
	}
	return out
}

func (h *Hybrid) RowCopy(row int) symbol.Symbol {
	out := make(symbol.Symbol, h.logicalCols)
	for j := 0; j < h.logicalCols; j++ {
		out[j] = h.Get(row, j).Byte()
	}
	return out
}

func (h *Hybrid) SetRow(row int, data symbol.Symbol) {
	for j := 0; j < h.logicalCols; j++ {
		h.Set(row, j, gf256.Octet(data[j]))
	}
}

// DisableColumnIndex is a no-op: Hybrid does not maintain a separate
// column-oriented index structure, so there is nothing to free.
func (h *Hybrid) DisableColumnIndex() {}

// FreezeLastSparseColumnAsDense is a no-op: column storage is not kept
// separately from row storage here, so there is no per-column structure to
// freeze.
func (h *Hybrid) FreezeLastSparseColumnAsDense(int) {}

// CompactDenseRows migrates every remaining sparse row within the current
// logical row range into the unified dense representation.
func (h *Hybrid) CompactDenseRows() {
	for i := 0; i < h.logicalRows; i++ {
		h.ensureDense(h.perm.physicalRow(i))
	}
}

func (h *Hybrid) Resize(newRows, newCols int) {
	h.logicalRows = newRows
	h.logicalCols = newCols
}

func (h *Hybrid) MulAssignSubmatrix(other Matrix, k int) {
	mulAssignSubmatrixGeneric(h, other, k)
}
