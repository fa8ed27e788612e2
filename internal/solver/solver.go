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

// Package solver implements the RFC 6330 inactivation decoder: the
// five-phase procedure that solves A*C = D for the L intermediate symbols
// C, given the constraint matrix A and received symbol vector D.
package solver

import (
	"github.com/raptorq-go/raptorq/internal/gf256"
	"github.com/raptorq-go/raptorq/internal/matrixstore"
	"github.com/raptorq-go/raptorq/internal/opcache"
	"github.com/raptorq-go/raptorq/internal/oracle"
	"github.com/raptorq-go/raptorq/internal/symbol"
)

// DebugAssertions gates the phase-boundary invariant checks. They are
// O(L^2) per phase, so production callers leave this false; tests turn it
// on to catch regressions as close to their source as possible.
var DebugAssertions = false

// decoder holds the solver's working state for a single Solve call. It is
// never shared: the solver owns A, X, D, c, perm exclusively for the
// duration of one call.
type decoder struct {
	a matrixstore.Matrix // the constraint matrix, mutated in place
	x matrixstore.Matrix // dense snapshot, row/col-swapped in lockstep with a, never FMA'd

	d []symbol.Symbol // received symbol vector, indexed by original D position

	c    []int // logical column -> original column id
	perm []int // logical row -> original D index ("d" in RFC 6330's own notation)

	i, u, l int

	oracle *oracle.Oracle

	recorded []opcache.Op
}

// newDecoder builds a decoder over a and d. hdpcRow marks, by initial row
// index into a, which rows are HDPC constraint rows. It starts Phase 1 from
// i=0, u=0, L=a.Cols(): unlike a performance-tuned implementation, it does
// not pre-seed u with the number of columns known in advance to need
// inactivation, since nothing in the solver's contract requires the caller
// to know that count up front. The oracle will inactivate exactly the
// columns Phase 1 discovers it must.
func newDecoder(a matrixstore.Matrix, d []symbol.Symbol, hdpcRow []bool) *decoder {
	rows, cols := a.Rows(), a.Cols()

	x := matrixstore.NewDense(rows, cols)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			if v := a.Get(r, col); v != gf256.Zero {
				x.Set(r, col, v)
			}
		}
	}

	c := make([]int, cols)
	for idx := range c {
		c[idx] = idx
	}
	perm := make([]int, rows)
	for idx := range perm {
		perm[idx] = idx
	}

	return &decoder{
		a:      a,
		x:      x,
		d:      d,
		c:      c,
		perm:   perm,
		i:      0,
		u:      0,
		l:      cols,
		oracle: oracle.New(a, hdpcRow),
	}
}

// Solve runs the five-phase inactivation decoder over a, the constraint
// matrix, and d, the received symbol vector (length a.Rows()). hdpcRow
// marks, by row index into a, which rows are HDPC (dense, high-degree)
// constraint rows. cache, if non-nil, is consulted first for a previously
// recorded operation list keyed by numSourceSymbols; see the opcache
// package doc for its replay semantics.
//
// On success it returns the L intermediate symbols in logical column
// order. When the active constraint set turns out to be singular, it
// returns ErrCannotDecodeYet: the caller should supply more encoding
// symbols and retry with a freshly built matrix, not retry this call.
func Solve(a matrixstore.Matrix, d []symbol.Symbol, hdpcRow []bool, numSourceSymbols int, cache *opcache.Cache) ([]symbol.Symbol, error) {
	if a.Rows() != len(d) {
		panic("solver: matrix row count must equal symbol vector length")
	}
	if a.Cols() > len(d) {
		panic("solver: matrix must not have more columns than symbols")
	}

	if cache != nil {
		if ops, ok := cache.Get(numSourceSymbols); ok {
			return applyRecordedOps(ops, a.Cols(), d), nil
		}
	}

	dec := newDecoder(a, d, hdpcRow)
	result, err := dec.run()
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.PutOnce(numSourceSymbols, dec.recorded)
	}
	return result, nil
}

// run executes Phases 1 through 5 in order and reads back the L
// intermediate symbols.
func (dec *decoder) run() ([]symbol.Symbol, error) {
	if err := dec.phase1(); err != nil {
		return nil, err
	}
	if DebugAssertions {
		dec.verifyPhase1()
	}

	if err := dec.phase2(); err != nil {
		return nil, err
	}
	if DebugAssertions {
		dec.verifyPhase2()
	}

	dec.phase3()
	if DebugAssertions {
		dec.verifyPhase3()
	}

	dec.phase4()
	if DebugAssertions {
		dec.verifyPhase4()
	}

	dec.phase5()
	if DebugAssertions {
		dec.verifyPhase5()
	}

	result := make([]symbol.Symbol, dec.l)
	for k := 0; k < dec.l; k++ {
		result[dec.c[k]] = dec.d[dec.perm[k]]
	}
	return result, nil
}

// swapRows exchanges logical rows i and j in A, X, the oracle's per-row
// stats, and the row/D permutation, recording the step.
func (dec *decoder) swapRows(i, j int) {
	if i == j {
		return
	}
	dec.a.SwapRows(i, j)
	dec.x.SwapRows(i, j)
	dec.oracle.SwapRows(i, j)
	dec.perm[i], dec.perm[j] = dec.perm[j], dec.perm[i]
	dec.recorded = append(dec.recorded, opcache.Op{Kind: opcache.SwapRow, I: i, J: j})
}

// swapColumns exchanges logical columns i and j in A, X, and the column
// permutation. The oracle is not notified: it only ever reasons about
// rows, never original column identity.
func (dec *decoder) swapColumns(i, j int) {
	if i == j {
		return
	}
	dec.a.SwapColumns(i, j)
	dec.x.SwapColumns(i, j)
	dec.c[i], dec.c[j] = dec.c[j], dec.c[i]
	dec.recorded = append(dec.recorded, opcache.Op{Kind: opcache.SwapCol, I: i, J: j})
}

// fmaRows sets row dst to row dst + scalar*row src in A, and applies the
// same combination to D[perm[dst]]/D[perm[src]]. X is never touched here:
// per the algorithm's invariant, X only ever receives row/column swaps.
func (dec *decoder) fmaRows(dst, src int, scalar gf256.Octet) {
	if scalar == gf256.Zero {
		return
	}
	dec.a.FMARows(dst, src, scalar)
	dec.recordFmaD(dst, src, scalar)
}

// mulRow scales row in A by scalar and applies the same scale to
// D[perm[row]].
func (dec *decoder) mulRow(row int, scalar gf256.Octet) {
	if scalar == gf256.One {
		return
	}
	dec.a.MulRow(row, scalar)
	dec.recordMulD(row, scalar)
}

// recordFmaD applies an FMA to D alone (no matching A mutation) and
// records it. Phase 3 drives D's combination off X, which is read-only by
// that point, so it has no corresponding A operation to perform.
func (dec *decoder) recordFmaD(dst, src int, scalar gf256.Octet) {
	if scalar == gf256.Zero {
		return
	}
	if scalar == gf256.One {
		dec.d[dec.perm[dst]].AddAssign(dec.d[dec.perm[src]])
	} else {
		dec.d[dec.perm[dst]].FusedAddAssignMulScalar(dec.d[dec.perm[src]], scalar)
	}
	dec.recorded = append(dec.recorded, opcache.Op{Kind: opcache.FMA, I: dst, J: src, Scalar: scalar})
}

// recordMulD scales D[perm[row]] alone and records it; see recordFmaD.
func (dec *decoder) recordMulD(row int, scalar gf256.Octet) {
	if scalar == gf256.One {
		return
	}
	dec.d[dec.perm[row]].MulAssignScalar(scalar)
	dec.recorded = append(dec.recorded, opcache.Op{Kind: opcache.MulRow, I: row, Scalar: scalar})
}

// applyRecordedOps replays a cached operation list against a fresh
// permutation/D state without touching a matrix at all: the recorded ops
// fully determine the final readback, since swaps only ever permute c/perm
// and FMA/MulRow only ever combine D entries.
func applyRecordedOps(ops []opcache.Op, l int, d []symbol.Symbol) []symbol.Symbol {
	c := make([]int, l)
	for idx := range c {
		c[idx] = idx
	}
	perm := make([]int, len(d))
	for idx := range perm {
		perm[idx] = idx
	}

	for _, op := range ops {
		switch op.Kind {
		case opcache.SwapRow:
			perm[op.I], perm[op.J] = perm[op.J], perm[op.I]
		case opcache.SwapCol:
			c[op.I], c[op.J] = c[op.J], c[op.I]
		case opcache.FMA:
			if op.Scalar == gf256.One {
				d[perm[op.I]].AddAssign(d[perm[op.J]])
			} else {
				d[perm[op.I]].FusedAddAssignMulScalar(d[perm[op.J]], op.Scalar)
			}
		case opcache.MulRow:
			d[perm[op.I]].MulAssignScalar(op.Scalar)
		}
	}

	result := make([]symbol.Symbol, l)
	for k := 0; k < l; k++ {
		result[c[k]] = d[perm[k]]
	}
	return result
}
