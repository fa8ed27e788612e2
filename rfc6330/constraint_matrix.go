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

package rfc6330

import (
	"sort"

	"github.com/raptorq-go/raptorq/internal/gf256"
	"github.com/raptorq-go/raptorq/internal/matrixstore"
)

// generateGamma builds the lower-triangular GAMMA matrix of RFC 6330
// section 5.3.3.3: GAMMA[i][j] = alpha(i-j) for j <= i, else 0.
func generateGamma(kp, s int) *matrixstore.Dense {
	size := kp + s
	m := matrixstore.NewDense(size, size)
	for i := 0; i < size; i++ {
		for j := 0; j <= i; j++ {
			m.Set(i, j, gf256.Alpha(uint8((i-j)%255)))
		}
	}
	return m
}

// generateMT builds the MT matrix of RFC 6330 section 5.3.3.3: H rows over
// Kp+S columns. Each column j in [0, Kp+S-1) has a one in the two rows
// chosen by rnd, and the last column holds a fixed alpha(i) in row i.
func generateMT(h, kp, s int) *matrixstore.Dense {
	m := matrixstore.NewDense(h, kp+s)
	for i := 0; i < h; i++ {
		for j := 0; j <= kp+s-2; j++ {
			first := rnd(uint32(j+1), 6, uint32(h))
			second := (rnd(uint32(j+1), 6, uint32(h)) + rnd(uint32(j+1), 7, uint32(h-1)) + 1) % uint32(h)
			if uint32(i) == first || uint32(i) == second {
				m.Set(i, j, gf256.One)
			}
		}
		m.Set(i, kp+s-1, gf256.Alpha(uint8(i)))
	}
	return m
}

// multiplyDense computes a*b for two Dense matrices, used once per
// Constants-derived block to build G_HDPC = MT * GAMMA. Both operands are
// at most a few hundred rows/columns, so a plain triple loop is fine; this
// runs once per encode/decode setup, not per solver iteration.
func multiplyDense(a, b *matrixstore.Dense) *matrixstore.Dense {
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	if inner != b.Rows() {
		panic("rfc6330: multiplyDense dimension mismatch")
	}
	out := matrixstore.NewDense(rows, cols)
	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			av := a.Get(i, k)
			if av == gf256.Zero {
				continue
			}
			for j := 0; j < cols; j++ {
				bv := b.Get(k, j)
				if bv == gf256.Zero {
					continue
				}
				acc := out.Get(i, j)
				gf256.FMA(&acc, av, bv)
				out.Set(i, j, acc)
			}
		}
	}
	return out
}

// encIndices simulates Enc[] from RFC 6330 section 5.3.5.3: given the
// (d,a,b,d1,a1,b1) tuple for an encoding symbol, it returns the set of
// intermediate-symbol column indices that symbol's LT encoding touches.
func encIndices(c SystematicConstants, d, a, b, d1, a1, b1 uint32) []int {
	w := uint32(c.W)
	p := uint32(c.P)
	p1 := uint32(c.P1)

	if a < 1 || a >= w {
		panic("rfc6330: encIndices: a out of range")
	}
	if b >= w {
		panic("rfc6330: encIndices: b out of range")
	}
	if d1 != 2 && d1 != 3 {
		panic("rfc6330: encIndices: d1 must be 2 or 3")
	}
	if a1 < 1 || a1 >= p1 {
		panic("rfc6330: encIndices: a1 out of range")
	}
	if b1 >= p1 {
		panic("rfc6330: encIndices: b1 out of range")
	}

	seen := make(map[int]struct{})
	seen[int(b)] = struct{}{}
	for j := uint32(1); j < d; j++ {
		b = (b + a) % w
		seen[int(b)] = struct{}{}
	}

	for b1 >= p {
		b1 = (b1 + a1) % p1
	}
	seen[int(w+b1)] = struct{}{}
	for j := uint32(1); j < d1; j++ {
		b1 = (b1 + a1) % p1
		for b1 >= p {
			b1 = (b1 + a1) % p1
		}
		seen[int(w+b1)] = struct{}{}
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// GenerateConstraintMatrix builds the (S+H+len(esis)) x L constraint matrix
// A for a block with the given SystematicConstants: the S LDPC rows and H
// HDPC rows come first and need no ESI, followed by one LT row per entry of
// esis. esis must have at least L-S-H entries (the minimum needed for a
// square, potentially-invertible system); a decoder wanting the solver's
// redundancy margin passes more. This is RFC 6330 section 5.3.3.4.2, ported
// from the Rust original's generate_constraint_matrix.
func GenerateConstraintMatrix(c SystematicConstants, esis []uint32) *matrixstore.Dense {
	if len(esis) < c.L-c.S-c.H {
		panic("rfc6330: GenerateConstraintMatrix needs at least L-S-H encoding symbol ids")
	}

	m := matrixstore.NewDense(c.S+c.H+len(esis), c.L)

	// G_LDPC,1: section 5.3.3.3.
	for i := 0; i < c.B; i++ {
		a := 1 + i/c.S

		b := i % c.S
		m.Set(b, i, gf256.One)

		b = (b + a) % c.S
		m.Set(b, i, gf256.One)

		b = (b + a) % c.S
		m.Set(b, i, gf256.One)
	}

	// I_S.
	for i := 0; i < c.S; i++ {
		m.Set(i, i+c.B, gf256.One)
	}

	// G_LDPC,2: section 5.3.3.3.
	for i := 0; i < c.S; i++ {
		m.Set(i, (i%c.P)+c.W, gf256.One)
		m.Set(i, ((i+1)%c.P)+c.W, gf256.One)
	}

	// G_HDPC = MT * GAMMA.
	gHdpc := multiplyDense(generateMT(c.H, c.Kp, c.S), generateGamma(c.Kp, c.S))
	for i := 0; i < c.H; i++ {
		for j := 0; j < c.Kp+c.S; j++ {
			m.Set(i+c.S, j, gHdpc.Get(i, j))
		}
	}

	// I_H.
	for i := 0; i < c.H; i++ {
		m.Set(i+c.S, i+c.Kp+c.S, gf256.One)
	}

	// G_ENC: one LT row per encoding symbol ID.
	for row, esi := range esis {
		d, a, b, d1, a1, b1 := intermediateTuple(c, esi)
		for _, j := range encIndices(c, d, a, b, d1, a1, b1) {
			m.Set(row+c.S+c.H, j, gf256.One)
		}
	}

	return m
}

// HDPCRowMask returns a rows-length mask marking which rows of a Constants-c
// matrix are HDPC rows, in the shape the solver's oracle expects. rows is
// the total row count of the matrix GenerateConstraintMatrix produced
// (S+H+len(esis), which may exceed L when the caller supplied extra
// encoding symbols for redundancy).
func HDPCRowMask(c SystematicConstants, rows int) []bool {
	mask := make([]bool, rows)
	for row := c.S; row < c.S+c.H; row++ {
		mask[row] = true
	}
	return mask
}
