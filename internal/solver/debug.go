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

import (
	"fmt"

	"github.com/raptorq-go/raptorq/internal/gf256"
)

// The verify* methods check the phase-boundary invariants DebugAssertions
// exists to catch. A failure here means the phase implementation itself is
// wrong, not that the input was unsolvable, so they panic rather than
// return an error.

func (dec *decoder) verifyPhase1() {
	if dec.i+dec.u != dec.l {
		panic(fmt.Sprintf("solver: phase1 invariant violated: i=%d u=%d l=%d", dec.i, dec.u, dec.l))
	}
	for r := dec.i; r < dec.a.Rows(); r++ {
		for col := 0; col < dec.i; col++ {
			if dec.a.Get(r, col) != gf256.Zero {
				panic(fmt.Sprintf("solver: phase1 left a non-zero at A[%d][%d], below the pivoted block", r, col))
			}
		}
	}
}

func (dec *decoder) verifyPhase2() {
	if dec.a.Rows() != dec.l || dec.a.Cols() != dec.l {
		panic(fmt.Sprintf("solver: phase2 left A as %dx%d, want %dx%d", dec.a.Rows(), dec.a.Cols(), dec.l, dec.l))
	}
	for r := dec.i; r < dec.i+dec.u; r++ {
		for c := dec.i; c < dec.i+dec.u; c++ {
			want := gf256.Zero
			if r == c {
				want = gf256.One
			}
			if dec.a.Get(r, c) != want {
				panic(fmt.Sprintf("solver: phase2 left A[%d][%d]=%v, want the u x u identity", r, c, dec.a.Get(r, c)))
			}
		}
	}
}

func (dec *decoder) verifyPhase3() {
	if dec.a.Rows() != dec.l || dec.a.Cols() != dec.l {
		panic("solver: phase3 must not change A's dimensions")
	}
}

func (dec *decoder) verifyPhase4() {
	for r := 0; r < dec.i; r++ {
		for c := dec.i; c < dec.l; c++ {
			if dec.a.Get(r, c) != gf256.Zero {
				panic(fmt.Sprintf("solver: phase4 left a non-zero at A[%d][%d], inside U", r, c))
			}
		}
	}
}

func (dec *decoder) verifyPhase5() {
	for r := 0; r < dec.i; r++ {
		for c := 0; c < dec.i; c++ {
			want := gf256.Zero
			if r == c {
				want = gf256.One
			}
			if dec.a.Get(r, c) != want {
				panic(fmt.Sprintf("solver: phase5 left A[%d][%d]=%v, want the i x i identity", r, c, dec.a.Get(r, c)))
			}
		}
	}
}
