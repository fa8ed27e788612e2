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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantsRelationships(t *testing.T) {
	for _, k := range []int{1, 2, 10, 50, 137, 1000} {
		c := Constants(k)

		require.Equal(t, k, c.Kp, "Kp must equal K for k=%d", k)
		require.Equal(t, c.Kp+c.S, c.W, "W = Kp+S for k=%d", k)
		require.Equal(t, c.W-c.S, c.B, "B = W-S for k=%d", k)
		require.Equal(t, c.H, c.P, "P = H for k=%d", k)
		require.Equal(t, c.Kp+c.S+c.H, c.L, "L = Kp+S+H for k=%d", k)
		require.True(t, isPrime(c.S), "S must be prime for k=%d", k)
		require.True(t, isPrime(c.P1), "P1 must be prime for k=%d", k)
		require.GreaterOrEqual(t, c.P1, c.P, "P1 must be >= P for k=%d", k)
		require.GreaterOrEqual(t, centerBinomial(c.H), c.K+c.S, "H must satisfy its defining inequality for k=%d", k)
	}
}

func TestConstantsPanicsOnNonPositiveK(t *testing.T) {
	require.Panics(t, func() { Constants(0) })
	require.Panics(t, func() { Constants(-1) })
}

func TestDegMonotonic(t *testing.T) {
	w := 40
	prev := 0
	for v := uint32(0); v < 1048576; v += 2048 {
		d := deg(v, w)
		require.GreaterOrEqual(t, d, prev)
		require.LessOrEqual(t, d, w-2)
		prev = d
	}
}

func TestIntermediateTupleInRange(t *testing.T) {
	c := Constants(20)
	for x := uint32(0); x < 100; x++ {
		d, a, b, d1, a1, b1 := intermediateTuple(c, x)
		require.GreaterOrEqual(t, a, uint32(1))
		require.Less(t, a, uint32(c.W))
		require.Less(t, b, uint32(c.W))
		require.True(t, d1 == 2 || d1 == 3)
		require.GreaterOrEqual(t, a1, uint32(1))
		require.Less(t, a1, uint32(c.P1))
		require.Less(t, b1, uint32(c.P1))
		require.GreaterOrEqual(t, d, uint32(0))
	}
}

func TestChooseAndCenterBinomial(t *testing.T) {
	require.Equal(t, 1, choose(5, 0))
	require.Equal(t, 5, choose(5, 1))
	require.Equal(t, 10, choose(5, 2))
	require.Equal(t, 10, choose(5, 3))
	require.Equal(t, 6, centerBinomial(4))
	require.Equal(t, 20, centerBinomial(6))
}

func TestSmallestPrimeGreaterOrEqual(t *testing.T) {
	require.Equal(t, 2, smallestPrimeGreaterOrEqual(0))
	require.Equal(t, 2, smallestPrimeGreaterOrEqual(2))
	require.Equal(t, 5, smallestPrimeGreaterOrEqual(4))
	require.Equal(t, 101, smallestPrimeGreaterOrEqual(100))
}

func TestPartition(t *testing.T) {
	il, is, jl, js := partition(10, 3)
	require.Equal(t, jl*il+js*is, 10)

	il, is, jl, js = partition(9, 3)
	require.Equal(t, 0, il)
	require.Equal(t, 0, jl)
	require.Equal(t, 3, is)
	require.Equal(t, 3, js)
}
