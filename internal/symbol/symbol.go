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

// Package symbol implements bulk arithmetic over RaptorQ symbols: fixed
// length byte buffers treated as vectors of gf256.Octet. These operations
// sit in the solver's innermost loop, so AddAssign is dispatched through a
// SIMD-capable xor rather than a byte-at-a-time loop.
package symbol

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/templexxx/xorsimd"

	"github.com/raptorq-go/raptorq/internal/gf256"
)

// Symbol is a fixed-size run of bytes, each an element of GF(256).
type Symbol []byte

// NewSymbol allocates a zeroed symbol of the given length.
func NewSymbol(size int) Symbol {
	return make(Symbol, size)
}

// hasFastXOR reports whether the CPU exposes an instruction set
// templexxx/xorsimd itself will use to accelerate Bytes beyond its SSE2
// baseline. RaptorQ symbols are XOR'd on every row elimination, so this
// check runs once and is cached at package init rather than per call.
var hasFastXOR = cpuid.CPU.Supports(cpuid.AVX2) || cpuid.CPU.Supports(cpuid.AVX512F)

// AddAssign sets s = s + other (GF(256) addition is xor). s and other must
// have equal length.
func (s Symbol) AddAssign(other Symbol) {
	if len(s) != len(other) {
		panic("symbol: AddAssign length mismatch")
	}
	if len(s) == 0 {
		return
	}
	// xorsimd.Bytes dispatches to AVX512/AVX2/SSE2 internally based on the
	// same cpu feature probe as hasFastXOR; the explicit check here only
	// gates whether it's worth paying the call overhead for tiny symbols.
	if hasFastXOR || len(s) >= 64 {
		xorsimd.Bytes(s, s, other)
		return
	}
	for i := range s {
		s[i] ^= other[i]
	}
}

// MulAssignScalar sets s = s*scalar. Unlike AddAssign this is a GF(256)
// table multiply, not a plain xor, so there is no SIMD shortcut available
// in the vectorized xor library; it is a straight table-lookup loop.
func (s Symbol) MulAssignScalar(scalar gf256.Octet) {
	if scalar == gf256.One {
		return
	}
	if scalar == gf256.Zero {
		for i := range s {
			s[i] = 0
		}
		return
	}
	for i := range s {
		s[i] = gf256.Octet(s[i]).Mul(scalar).Byte()
	}
}

// FusedAddAssignMulScalar sets s = s + other*scalar. scalar must not be
// zero or one: callers should use AddAssign directly for scalar==1, and
// scalar==0 is a no-op the caller shouldn't be making in the first place.
func (s Symbol) FusedAddAssignMulScalar(other Symbol, scalar gf256.Octet) {
	if scalar == gf256.Zero {
		panic("symbol: FusedAddAssignMulScalar called with zero scalar")
	}
	if scalar == gf256.One {
		panic("symbol: FusedAddAssignMulScalar called with scalar one, use AddAssign")
	}
	if len(s) != len(other) {
		panic("symbol: FusedAddAssignMulScalar length mismatch")
	}
	for i := range s {
		acc := gf256.Octet(s[i])
		gf256.FMA(&acc, gf256.Octet(other[i]), scalar)
		s[i] = acc.Byte()
	}
}

// Clone returns an independent copy of s.
func (s Symbol) Clone() Symbol {
	out := make(Symbol, len(s))
	copy(out, s)
	return out
}

// IsZero reports whether every byte of s is zero.
func (s Symbol) IsZero() bool {
	for _, b := range s {
		if b != 0 {
			return false
		}
	}
	return true
}
