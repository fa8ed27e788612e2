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

package symbol

import (
	"math/rand"
	"testing"

	"github.com/raptorq-go/raptorq/internal/gf256"
)

func randSymbol(n int) Symbol {
	s := NewSymbol(n)
	rand.Read(s)
	return s
}

func TestAddAssignMatchesByteXOR(t *testing.T) {
	for _, size := range []int{0, 1, 7, 41, 128, 4096} {
		a := randSymbol(size)
		b := randSymbol(size)
		want := make(Symbol, size)
		for i := 0; i < size; i++ {
			want[i] = a[i] ^ b[i]
		}
		a.AddAssign(b)
		for i := 0; i < size; i++ {
			if a[i] != want[i] {
				t.Fatalf("size %d: AddAssign mismatch at %d: got %d want %d", size, i, a[i], want[i])
			}
		}
	}
}

func TestMulAssignScalarMatchesOctetMul(t *testing.T) {
	scalar := gf256.Octet(rand.Intn(254) + 1)
	data := randSymbol(41)
	want := make(Symbol, len(data))
	for i := range data {
		want[i] = gf256.Octet(data[i]).Mul(scalar).Byte()
	}
	data.MulAssignScalar(scalar)
	for i := range data {
		if data[i] != want[i] {
			t.Fatalf("MulAssignScalar mismatch at %d: got %d want %d", i, data[i], want[i])
		}
	}
}

func TestMulAssignScalarByOneIsNoop(t *testing.T) {
	data := randSymbol(32)
	want := data.Clone()
	data.MulAssignScalar(gf256.One)
	for i := range data {
		if data[i] != want[i] {
			t.Fatalf("MulAssignScalar(1) changed byte %d: got %d want %d", i, data[i], want[i])
		}
	}
}

func TestFusedAddAssignMulScalar(t *testing.T) {
	scalar := gf256.Octet(rand.Intn(254) + 2)
	a := randSymbol(41)
	b := randSymbol(41)
	want := make(Symbol, len(a))
	for i := range a {
		acc := gf256.Octet(a[i])
		gf256.FMA(&acc, gf256.Octet(b[i]), scalar)
		want[i] = acc.Byte()
	}
	a.FusedAddAssignMulScalar(b, scalar)
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("FMA mismatch at %d: got %d want %d", i, a[i], want[i])
		}
	}
}

func TestFusedAddAssignMulScalarRejectsZeroAndOne(t *testing.T) {
	a := randSymbol(8)
	b := randSymbol(8)
	for _, scalar := range []gf256.Octet{gf256.Zero, gf256.One} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for scalar %v", scalar)
				}
			}()
			a.FusedAddAssignMulScalar(b, scalar)
		}()
	}
}

func TestIsZero(t *testing.T) {
	z := NewSymbol(16)
	if !z.IsZero() {
		t.Errorf("fresh symbol should be zero")
	}
	z[5] = 1
	if z.IsZero() {
		t.Errorf("symbol with a set byte should not be zero")
	}
}
