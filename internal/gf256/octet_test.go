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

package gf256

import (
	"math/rand"
	"testing"
)

func TestAdditionIsOwnInverse(t *testing.T) {
	a := Octet(rand.Intn(256))
	if got := a.Add(a); got != Zero {
		t.Errorf("a+a = %v, want 0", got)
	}
}

func TestMultiplicationIdentity(t *testing.T) {
	for v := 0; v < 256; v++ {
		a := Octet(v)
		if got := a.Mul(One); got != a {
			t.Errorf("%v*1 = %v, want %v", a, got, a)
		}
	}
}

func TestMultiplicativeInverse(t *testing.T) {
	for v := 1; v < 256; v++ {
		a := Octet(v)
		if got := a.Mul(a.Inverse()); got != One {
			t.Errorf("%v * (1/%v) = %v, want 1", a, a, got)
		}
	}
}

func TestDivisionOfSelf(t *testing.T) {
	for v := 1; v < 256; v++ {
		a := Octet(v)
		if got := a.Div(a); got != One {
			t.Errorf("%v/%v = %v, want 1", a, a, got)
		}
	}
}

func TestDivisionByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic dividing by zero octet")
		}
	}()
	One.Div(Zero)
}

func TestFMAMatchesMulThenAdd(t *testing.T) {
	for i := 0; i < 255; i++ {
		for j := 0; j < 255; j++ {
			b, c := Octet(i), Octet(j)
			acc := Octet(rand.Intn(256))
			want := acc.Add(b.Mul(c))
			got := acc
			FMA(&got, b, c)
			if got != want {
				t.Fatalf("FMA(%v,%v,%v) = %v, want %v", acc, b, c, got, want)
			}
		}
	}
}

func TestExpLogTableBounds(t *testing.T) {
	max := 0
	for _, v := range logTable {
		if int(v) > max {
			max = int(v)
		}
	}
	if 2*max >= len(expTable) {
		t.Fatalf("log table max %d too large for exp table of length %d", max, len(expTable))
	}
}

func TestAlphaMatchesExpTable(t *testing.T) {
	for i := 0; i < 255; i++ {
		if got := Alpha(uint8(i)); got != Octet(expTable[i]) {
			t.Errorf("Alpha(%d) = %v, want %v", i, got, expTable[i])
		}
	}
}
