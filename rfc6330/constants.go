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

// SystematicConstants holds the per-block parameters RFC 6330 section 5.6
// derives from K, the number of source symbols in a block. See the package
// doc for how this implementation's derivation deviates from the RFC's
// Appendix A table.
type SystematicConstants struct {
	K  int // number of source symbols in the block
	Kp int // K', the extended source block size (here, equal to K)
	J  int // systematic index (placeholder: equal to Kp, see package doc)
	S  int // number of LDPC symbols
	H  int // number of HDPC symbols
	W  int // number of LT symbols, Kp+S
	B  int // W-S, the count of G_LDPC,1 columns
	P  int // number of permanently-inactive symbols, equal to H
	P1 int // smallest prime >= P
	L  int // total intermediate symbols, Kp+S+H
}

// Constants derives SystematicConstants for a block of k source symbols.
// It is grounded in the same formula google-gofountain's intermediateSymbols
// uses to derive (L, S, H) from K: the smallest X with X(X-1) >= 2K, the
// smallest prime S >= ceil(0.01K)+X, and the smallest H with
// choose(H, ceil(H/2)) >= K+S.
func Constants(k int) SystematicConstants {
	if k < 1 {
		panic("rfc6330: Constants requires at least one source symbol")
	}

	x := 1
	for x*(x-1) < 2*k {
		x++
	}

	s := ceilDiv(k, 100) + x
	s = smallestPrimeGreaterOrEqual(s)

	h := 1
	for centerBinomial(h) < k+s {
		h++
	}

	kp := k
	w := kp + s
	b := w - s
	p := h
	p1 := smallestPrimeGreaterOrEqual(p)
	l := kp + s + h

	return SystematicConstants{
		K:  k,
		Kp: kp,
		J:  kp,
		S:  s,
		H:  h,
		W:  w,
		B:  b,
		P:  p,
		P1: p1,
		L:  l,
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// deg implements Deg[v] from RFC 6330 section 5.3.5.2, unaltered: this
// table was present in the retrieved reference material (base.rs), so
// unlike rand below, it is reproduced bit-exact rather than re-derived.
func deg(v uint32, ltSymbols int) int {
	if v >= 1048576 {
		panic("rfc6330: deg argument out of range")
	}
	f := [31]uint32{
		0, 5243, 529531, 704294, 791675, 844104, 879057, 904023, 922747,
		937311, 948962, 958494, 966438, 973160, 978921, 983914, 988283,
		992138, 995565, 998631, 1001391, 1003887, 1006157, 1008229, 1010129,
		1011876, 1013490, 1014983, 1016370, 1017662, 1048576,
	}
	for d := 1; d < len(f); d++ {
		if v < f[d] {
			if d < ltSymbols-2 {
				return d
			}
			return ltSymbols - 2
		}
	}
	panic("rfc6330: deg fell through its probability table")
}

// randTable0 and randTable1 stand in for RFC 6330's V0 and V1 tables (256
// entries each, section 5.4.4.1). The RFC's exact values are not present in
// this repository's reference material (see package doc); these are
// generated deterministically at init time from a fixed seed so that rand
// is still a pure, repeatable function of its arguments, just not the
// RFC-specified one.
var randTable0, randTable1 [256]uint32

func init() {
	state := uint32(0x2545f491)
	for i := range randTable0 {
		state = state*1664525 + 1013904223
		randTable0[i] = state
	}
	state = uint32(0x9e3779b9)
	for i := range randTable1 {
		state = state*1664525 + 1013904223
		randTable1[i] = state
	}
}

// rnd implements the Rand[] pseudo-random function of RFC 6330 section
// 5.4.4.1: (V0[(y+i) mod 256] XOR V1[(floor(y/256)+i) mod 256]) mod m.
func rnd(y, i, m uint32) uint32 {
	v0 := randTable0[(y+i)%256]
	v1 := randTable1[((y/256)+i)%256]
	return (v0 ^ v1) % m
}

// intermediateTuple implements Tuple[K', X] from RFC 6330 section 5.3.5.4,
// returning (d, a, b, d1, a1, b1) for the given encoding symbol ID x against
// a block whose extended size is kp.
func intermediateTuple(c SystematicConstants, x uint32) (d, a, b, d1, a1, b1 uint32) {
	j := uint32(c.J)
	w := uint32(c.W)
	p1 := uint32(c.P1)

	aVal := 53591 + j*997
	if aVal%2 == 0 {
		aVal++
	}
	bVal := 10267 * (j + 1)
	y := bVal + x*aVal // RFC reduces mod 2^32; uint32 wraparound does this for us

	v := rnd(y, 0, 1048576)
	d = uint32(deg(v, int(w)))
	a = 1 + rnd(y, 1, w-1)
	b = rnd(y, 2, w)

	d1 = 2
	if d < 4 {
		d1 = 2 + rnd(x, 3, 2)
	}
	a1 = 1 + rnd(x, 4, p1-1)
	b1 = rnd(x, 5, p1)

	return d, a, b, d1, a1, b1
}
