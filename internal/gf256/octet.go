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

// Package gf256 implements arithmetic over GF(256), the Galois field RFC
// 6330 uses for its symbol operations. Octet addition and subtraction are
// bitwise xor; multiplication and division go through precomputed
// exponential and logarithm tables (RFC 6330 section 5.7.3/5.7.4).
package gf256

// expTable holds alpha^i for i in [0, 510). It is longer than 256 entries
// so that a sum of two log values, each at most 254, can be looked up
// without a modular reduction.
var expTable = [510]byte{
	1, 2, 4, 8, 16, 32, 64, 128, 29, 58, 116, 232, 205, 135, 19, 38, 76,
	152, 45, 90, 180, 117, 234, 201, 143, 3, 6, 12, 24, 48, 96, 192, 157,
	39, 78, 156, 37, 74, 148, 53, 106, 212, 181, 119, 238, 193, 159, 35,
	70, 140, 5, 10, 20, 40, 80, 160, 93, 186, 105, 210, 185, 111, 222,
	161, 95, 190, 97, 194, 153, 47, 94, 188, 101, 202, 137, 15, 30, 60,
	120, 240, 253, 231, 211, 187, 107, 214, 177, 127, 254, 225, 223, 163,
	91, 182, 113, 226, 217, 175, 67, 134, 17, 34, 68, 136, 13, 26, 52,
	104, 208, 189, 103, 206, 129, 31, 62, 124, 248, 237, 199, 147, 59,
	118, 236, 197, 151, 51, 102, 204, 133, 23, 46, 92, 184, 109, 218,
	169, 79, 158, 33, 66, 132, 21, 42, 84, 168, 77, 154, 41, 82, 164, 85,
	170, 73, 146, 57, 114, 228, 213, 183, 115, 230, 209, 191, 99, 198,
	145, 63, 126, 252, 229, 215, 179, 123, 246, 241, 255, 227, 219, 171,
	75, 150, 49, 98, 196, 149, 55, 110, 220, 165, 87, 174, 65, 130, 25,
	50, 100, 200, 141, 7, 14, 28, 56, 112, 224, 221, 167, 83, 166, 81,
	162, 89, 178, 121, 242, 249, 239, 195, 155, 43, 86, 172, 69, 138, 9,
	18, 36, 72, 144, 61, 122, 244, 245, 247, 243, 251, 235, 203, 139, 11,
	22, 44, 88, 176, 125, 250, 233, 207, 131, 27, 54, 108, 216, 173, 71,
	142, 1, 2, 4, 8, 16, 32, 64, 128, 29, 58, 116, 232, 205, 135, 19, 38,
	76, 152, 45, 90, 180, 117, 234, 201, 143, 3, 6, 12, 24, 48, 96, 192,
	157, 39, 78, 156, 37, 74, 148, 53, 106, 212, 181, 119, 238, 193, 159,
	35, 70, 140, 5, 10, 20, 40, 80, 160, 93, 186, 105, 210, 185, 111,
	222, 161, 95, 190, 97, 194, 153, 47, 94, 188, 101, 202, 137, 15, 30,
	60, 120, 240, 253, 231, 211, 187, 107, 214, 177, 127, 254, 225, 223,
	163, 91, 182, 113, 226, 217, 175, 67, 134, 17, 34, 68, 136, 13, 26,
	52, 104, 208, 189, 103, 206, 129, 31, 62, 124, 248, 237, 199, 147,
	59, 118, 236, 197, 151, 51, 102, 204, 133, 23, 46, 92, 184, 109, 218,
	169, 79, 158, 33, 66, 132, 21, 42, 84, 168, 77, 154, 41, 82, 164, 85,
	170, 73, 146, 57, 114, 228, 213, 183, 115, 230, 209, 191, 99, 198,
	145, 63, 126, 252, 229, 215, 179, 123, 246, 241, 255, 227, 219, 171,
	75, 150, 49, 98, 196, 149, 55, 110, 220, 165, 87, 174, 65, 130, 25,
	50, 100, 200, 141, 7, 14, 28, 56, 112, 224, 221, 167, 83, 166, 81,
	162, 89, 178, 121, 242, 249, 239, 195, 155, 43, 86, 172, 69, 138, 9,
	18, 36, 72, 144, 61, 122, 244, 245, 247, 243, 251, 235, 203, 139, 11,
	22, 44, 88, 176, 125, 250, 233, 207, 131, 27, 54, 108, 216, 173, 71,
	142,
}

// logTable holds the discrete log of i base alpha, zero-indexed with a
// dummy leading zero for the (undefined) log of zero.
var logTable = [256]byte{
	0, 0, 1, 25, 2, 50, 26, 198, 3, 223, 51, 238, 27, 104, 199, 75, 4, 100,
	224, 14, 52, 141, 239, 129, 28, 193, 105, 248, 200, 8, 76, 113, 5,
	138, 101, 47, 225, 36, 15, 33, 53, 147, 142, 218, 240, 18, 130, 69,
	29, 181, 194, 125, 106, 39, 249, 185, 201, 154, 9, 120, 77, 228, 114,
	166, 6, 191, 139, 98, 102, 221, 48, 253, 226, 152, 37, 179, 16, 145,
	34, 136, 54, 208, 148, 206, 143, 150, 219, 189, 241, 210, 19, 92,
	131, 56, 70, 64, 30, 66, 182, 163, 195, 72, 126, 110, 107, 58, 40,
	84, 250, 133, 186, 61, 202, 94, 155, 159, 10, 21, 121, 43, 78, 212,
	229, 172, 115, 243, 167, 87, 7, 112, 192, 247, 140, 128, 99, 13, 103,
	74, 222, 237, 49, 197, 254, 24, 227, 165, 153, 119, 38, 184, 180,
	124, 17, 68, 146, 217, 35, 32, 137, 46, 55, 63, 209, 91, 149, 188,
	207, 205, 144, 135, 151, 178, 220, 252, 190, 97, 242, 86, 211, 171,
	20, 42, 93, 158, 132, 60, 57, 83, 71, 109, 65, 162, 31, 45, 67, 216,
	183, 123, 164, 118, 196, 23, 73, 236, 127, 12, 111, 246, 108, 161,
	59, 82, 41, 157, 85, 170, 251, 96, 134, 177, 187, 204, 62, 90, 203,
	89, 95, 176, 156, 169, 160, 81, 11, 245, 22, 235, 122, 117, 44, 215,
	79, 174, 213, 233, 230, 231, 173, 232, 116, 214, 244, 234, 168, 80,
	88, 175,
}

// Octet is a single element of GF(256).
type Octet uint8

// Zero is the additive identity.
const Zero Octet = 0

// One is the multiplicative identity.
const One Octet = 1

// Alpha returns alpha^i, the generator of GF(256)* raised to the i-th
// power, per RFC 6330 section 5.7.3. i must be in [0, 255).
func Alpha(i uint8) Octet {
	return Octet(expTable[i])
}

// Add returns a+b. Addition in GF(256) is bitwise xor and is its own
// inverse, so Add also implements subtraction.
func (a Octet) Add(b Octet) Octet {
	return a ^ b
}

// Sub returns a-b. In GF(256), subtraction is identical to addition.
func (a Octet) Sub(b Octet) Octet {
	return a ^ b
}

// Mul returns a*b via the log/exp tables.
func (a Octet) Mul(b Octet) Octet {
	if a == 0 || b == 0 {
		return 0
	}
	logSum := int(logTable[a]) + int(logTable[b])
	return Octet(expTable[logSum])
}

// Div returns a/b. b must be nonzero.
func (a Octet) Div(b Octet) Octet {
	if b == 0 {
		panic("gf256: division by zero octet")
	}
	if a == 0 {
		return 0
	}
	logDiff := 255 + int(logTable[a]) - int(logTable[b])
	return Octet(expTable[logDiff])
}

// Inverse returns 1/a. a must be nonzero.
func (a Octet) Inverse() Octet {
	return One.Div(a)
}

// FMA sets *acc = *acc + b*c, the fused multiply-add RFC 6330 section 5.7.2
// calls out as the primitive the rest of the row/symbol arithmetic builds
// on. It is a no-op when b or c is zero, skipping the table lookups.
func FMA(acc *Octet, b, c Octet) {
	if b == 0 || c == 0 {
		return
	}
	logSum := int(logTable[b]) + int(logTable[c])
	*acc ^= Octet(expTable[logSum])
}

// Byte returns the underlying value as a byte.
func (a Octet) Byte() byte {
	return byte(a)
}
