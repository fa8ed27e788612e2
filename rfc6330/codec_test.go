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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raptorq-go/raptorq/internal/opcache"
	"github.com/raptorq-go/raptorq/internal/symbol"
)

const testSymbolSize = 16

func randomSource(t *testing.T, k int, seed int64) []symbol.Symbol {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	source := make([]symbol.Symbol, k)
	for i := range source {
		s := symbol.NewSymbol(testSymbolSize)
		r.Read(s)
		source[i] = s
	}
	return source
}

func requireEqualSymbols(t *testing.T, want, got []symbol.Symbol) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, []byte(want[i]), []byte(got[i]), "symbol %d", i)
	}
}

func TestEncodeDecodeExactSymbols(t *testing.T) {
	k := 20
	source := randomSource(t, k, 1)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)

	dec := NewDecoder(k, testSymbolSize, nil)
	n := enc.Constants().L - enc.Constants().S - enc.Constants().H
	for esi := 0; esi < n; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}

	got, err := dec.Decode()
	require.NoError(t, err)
	requireEqualSymbols(t, source, got)
}

func TestEncodeDecodeSourceSymbolsOnly(t *testing.T) {
	k := 15
	source := randomSource(t, k, 2)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)

	dec := NewDecoder(k, testSymbolSize, nil)
	for esi := 0; esi < k-1; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}
	_, err = dec.Decode()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotEnoughSymbols)
}

func TestEncodeDecodeWithRepairSymbolsReplacingLoss(t *testing.T) {
	k := 25
	source := randomSource(t, k, 3)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)
	c := enc.Constants()

	dec := NewDecoder(k, testSymbolSize, nil)
	// drop the first 10 source symbols, replace with repair symbols.
	for esi := 10; esi < k; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}
	n := c.L - c.S - c.H
	for esi := k; dec.NumReceived() < n; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}

	got, err := dec.Decode()
	require.NoError(t, err)
	requireEqualSymbols(t, source, got)
}

func TestEncodeDecodeWithRedundantRepairSymbols(t *testing.T) {
	k := 25
	source := randomSource(t, k, 4)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)
	c := enc.Constants()

	dec := NewDecoder(k, testSymbolSize, nil)
	n := c.L - c.S - c.H + 12
	for esi := k; dec.NumReceived() < n; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}

	got, err := dec.Decode()
	require.NoError(t, err)
	requireEqualSymbols(t, source, got)
}

func TestEncodeDecodeRepairOnly20Extra(t *testing.T) {
	k := 30
	source := randomSource(t, k, 5)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)
	c := enc.Constants()

	dec := NewDecoder(k, testSymbolSize, nil)
	n := c.L - c.S - c.H + 20
	for esi := k; dec.NumReceived() < n; esi++ {
		require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
	}

	got, err := dec.Decode()
	require.NoError(t, err)
	requireEqualSymbols(t, source, got)
}

func TestDuplicatePacketsIgnored(t *testing.T) {
	k := 12
	source := randomSource(t, k, 6)

	enc, err := NewEncoder(source, nil)
	require.NoError(t, err)

	dec := NewDecoder(k, testSymbolSize, nil)
	n := enc.Constants().L - enc.Constants().S - enc.Constants().H
	for esi := 0; esi < n; esi++ {
		p := enc.Packet(0, uint32(esi))
		require.NoError(t, dec.AddPacket(p))
		require.NoError(t, dec.AddPacket(p))
	}
	require.Equal(t, n, dec.NumReceived())

	got, err := dec.Decode()
	require.NoError(t, err)
	requireEqualSymbols(t, source, got)
}

func TestAddPacketRejectsWrongSymbolSize(t *testing.T) {
	dec := NewDecoder(10, testSymbolSize, nil)
	err := dec.AddPacket(Packet{EncodingSymbolID: 0, Data: make([]byte, testSymbolSize+1)})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSymbolSizeMismatch)
}

func TestEncoderUsesOpcacheAcrossEqualSizedBlocks(t *testing.T) {
	cache := opcache.New()

	k := 18
	for seed := int64(0); seed < 3; seed++ {
		source := randomSource(t, k, 100+seed)
		enc, err := NewEncoder(source, cache)
		require.NoError(t, err)

		dec := NewDecoder(k, testSymbolSize, cache)
		n := enc.Constants().L - enc.Constants().S - enc.Constants().H
		for esi := 0; esi < n; esi++ {
			require.NoError(t, dec.AddPacket(enc.Packet(0, uint32(esi))))
		}
		got, err := dec.Decode()
		require.NoError(t, err)
		requireEqualSymbols(t, source, got)
	}
}

func TestPacketRoundTripBinary(t *testing.T) {
	p := Packet{SourceBlockNumber: 7, EncodingSymbolID: 1<<20 + 3, Data: []byte("hello world12345")}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)

	var got Packet
	require.NoError(t, got.UnmarshalBinary(buf, len(p.Data)))
	require.Equal(t, p.SourceBlockNumber, got.SourceBlockNumber)
	require.Equal(t, p.EncodingSymbolID, got.EncodingSymbolID)
	require.Equal(t, p.Data, got.Data)
}

func TestPacketMarshalRejectsOversizedESI(t *testing.T) {
	p := Packet{EncodingSymbolID: maxESI + 1, Data: []byte{0}}
	_, err := p.MarshalBinary()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTooManySymbols)
}

func TestOTIRoundTripBinary(t *testing.T) {
	oti := ObjectTransmissionInformation{
		TransferLength: 123456789,
		SymbolSize:     1280,
		Z:              4,
		N:              2,
		Alignment:      4,
	}
	buf, err := oti.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, 12)

	var got ObjectTransmissionInformation
	require.NoError(t, got.UnmarshalBinary(buf))
	require.Equal(t, oti, got)
}

func TestOTIMarshalRejectsOversizedTransferLength(t *testing.T) {
	oti := ObjectTransmissionInformation{TransferLength: 1 << 40}
	_, err := oti.MarshalBinary()
	require.Error(t, err)
}
