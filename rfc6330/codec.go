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

	"github.com/pkg/errors"

	"github.com/raptorq-go/raptorq/internal/opcache"
	"github.com/raptorq-go/raptorq/internal/solver"
	"github.com/raptorq-go/raptorq/internal/symbol"
)

// Encoder and Decoder operate on a single source block: the object
// partitioning RFC 6330 section 4.4.1.2 layers on top (splitting a byte
// stream into several source blocks of up to 56,403 symbols each) is the
// caller's responsibility, not this package's — a single block already
// exercises the solver's entire contract.

// encodeSymbol computes the encoding symbol with the given ID from the L
// intermediate symbols, per RFC 6330 section 5.3.5.3 (Enc[]). It is used
// both to generate repair symbols (Encoder) and to recover source symbols
// from solved intermediate symbols (Decoder): since the source symbols
// satisfy the same LT relationship against the intermediate symbols, this
// one function serves both directions of the systematic code.
func encodeSymbol(c SystematicConstants, intermediate []symbol.Symbol, esi uint32) symbol.Symbol {
	d, a, b, d1, a1, b1 := intermediateTuple(c, esi)
	width := len(intermediate[0])
	result := symbol.NewSymbol(width)
	for _, j := range encIndices(c, d, a, b, d1, a1, b1) {
		result.AddAssign(intermediate[j])
	}
	return result
}

// Encoder produces encoding packets for a fixed set of source symbols: the
// first K are the source symbols themselves (the code is systematic), and
// any ESI >= K is a repair symbol.
type Encoder struct {
	constants    SystematicConstants
	source       []symbol.Symbol
	intermediate []symbol.Symbol
}

// NewEncoder solves for the L intermediate symbols of a block of source
// symbols (source must have length constants.K, see Constants) and returns
// an Encoder ready to produce packets for any ESI. cache, if non-nil, is
// passed through to the solver (see opcache's doc).
func NewEncoder(source []symbol.Symbol, cache *opcache.Cache) (*Encoder, error) {
	c := Constants(len(source))

	esis := make([]uint32, c.K)
	for i := range esis {
		esis[i] = uint32(i)
	}
	a := GenerateConstraintMatrix(c, esis)

	width := len(source[0])
	d := make([]symbol.Symbol, c.L)
	for i := 0; i < c.S+c.H; i++ {
		d[i] = symbol.NewSymbol(width)
	}
	for i, s := range source {
		d[c.S+c.H+i] = s.Clone()
	}

	intermediate, err := solver.Solve(a, d, HDPCRowMask(c, a.Rows()), c.K, cache)
	if err != nil {
		return nil, errors.Wrap(err, "rfc6330: solving for intermediate symbols")
	}
	return &Encoder{constants: c, source: source, intermediate: intermediate}, nil
}

// Constants returns the SystematicConstants this Encoder was built with.
func (e *Encoder) Constants() SystematicConstants {
	return e.constants
}

// Packet returns the encoding packet for the given ESI: for esi < K, the
// original source symbol; for esi >= K, a freshly generated repair symbol.
func (e *Encoder) Packet(sourceBlockNumber uint8, esi uint32) Packet {
	var data symbol.Symbol
	if int(esi) < e.constants.K {
		data = e.source[esi]
	} else {
		data = encodeSymbol(e.constants, e.intermediate, esi)
	}
	return Packet{SourceBlockNumber: sourceBlockNumber, EncodingSymbolID: esi, Data: []byte(data)}
}

// Decoder accumulates packets for a single source block and attempts to
// recover the original K source symbols.
type Decoder struct {
	constants  SystematicConstants
	symbolSize int
	cache      *opcache.Cache
	received   map[uint32]symbol.Symbol
}

// NewDecoder returns a Decoder for a block of k source symbols, each
// symbolSize bytes.
func NewDecoder(k, symbolSize int, cache *opcache.Cache) *Decoder {
	return &Decoder{
		constants:  Constants(k),
		symbolSize: symbolSize,
		cache:      cache,
		received:   make(map[uint32]symbol.Symbol),
	}
}

// AddPacket records a received packet. Packets beyond the first received
// for a given ESI are ignored (the RFC treats duplicate ESIs as redundant).
func (d *Decoder) AddPacket(p Packet) error {
	if len(p.Data) != d.symbolSize {
		return errors.Wrapf(ErrSymbolSizeMismatch, "got %d want %d", len(p.Data), d.symbolSize)
	}
	if _, ok := d.received[p.EncodingSymbolID]; !ok {
		d.received[p.EncodingSymbolID] = symbol.Symbol(append([]byte(nil), p.Data...))
	}
	return nil
}

// NumReceived reports how many distinct encoding symbols have been added.
func (d *Decoder) NumReceived() int {
	return len(d.received)
}

// Decode attempts to recover the K source symbols from the packets added so
// far. It returns ErrNotEnoughSymbols until at least K distinct symbols have
// been received, and solver.ErrCannotDecodeYet (wrapped) if the received
// set, though large enough, happens to be linearly dependent.
func (d *Decoder) Decode() ([]symbol.Symbol, error) {
	c := d.constants
	if len(d.received) < c.K {
		return nil, ErrNotEnoughSymbols
	}

	esis := make([]uint32, 0, len(d.received))
	for esi := range d.received {
		esis = append(esis, esi)
	}
	sort.Slice(esis, func(i, j int) bool { return esis[i] < esis[j] })

	a := GenerateConstraintMatrix(c, esis)

	width := d.symbolSize
	dvec := make([]symbol.Symbol, c.S+c.H+len(esis))
	for i := 0; i < c.S+c.H; i++ {
		dvec[i] = symbol.NewSymbol(width)
	}
	for i, esi := range esis {
		dvec[c.S+c.H+i] = d.received[esi].Clone()
	}

	// The opcache replays a recorded operation list against a matrix of
	// identical shape and contents; only pass it through when the received
	// ESIs are exactly 0..L-S-H-1 (the same matrix NewEncoder solves).
	// Any other ESI set gives a matrix the recorded operations do not fit.
	cache := d.cache
	if len(esis) != c.L-c.S-c.H || esis[len(esis)-1] != uint32(len(esis)-1) {
		cache = nil
	}

	intermediate, err := solver.Solve(a, dvec, HDPCRowMask(c, a.Rows()), c.K, cache)
	if err != nil {
		return nil, errors.Wrap(err, "rfc6330: solving for source symbols")
	}

	source := make([]symbol.Symbol, c.K)
	for i := 0; i < c.K; i++ {
		if sym, ok := d.received[uint32(i)]; ok {
			source[i] = sym
			continue
		}
		source[i] = encodeSymbol(c, intermediate, uint32(i))
	}
	return source, nil
}
