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
	"encoding/binary"

	"github.com/pkg/errors"
)

// ObjectTransmissionInformation is the 12-byte OTI structure RFC 6330
// section 3.3 defines: everything a decoder needs to know about an object
// before it can start receiving packets for it.
type ObjectTransmissionInformation struct {
	TransferLength uint64 // 40 bits on the wire
	SymbolSize     uint16
	Z              uint8 // number of source blocks
	N              uint16
	Alignment      uint8
}

// MarshalBinary encodes the OTI into its 12-byte wire form: 40-bit transfer
// length, 8-bit reserved, 16-bit symbol size, 8-bit Z, 16-bit N, 8-bit
// alignment.
func (o ObjectTransmissionInformation) MarshalBinary() ([]byte, error) {
	if o.TransferLength >= 1<<40 {
		return nil, errors.New("rfc6330: transfer length exceeds 40 bits")
	}
	buf := make([]byte, 12)
	var lenAndReserved [8]byte
	binary.BigEndian.PutUint64(lenAndReserved[:], o.TransferLength<<24)
	copy(buf[0:5], lenAndReserved[0:5])
	buf[5] = 0 // reserved
	binary.BigEndian.PutUint16(buf[6:8], o.SymbolSize)
	buf[8] = o.Z
	binary.BigEndian.PutUint16(buf[9:11], o.N)
	buf[11] = o.Alignment
	return buf, nil
}

// UnmarshalBinary decodes a 12-byte OTI wire form produced by MarshalBinary.
func (o *ObjectTransmissionInformation) UnmarshalBinary(buf []byte) error {
	if len(buf) < 12 {
		return errors.Wrap(ErrShortBuffer, "rfc6330: OTI")
	}
	var lenBuf [8]byte
	copy(lenBuf[0:5], buf[0:5])
	o.TransferLength = binary.BigEndian.Uint64(lenBuf[:]) >> 24
	o.SymbolSize = binary.BigEndian.Uint16(buf[6:8])
	o.Z = buf[8]
	o.N = binary.BigEndian.Uint16(buf[9:11])
	o.Alignment = buf[11]
	return nil
}

// maxESI is the largest value a 24-bit encoding symbol ID can hold.
const maxESI = 1<<24 - 1

// Packet is one encoding packet: the payload ID (source block number and
// encoding symbol ID, RFC 6330 section 3.2) plus the symbol payload.
type Packet struct {
	SourceBlockNumber uint8
	EncodingSymbolID  uint32 // 24 bits
	Data              []byte
}

// MarshalBinary encodes p as 1 byte SBN, 3 bytes ESI (big-endian), then the
// raw symbol payload.
func (p Packet) MarshalBinary() ([]byte, error) {
	if p.EncodingSymbolID > maxESI {
		return nil, errors.Wrapf(ErrTooManySymbols, "esi %d", p.EncodingSymbolID)
	}
	buf := make([]byte, 4+len(p.Data))
	buf[0] = p.SourceBlockNumber
	buf[1] = byte(p.EncodingSymbolID >> 16)
	buf[2] = byte(p.EncodingSymbolID >> 8)
	buf[3] = byte(p.EncodingSymbolID)
	copy(buf[4:], p.Data)
	return buf, nil
}

// UnmarshalBinary decodes a packet produced by MarshalBinary. symbolSize, if
// nonzero, is checked against the decoded payload length.
func (p *Packet) UnmarshalBinary(buf []byte, symbolSize int) error {
	if len(buf) < 4 {
		return errors.Wrap(ErrShortBuffer, "rfc6330: packet header")
	}
	p.SourceBlockNumber = buf[0]
	p.EncodingSymbolID = uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	p.Data = append([]byte(nil), buf[4:]...)
	if symbolSize != 0 && len(p.Data) != symbolSize {
		return errors.Wrapf(ErrSymbolSizeMismatch, "got %d want %d", len(p.Data), symbolSize)
	}
	return nil
}
