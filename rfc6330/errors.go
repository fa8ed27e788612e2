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

import "errors"

// ErrNotEnoughSymbols is returned by Decoder.Decode when the received
// packets are not yet sufficient to reconstruct the source block. The
// caller should keep feeding packets and retry.
var ErrNotEnoughSymbols = errors.New("rfc6330: not enough symbols received to decode yet")

// ErrTooManySymbols is returned when an encoding symbol ID would overflow
// the 24-bit ESI field the wire format allots it.
var ErrTooManySymbols = errors.New("rfc6330: encoding symbol id exceeds 24-bit range")

// ErrShortBuffer is returned by the packet/OTI unmarshalers when the input
// is too short to contain a complete structure.
var ErrShortBuffer = errors.New("rfc6330: buffer too short")

// ErrSymbolSizeMismatch is returned when a packet's payload length doesn't
// match the symbol size the decoder was configured with.
var ErrSymbolSizeMismatch = errors.New("rfc6330: packet payload size doesn't match symbol size")
