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

// Package opcache implements the solver's optional operation-recording
// cache. It is external to the solver's core contract: a successful solve
// records the sequence of row/column swaps and row combinations it
// performed, keyed by source-symbol count, so that a later solve over an
// identically-shaped matrix can replay the recorded operations directly
// against its own symbol vector without re-running the oracle at all.
//
// The cache is read-mostly, monotonic, and never invalidates an entry —
// exactly the access pattern a sync.RWMutex is for, so that is what backs
// it rather than a general-purpose (and here unneeded) eviction-capable
// cache library.
package opcache

import (
	"sync"

	"github.com/raptorq-go/raptorq/internal/gf256"
)

// OpKind identifies which transform an Op applies.
type OpKind int

const (
	// SwapRow swaps logical rows I and J.
	SwapRow OpKind = iota
	// SwapCol swaps logical columns I and J.
	SwapCol
	// FMA sets row I to row I + Scalar*row J (solver convention: the
	// first index is the destination).
	FMA
	// MulRow scales row I by Scalar.
	MulRow
)

// Op is one step of a recorded solve, expressed purely in terms of row/
// column indices and a GF(256) scalar so it can be replayed against any
// matrix of identical shape and row/column semantics.
type Op struct {
	Kind   OpKind
	I, J   int
	Scalar gf256.Octet
}

// Cache maps a source-symbol count to the operation list recorded from its
// first successful solve.
type Cache struct {
	mu      sync.RWMutex
	entries map[int][]Op
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[int][]Op)}
}

// Get returns the recorded operations for numSourceSymbols, if any.
func (c *Cache) Get(numSourceSymbols int) ([]Op, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ops, ok := c.entries[numSourceSymbols]
	return ops, ok
}

// PutOnce records ops for numSourceSymbols if no entry exists yet. The
// cache is monotonic: an existing entry is never overwritten, matching the
// "writers never invalidate existing entries" contract.
func (c *Cache) PutOnce(numSourceSymbols int, ops []Op) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[numSourceSymbols]; ok {
		return
	}
	c.entries[numSourceSymbols] = ops
}
