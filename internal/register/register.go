// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package register implements the builder's hash-consing register: an
// open-addressed set of frozen states, each identified by a [Region] (a
// packed offset+length pair) and keyed by the byte identity of the arc run
// that region denotes.
//
// # Design
//
// This is the same open-addressing-with-quadratic-probing idiom the
// teacher uses for its arena-friendly integer-keyed maps (see the internal
// `table` package it ships), adapted from fixed-width int32 keys to
// variable-length byte-region keys: instead of comparing two int32s, a
// lookup compares two runs of arc bytes in the arena. Storing each slot's
// length alongside its offset (rather than re-deriving it from the arena
// on every probe) means equality can reject two regions of differing
// length before ever touching the byte compare.
package register

import (
	"bytes"
	"math/bits"

	"go.uber.org/zap"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/assert"
)

// arenaBytes is the slice of operations the register needs from its arena,
// kept minimal and interface-shaped so tests can exercise the register
// against a bare slice without constructing a full [arena.Arena].
type arenaBytes interface {
	Bytes() []byte
	Allocate(labels int) uint32
}

// Register is a hash-consed set of frozen state addresses.
//
// The zero Register is not ready to use; call [New].
type Register struct {
	arena arenaBytes
	slots []Region // canonical (offset, length) pairs; the zero Region means empty (offset 0 is never a valid state address).
	count int

	log *zap.Logger
}

const initialSlots = 16 // must be a power of two.

// New creates an empty Register over the given arena.
func New(a arenaBytes, log *zap.Logger) *Register {
	if log == nil {
		log = zap.NewNop()
	}
	return &Register{
		arena: a,
		slots: make([]Region, initialSlots),
		log:   log,
	}
}

// Len returns the number of frozen states interned in the register.
func (r *Register) Len() int { return r.count }

// Slots returns the current size of the slot array (always a power of two).
func (r *Register) Slots() int { return len(r.slots) }

// Intern looks up the arc run starting at base (whose length is recovered
// by scanning to the arc with the Last flag set) in the register.
//
// On a hit, the fresh bytes at base are abandoned as scratch and the
// existing canonical address is returned. On a miss, the region is copied
// into a fresh arena allocation, the register is updated to point at the
// copy, and the copy's address is returned.
func (r *Register) Intern(base uint32) uint32 {
	buf := r.arena.Bytes()
	arcCount, length := arcs.ScanLength(buf, base)
	candidate := NewRegion(base, length)
	h := hashRegion(buf, base, length)

	m := len(r.slots)
	mask := m - 1
	slot := int(h) & mask

	for i := 1; ; i++ {
		existing := r.slots[slot]
		if existing == 0 {
			canonicalOff := r.arena.Allocate(arcCount)
			buf = r.arena.Bytes() // Allocate may have reallocated the backing array.
			copy(buf[canonicalOff:canonicalOff+length], buf[base:base+length])

			r.slots[slot] = NewRegion(canonicalOff, length)
			r.count++
			r.log.Debug("register: intern miss",
				zap.Uint32("base", base),
				zap.Uint32("canonical", canonicalOff),
				zap.Int("arc_count", arcCount))

			if r.count*2 > m {
				r.resize()
			}
			return canonicalOff
		}

		if regionsEqual(buf, existing, candidate) {
			r.log.Debug("register: intern hit",
				zap.Uint32("base", base),
				zap.Uint32("canonical", existing.Offset()))
			return existing.Offset()
		}

		slot = probe(slot, i, m)
	}
}

// resize doubles the slot array and rehashes every occupied entry. Each
// slot already carries its own length (per Region), so rehashing never
// needs to re-scan the arena for it.
//
// No tombstones are needed because the register never deletes entries.
func (r *Register) resize() {
	old := r.slots
	r.slots = make([]Region, len(old)*2)

	buf := r.arena.Bytes()
	m := len(r.slots)
	mask := m - 1

	for _, region := range old {
		if region == 0 {
			continue
		}
		h := hashRegion(buf, region.Offset(), region.Length())

		slot := int(h) & mask
		for i := 1; r.slots[slot] != 0; i++ {
			slot = probe(slot, i, m)
		}
		r.slots[slot] = region
	}

	r.log.Debug("register: resize", zap.Int("slots", m))
}

// probe implements quadratic probing using triangular numbers: calling this
// with the previous slot produces the next slot in the sequence.
//
// buckets must be a power of two.
func probe(prev, i, buckets int) int {
	// f(i) = (i^2+i)/2 mod buckets, evaluated incrementally: f(i+1) =
	// f(i) + (i+1). Each call folds one more step of that recurrence into
	// prev, which already holds the sum of all prior steps.
	return (prev + i) & (buckets - 1)
}

// hashRegion folds the arc run [base, base+length) into a single hash,
// order-sensitive and covering every equivalence-relevant byte: label,
// target, and the Final bit. The Last bit is excluded, since it is a
// layout artifact of the region's last arc rather than a semantic property
// of the state it denotes.
func hashRegion(buf []byte, base, length uint32) uint64 {
	var h uint64
	for off := base; off < base+length; off += arcs.Size {
		h = 17*h + uint64(arcs.Label(buf, off))
		h = 17*h + uint64(arcs.Target(buf, off))
		if arcs.IsFinal(buf, off) {
			h += 17
		}
	}
	return h
}

// regionsEqual reports whether existing and candidate denote byte-for-byte
// identical arc runs: equal length (checked first, independently of the
// byte compare — two regions of different length are never equal,
// regardless of what their flag bytes happen to contain) and then equal
// content.
func regionsEqual(buf []byte, existing, candidate Region) bool {
	if existing.Length() != candidate.Length() {
		return false
	}
	a, b, length := existing.Offset(), candidate.Offset(), existing.Length()
	return bytes.Equal(buf[a:a+length], buf[b:b+length])
}

func init() {
	assert.That(bits.OnesCount(uint(initialSlots)) == 1, "register: initialSlots must be a power of two")
}
