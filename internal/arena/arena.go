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

// Package arena provides the growable byte buffer that backs a [dawg.Builder].
//
// # Design
//
// Unlike a general-purpose allocator, this arena never frees individual
// allocations and never compacts: it is bump-allocated, monotonically
// growing for the lifetime of a build. Both scratch (active-path) state
// slots and canonical (frozen) state copies live in the same backing
// buffer, distinguished only by whether anything still references their
// offset — see the package doc of
// [github.com/fsabuild/dawg/internal/path] for why that's safe.
//
// Offsets into the arena are stable across growth: growth reallocates the
// backing slice but never changes what a previously returned offset means,
// because offsets are relative to the start of the buffer, not pointers
// into it.
package arena

import (
	"math"

	"go.uber.org/zap"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/assert"
)

// DefaultGrowthSize is the default grow quantum: how much headroom is added
// to the arena each time it must grow, absent a smaller worst-case floor.
const DefaultGrowthSize = 5 * 1024 * 1024 // 5 MiB

// minGrowthSize is the floor on the grow quantum: a single worst-case state
// (every one of the 256 possible labels used) must always fit in the
// headroom added by a single Grow.
const minGrowthSize = arcs.Size * 256

// Arena is a bump-allocated byte buffer addressed by uint32 offset.
//
// Offset 0 is reserved so that it can double as the Register's "empty slot"
// sentinel and as [arcs.Terminal]. The zero Arena is not ready to use; call
// [New].
type Arena struct {
	buf    []byte
	growth int
	max    uint32

	growths int // number of times Grow has reallocated the backing buffer.

	log *zap.Logger
}

// New creates an Arena with the given grow quantum (floored at
// arcs.Size*256) and address-space ceiling. A maxSize of 0 means
// math.MaxUint32, the natural ceiling imposed by the 4-byte target field.
func New(growthQuantum int, maxSize uint32, log *zap.Logger) *Arena {
	if growthQuantum < minGrowthSize {
		growthQuantum = minGrowthSize
	}
	if maxSize == 0 {
		maxSize = math.MaxUint32
	}
	if log == nil {
		log = zap.NewNop()
	}

	a := &Arena{growth: growthQuantum, max: maxSize, log: log}
	// Offset 0 is unused; start the bump cursor at 1 so the first real
	// allocation (the epsilon state) lands at offset 1, per the data model.
	a.buf = make([]byte, 1, minGrowthSize)
	return a
}

// Len returns the current bump-allocation high-water mark: the number of
// bytes of the arena that have been handed out by Allocate so far.
func (a *Arena) Len() uint32 { return uint32(len(a.buf)) }

// Growths returns how many times the backing buffer has been reallocated.
func (a *Arena) Growths() int { return a.growths }

// Bytes returns the arena's live contents. The returned slice is only valid
// until the next Allocate/Grow call, which may reallocate the backing
// array.
func (a *Arena) Bytes() []byte { return a.buf }

// Allocate reserves labels*arcs.Size zero-filled bytes and returns the
// offset at which they start.
func (a *Arena) Allocate(labels int) uint32 {
	size := labels * arcs.Size
	assert.That(size >= 0, "arena: negative allocation size %d", size)

	if need := uint64(len(a.buf)) + uint64(size); need > uint64(a.max) {
		panic(&AllocationFailureError{Requested: uint64(size), Limit: a.max, Used: uint64(len(a.buf))})
	}

	if needsHeadroom(a, size) {
		a.grow(size)
	}

	off := uint32(len(a.buf))
	a.buf = a.buf[:len(a.buf)+size]
	// make() zero-fills, and we only ever grow by appending zeroed tail
	// capacity, so the reserved region is already zero; nothing else to do.

	a.log.Debug("arena: allocate", zap.Int("labels", labels), zap.Uint32("offset", off))
	return off
}

// needsHeadroom reports whether fewer than one worst-case state's worth of
// free tail capacity remains, per the §4.1 growth policy: growth checks are
// performed with full headroom so that no allocation inside the hot loop
// ever needs a second, partial check.
func needsHeadroom(a *Arena, size int) bool {
	free := cap(a.buf) - len(a.buf)
	return free-size < minGrowthSize
}

// grow reallocates the backing buffer so that it has at least `size` bytes
// of free tail capacity beyond the worst-case headroom floor.
func (a *Arena) grow(size int) {
	add := a.growth
	if add < size+minGrowthSize {
		add = size + minGrowthSize
	}

	newCap := cap(a.buf) + add
	if uint64(newCap) > uint64(a.max) {
		newCap = int(a.max)
	}

	next := make([]byte, len(a.buf), newCap)
	copy(next, a.buf)
	a.buf = next
	a.growths++

	a.log.Debug("arena: grow",
		zap.Int("new_cap", newCap),
		zap.Int("growths", a.growths))
}

// Snapshot returns a right-sized copy of the arena's live bytes, for
// publishing as part of an immutable [dawg.Automaton]. The working arena is
// left usable (though a Builder never calls Snapshot before it is done).
func (a *Arena) Snapshot() []byte {
	out := make([]byte, len(a.buf))
	copy(out, a.buf)
	return out
}

// AllocationFailureError is returned (via panic) when an allocation would
// exceed the arena's configured address-space ceiling.
//
// Because arc targets are 4-byte unsigned big-endian fields (§3), the
// arena's address space is inherently bounded by math.MaxUint32; a smaller
// ceiling can be configured via an Option for testability.
type AllocationFailureError struct {
	Requested uint64
	Used      uint64
	Limit     uint32
}

func (e *AllocationFailureError) Error() string {
	return "dawg: arena allocation would exceed address-space limit"
}
