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

// Package path implements the builder's active path: the stack of mutable
// state slots currently spelling the last-added input sequence.
//
// # Scratch vs canonical
//
// Active-path slots live in the very same arena as canonical frozen
// states. A slot is pre-sized at the maximum fan-out (256 arcs, one per
// possible label byte) so arcs can be appended by bumping a cursor without
// ever reallocating mid-state. When a depth is frozen, its arc run is
// *copied* into a fresh arena allocation by the register; the original
// scratch bytes are left behind, untouched but also unreferenced by
// anything canonical, and the slot's cursor is reset to its base so the
// next sibling at that depth can reuse the space. This mirrors the
// teacher's arena doc note that holding a pointer into any part of an
// allocation keeps the whole arena alive — here the analogous invariant is
// that a canonical state never points into another state's active-path
// scratch, only at other canonical (or terminal) addresses.
package path

import (
	"go.uber.org/zap"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/assert"
)

// MaxLabels is the maximum fan-out of a single state: one arc per possible
// label byte.
const MaxLabels = 256

type depth struct {
	base   uint32
	cursor uint32
}

// allocator is the subset of *arena.Arena the active path needs.
type allocator interface {
	Bytes() []byte
	Allocate(labels int) uint32
}

// Path is the active path: a sequence of mutable state slots P[0..L].
//
// The zero Path is not ready to use; call [New].
type Path struct {
	arena  allocator
	depths []depth
	length int

	log *zap.Logger
}

// New creates an active path over the given arena, with only the root slot
// (depth 0) allocated.
func New(a allocator, log *zap.Logger) *Path {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Path{arena: a, log: log}
	p.ExpandTo(0)
	return p
}

// Length returns L, the length of the sequence currently spelled by the
// active path.
func (p *Path) Length() int { return p.length }

// SetLength sets L. Callers must have already frozen or reopened every
// depth whose meaning changes as a result.
func (p *Path) SetLength(length int) { p.length = length }

// Depths returns how many depth slots have ever been allocated — always
// at least length()+1, but may exceed it if a previous, longer sequence
// left deeper slots allocated.
func (p *Path) Depths() int { return len(p.depths) }

// ExpandTo ensures depth slots [0, length] exist, allocating a fresh
// MaxLabels-wide arena region for any depth that has never been used
// before.
func (p *Path) ExpandTo(length int) {
	for len(p.depths) <= length {
		base := p.arena.Allocate(MaxLabels)
		p.depths = append(p.depths, depth{base: base, cursor: base})
		p.log.Debug("path: expand", zap.Int("depth", len(p.depths)-1), zap.Uint32("base", base))
	}
}

// Base returns the arena offset of the first arc slot at the given depth.
func (p *Path) Base(d int) uint32 { return p.depths[d].base }

// Cursor returns the arena offset one past the last arc written at the
// given depth.
func (p *Path) Cursor(d int) uint32 { return p.depths[d].cursor }

// ArcCount returns how many arcs have been written at the given depth.
func (p *Path) ArcCount(d int) int {
	return int(p.depths[d].cursor-p.depths[d].base) / arcs.Size
}

// LastArc returns the offset of the most recently written arc at the given
// depth. Panics if no arc has been written yet.
func (p *Path) LastArc(d int) uint32 {
	assert.That(p.depths[d].cursor > p.depths[d].base, "path: depth %d has no arcs", d)
	return p.depths[d].cursor - arcs.Size
}

// AppendArc writes one new arc at the given depth's cursor, with the given
// label, flags, and target, and advances the cursor. The Last flag is not
// set here — it is set only when the depth is later frozen.
func (p *Path) AppendArc(d int, label byte, flags byte, target uint32) {
	buf := p.arena.Bytes()
	off := p.depths[d].cursor
	assert.That(off+arcs.Size <= uint32(len(buf)), "path: depth %d arc write out of bounds", d)

	arcs.SetFlags(buf, off, flags)
	arcs.SetLabel(buf, off, label)
	arcs.SetTarget(buf, off, target)

	p.depths[d].cursor += arcs.Size
}

// Reopen resets the given depth's cursor back to its base, logically
// discarding (without erasing) any arcs written there. Called after a
// depth has been frozen and its canonical copy has been recorded
// elsewhere.
func (p *Path) Reopen(d int) {
	p.depths[d].cursor = p.depths[d].base
}
