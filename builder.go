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

package dawg

import (
	"bytes"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/arena"
	"github.com/fsabuild/dawg/internal/assert"
	"github.com/fsabuild/dawg/internal/path"
	"github.com/fsabuild/dawg/internal/register"
)

// Builder incrementally constructs a minimal acyclic FSA from a sorted
// stream of byte sequences.
//
// The zero Builder is not ready to use; call [New]. A Builder is not safe
// for concurrent use — see the reentrancy guard in its enter method.
type Builder struct {
	arena    *arena.Arena
	register *register.Register
	path     *path.Path
	log      *zap.Logger

	epsilon uint32

	previous     []byte
	hasPrevious  bool
	acceptsEmpty bool

	maxPathLength int

	completed bool
	stats     Stats

	busy atomic.Bool
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a := arena.New(cfg.growth, cfg.maxArena, cfg.log)

	eps := a.Allocate(1)
	assert.That(eps == 1, "builder: epsilon must land at arena offset 1, got %d", eps)
	arcs.MarkLast(a.Bytes(), eps)

	r := register.New(a, cfg.log)
	p := path.New(a, cfg.log)

	return &Builder{
		arena:    a,
		register: r,
		path:     p,
		log:      cfg.log,
		epsilon:  eps,
	}
}

// Build is a convenience wrapper around [New], [Builder.Add], and
// [Builder.Complete] for callers who already have the full, sorted input
// in hand.
func Build(sequences [][]byte, opts ...Option) Automaton {
	b := New(opts...)
	for _, seq := range sequences {
		b.Add(seq)
	}
	return b.Complete()
}

// enter and leave implement a lightweight, always-on reentrancy guard: a
// Builder is documented as not safe for concurrent use, and this turns an
// observed violation of that contract into a loud panic instead of silent
// arena corruption.
func (b *Builder) enter() {
	if !b.busy.CompareAndSwap(false, true) {
		panic("dawg: concurrent use of a Builder")
	}
}

func (b *Builder) leave() { b.busy.Store(false) }

// Add appends one sequence to the automaton being built.
//
// seq must compare greater than or equal to every previously added
// sequence (unsigned byte-wise, then by length); duplicates of the
// immediately preceding sequence are tolerated as no-ops. Violating the
// order contract, or calling Add after [Builder.Complete], panics with an
// [*OrderViolationError] or [*AfterCompleteError] respectively.
func (b *Builder) Add(seq []byte) {
	b.enter()
	defer b.leave()

	if b.completed {
		panic(&AfterCompleteError{})
	}

	if b.hasPrevious {
		switch bytes.Compare(seq, b.previous) {
		case 0:
			return
		case -1:
			panic(&OrderViolationError{
				Previous: append([]byte(nil), b.previous...),
				Got:      append([]byte(nil), seq...),
			})
		}
	}

	if len(seq) == 0 {
		b.acceptsEmpty = true
	}

	b.apply(seq)

	b.previous = append(b.previous[:0], seq...)
	b.hasPrevious = true
	if len(seq) > b.maxPathLength {
		b.maxPathLength = len(seq)
	}
}

// apply runs one add() per §4.5: compute the common-prefix depth k against
// the active path's current contents, freeze the diverged suffix
// right-to-left, then append the new suffix.
func (b *Builder) apply(seq []byte) {
	k := b.commonPrefix(seq)

	b.path.ExpandTo(len(seq))

	for i := b.path.Length(); i > k; i-- {
		canonical := b.freeze(i)
		parent := b.path.LastArc(i - 1)
		arcs.SetTarget(b.arena.Bytes(), parent, canonical)
		b.path.Reopen(i)
	}

	for i := k + 1; i <= len(seq); i++ {
		var flags byte
		if i == len(seq) {
			flags = arcs.Final
		}
		// The target always points at depth i's (possibly still empty)
		// slot; whether that resolves to a real state or to Terminal is
		// decided later, when depth i is itself frozen. Deciding it here
		// instead would be wrong whenever a later, longer sequence shares
		// this prefix and goes on to give depth i real children — see
		// freeze.
		b.path.AppendArc(i-1, seq[i-1], flags, b.path.Base(i))
	}

	b.path.SetLength(len(seq))
}

// commonPrefix returns the length of the longest common prefix between
// seq and the sequence currently spelled by the active path, found by
// comparing seq's bytes against the labels of the arcs already written —
// not against the cached previous sequence directly, since those arcs are
// the actual source of truth the freeze step will act on.
func (b *Builder) commonPrefix(seq []byte) int {
	buf := b.arena.Bytes()
	limit := len(seq)
	if b.path.Length() < limit {
		limit = b.path.Length()
	}

	k := 0
	for d := 1; d <= limit; d++ {
		if b.path.ArcCount(d-1) == 0 {
			break
		}
		last := b.path.LastArc(d - 1)
		if arcs.Label(buf, last) != seq[d-1] {
			break
		}
		k = d
	}
	return k
}

// freeze resolves the active path's state at depth i to its final address:
// Terminal if depth i never gained any children (the common case — a
// sequence that ended there and was never extended further by a later,
// longer sibling), or the canonical hash-consed address of its arc run
// otherwise. The caller is responsible for patching the parent arc (at
// depth i-1) that points here with the result.
func (b *Builder) freeze(i int) uint32 {
	if b.path.ArcCount(i) == 0 {
		return arcs.Terminal
	}
	arcs.MarkLast(b.arena.Bytes(), b.path.LastArc(i))
	return b.register.Intern(b.path.Base(i))
}

// flush resolves every depth from the active path's current length down to
// 1, leaving depth 0 (the root slot) open for the caller to resolve itself
// — the add(empty)-to-flush step of §4.5's complete(), implemented
// directly (with k fixed at 0) rather than by routing through Add, since
// Add's ordering/duplicate bookkeeping has no bearing on this internal
// step.
func (b *Builder) flush() {
	for i := b.path.Length(); i > 0; i-- {
		canonical := b.freeze(i)
		parent := b.path.LastArc(i - 1)
		arcs.SetTarget(b.arena.Bytes(), parent, canonical)
		b.path.Reopen(i)
	}
	b.path.SetLength(0)
}

// Complete finalizes the automaton: flushes the active path, resolves the
// epsilon arc's target, and publishes an immutable, right-sized copy of
// the arena. Calling Add or Complete again afterward panics with
// [*AfterCompleteError].
func (b *Builder) Complete() Automaton {
	b.enter()
	defer b.leave()

	if b.completed {
		panic(&AfterCompleteError{})
	}

	b.flush()

	// freeze(0) naturally resolves to Terminal when the root never gained
	// any arcs (the empty-language case) and to the canonical root address
	// otherwise — the same rule applied uniformly to every other depth.
	arcs.SetTarget(b.arena.Bytes(), b.epsilon, b.freeze(0))
	if b.acceptsEmpty {
		arcs.MarkFinal(b.arena.Bytes(), b.epsilon)
	}

	snapshot := b.arena.Snapshot()
	b.stats = Stats{
		SerializedBytes:     len(snapshot),
		Reallocations:       b.arena.Growths(),
		LiveArenaBytes:      b.arena.Len(),
		MaxActivePathLength: b.maxPathLength,
		RegisterSlots:       b.register.Slots(),
		RegisterEntries:     b.register.Len(),
		// 8 bytes per register slot: each holds one packed Region (uint64).
		EstimatedMemoryMiB: float64(b.arena.Len()+8*uint32(b.register.Slots())) / (1024 * 1024),
	}
	b.completed = true

	return Automaton{Arena: snapshot, Entry: b.epsilon}
}

// Stats returns the statistics collected when the builder was completed.
// Panics if called before [Builder.Complete].
func (b *Builder) Stats() Stats {
	b.enter()
	defer b.leave()

	assert.That(b.completed, "builder: Stats called before Complete")
	return b.stats
}
