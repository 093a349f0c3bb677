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

// Package walk provides a minimal traversal over a published automaton.
//
// Per the core's scope note (SPEC_FULL.md §1), traversal is an external
// collaborator, not part of the builder itself: nothing in the root
// package imports this one. It exists so that tests and examples can
// round-trip a built automaton back into the set of sequences it accepts,
// without the core having to carry any consumer-facing traversal API of
// its own.
package walk

import (
	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/topo"
)

// Sequences returns every byte sequence accepted by the automaton stored
// in buf, entered via the arc at offset entry, as a set (order
// unspecified).
func Sequences(buf []byte, entry uint32) [][]byte {
	var out [][]byte
	var prefix []byte

	emit := func() {
		cp := make([]byte, len(prefix))
		copy(cp, prefix)
		out = append(out, cp)
	}

	var walkState func(base uint32)
	walkState = func(base uint32) {
		off := base
		for {
			prefix = append(prefix, arcs.Label(buf, off))
			if arcs.IsFinal(buf, off) {
				emit()
			}
			if target := arcs.Target(buf, off); target != arcs.Terminal {
				walkState(target)
			}
			prefix = prefix[:len(prefix)-1]

			if arcs.IsLast(buf, off) {
				break
			}
			off += arcs.Size
		}
	}

	if arcs.IsFinal(buf, entry) {
		emit()
	}
	if target := arcs.Target(buf, entry); target != arcs.Terminal {
		walkState(target)
	}

	return out
}

// Reachable returns the set of distinct state addresses reachable from the
// epsilon arc at offset entry, not counting the epsilon arc itself or the
// terminal sink — i.e. the live state count used by the minimality
// property (P2) — or an error if the automaton is not acyclic.
func Reachable(buf []byte, entry uint32) ([]uint32, error) {
	// The traversal is seeded at entry itself, treated as a node whose only
	// out-edge is the epsilon arc's target. Edges to arcs.Terminal are never
	// followed, so Terminal does not appear in the traversal. entry cannot
	// collide with a real state address, since it is the fixed offset of
	// the epsilon arc rather than of any frozen state.
	g := func(n uint32) []uint32 {
		if n == arcs.Terminal {
			return nil
		}
		if n == entry {
			if t := arcs.Target(buf, entry); t != arcs.Terminal {
				return []uint32{t}
			}
			return nil
		}

		var out []uint32
		off := n
		for {
			if t := arcs.Target(buf, off); t != arcs.Terminal {
				out = append(out, t)
			}
			if arcs.IsLast(buf, off) {
				return out
			}
			off += arcs.Size
		}
	}

	order, err := topo.Reachable(entry, topo.Graph[uint32](g))
	if err != nil {
		return nil, err
	}

	states := make([]uint32, 0, len(order))
	for _, n := range order {
		if n == entry || n == arcs.Terminal {
			continue
		}
		states = append(states, n)
	}
	return states, nil
}
