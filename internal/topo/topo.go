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

// Package topo verifies that a graph reachable from some root is a DAG and
// computes its reachable node set.
//
// This is adapted from the teacher's Tarjan strongly-connected-components
// package: the same "local view of a directed graph" representation
// ([Graph]) is reused, but the algorithm is simplified from full SCC
// decomposition down to plain DFS with cycle detection, since a correctly
// built automaton is guaranteed acyclic by construction (see DESIGN.md's
// internal/topo notes) — what test code actually needs is a way to *check* that
// guarantee and to count the distinct reachable states for the
// minimality property (P2).
package topo

import "fmt"

// Graph is a "local" view of a directed graph: a function from a node to
// its outgoing edges.
type Graph[Node any] func(Node) []Node

// CycleError is returned by [Reachable] when the graph contains a cycle.
type CycleError[Node any] struct {
	Node Node
}

func (e *CycleError[Node]) Error() string {
	return fmt.Sprintf("topo: cycle detected reaching node %v", e.Node)
}

// Reachable returns every node reachable from root, in DFS post-order
// (i.e. a valid topological order: every node appears after all of its
// successors), or an error if the graph contains a cycle.
func Reachable[Node comparable](root Node, g Graph[Node]) ([]Node, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := make(map[Node]int)
	var order []Node

	var visit func(n Node) error
	visit = func(n Node) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			return &CycleError[Node]{Node: n}
		}

		state[n] = visiting
		for _, next := range g(n) {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[n] = done
		order = append(order, n)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}
