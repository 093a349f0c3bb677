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

package topo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsabuild/dawg/internal/topo"
)

func TestReachable_DAG(t *testing.T) {
	g := topo.Graph[int](func(n int) []int {
		switch n {
		case 1:
			return []int{2, 3}
		case 2:
			return []int{4}
		case 3:
			return []int{4}
		default:
			return nil
		}
	})

	order, err := topo.Reachable(1, g)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{1, 2, 3, 4}, order)

	pos := make(map[int]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	require.Less(t, pos[4], pos[2])
	require.Less(t, pos[4], pos[3])
	require.Less(t, pos[2], pos[1])
	require.Less(t, pos[3], pos[1])
}

func TestReachable_DetectsCycle(t *testing.T) {
	g := topo.Graph[int](func(n int) []int {
		switch n {
		case 1:
			return []int{2}
		case 2:
			return []int{1}
		default:
			return nil
		}
	})

	_, err := topo.Reachable(1, g)
	require.Error(t, err)

	var cycleErr *topo.CycleError[int]
	require.ErrorAs(t, err, &cycleErr)
}
