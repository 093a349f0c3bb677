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

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/arena"
)

func TestArena_FirstAllocationLandsAfterReservedOffset(t *testing.T) {
	a := arena.New(0, 0, nil)
	require.EqualValues(t, 1, a.Len(), "offset 0 must be reserved")

	off := a.Allocate(1)
	require.EqualValues(t, 1, off)
	require.EqualValues(t, 1+arcs.Size, a.Len())
}

func TestArena_OffsetsStableAcrossGrowth(t *testing.T) {
	a := arena.New(arcs.Size*256, 0, nil) // tiny growth quantum forces reallocation quickly.

	first := a.Allocate(1)
	for i := 0; i < 1000; i++ {
		a.Allocate(256)
	}

	buf := a.Bytes()
	require.GreaterOrEqual(t, len(buf), int(first+arcs.Size))
	require.Greater(t, a.Growths(), 0, "this many allocations should have forced at least one regrow")
}

func TestArena_GrowthPreservesContent(t *testing.T) {
	a := arena.New(arcs.Size*256, 0, nil)

	off := a.Allocate(1)
	arcs.SetLabel(a.Bytes(), off, 'x')
	arcs.MarkLast(a.Bytes(), off)

	for i := 0; i < 500; i++ {
		a.Allocate(256)
	}

	require.Equal(t, byte('x'), arcs.Label(a.Bytes(), off))
	require.True(t, arcs.IsLast(a.Bytes(), off))
}

func TestArena_AllocateBeyondMaxSizePanics(t *testing.T) {
	a := arena.New(0, 64, nil) // a ceiling far smaller than one worst-case state.

	require.Panics(t, func() {
		a.Allocate(256)
	})
}

func TestArena_AllocateBeyondMaxSizePanicsWithTypedError(t *testing.T) {
	a := arena.New(0, 32, nil)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*arena.AllocationFailureError)
		require.True(t, ok, "expected *arena.AllocationFailureError, got %T", r)
		require.EqualValues(t, 32, err.Limit)
	}()

	a.Allocate(256)
}

func TestArena_SnapshotIsIndependentCopy(t *testing.T) {
	a := arena.New(0, 0, nil)
	off := a.Allocate(1)
	arcs.SetLabel(a.Bytes(), off, 'a')

	snap := a.Snapshot()
	require.Equal(t, byte('a'), arcs.Label(snap, off))

	arcs.SetLabel(a.Bytes(), off, 'z')
	require.Equal(t, byte('a'), arcs.Label(snap, off), "snapshot must not alias the live arena")
}

func TestArena_GrowthQuantumIsFlooredAtWorstCaseState(t *testing.T) {
	a := arena.New(1, 0, nil) // requests an absurdly small quantum.

	// Should not panic even when the active path needs a full 256-label
	// state immediately after construction.
	require.NotPanics(t, func() {
		a.Allocate(256)
	})
}
