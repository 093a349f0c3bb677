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

package path_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsabuild/dawg/internal/arcs"
	"github.com/fsabuild/dawg/internal/arena"
	"github.com/fsabuild/dawg/internal/path"
)

func TestPath_ExpandToAllocatesContiguousDepths(t *testing.T) {
	a := arena.New(0, 0, nil)
	p := path.New(a, nil)
	require.Equal(t, 1, p.Depths())

	p.ExpandTo(3)
	require.Equal(t, 4, p.Depths())

	// Each depth's slot must be MaxLabels-wide.
	require.EqualValues(t, path.MaxLabels*arcs.Size, p.Base(1)-p.Base(0))
}

func TestPath_AppendArcAdvancesCursor(t *testing.T) {
	a := arena.New(0, 0, nil)
	p := path.New(a, nil)

	p.AppendArc(0, 'a', 0, 42)
	require.Equal(t, 1, p.ArcCount(0))

	last := p.LastArc(0)
	buf := a.Bytes()
	require.Equal(t, byte('a'), arcs.Label(buf, last))
	require.EqualValues(t, 42, arcs.Target(buf, last))
}

func TestPath_LastArcPanicsWhenEmpty(t *testing.T) {
	a := arena.New(0, 0, nil)
	p := path.New(a, nil)

	require.Panics(t, func() {
		p.LastArc(0)
	})
}

func TestPath_ReopenResetsCursorWithoutErasingBytes(t *testing.T) {
	a := arena.New(0, 0, nil)
	p := path.New(a, nil)

	p.AppendArc(0, 'a', 0, 1)
	base := p.Base(0)

	p.Reopen(0)
	require.Equal(t, 0, p.ArcCount(0))
	require.Equal(t, base, p.Base(0))

	// The old bytes are still there, just unreferenced by the cursor.
	require.Equal(t, byte('a'), arcs.Label(a.Bytes(), base))

	p.AppendArc(0, 'b', 0, 2)
	require.Equal(t, 1, p.ArcCount(0))
	require.Equal(t, byte('b'), arcs.Label(a.Bytes(), p.LastArc(0)))
}
