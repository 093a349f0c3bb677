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

package register

// Region is a packed (offset, length) pair identifying a run of arcs in
// the arena: a candidate or frozen state.
//
// This is the same packed-range idiom the teacher uses for zero-copy byte
// ranges over parse input (offset in the low bits, length in the high
// bits), repurposed here to identify arena regions instead.
type Region uint64

// NewRegion packs an offset and byte length into a Region.
func NewRegion(offset, length uint32) Region {
	return Region(offset) | Region(length)<<32
}

// Offset returns the region's starting offset in the arena.
func (r Region) Offset() uint32 { return uint32(r) }

// Length returns the region's byte length.
func (r Region) Length() uint32 { return uint32(r >> 32) }
