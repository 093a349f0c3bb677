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

// Stats holds post-build statistics, captured once at [Builder.Complete].
type Stats struct {
	SerializedBytes     int
	Reallocations       int
	LiveArenaBytes      uint32
	MaxActivePathLength int
	RegisterSlots       int
	RegisterEntries     int
	EstimatedMemoryMiB  float64
}

// KV is one named entry of a [Stats.Pairs] view.
type KV struct {
	Key   string
	Value any
}

// Pairs returns Stats as an ordered list of named entries, for
// deterministic printing or iteration where field order matters more than
// struct access.
func (s Stats) Pairs() []KV {
	return []KV{
		{"serialized_bytes", s.SerializedBytes},
		{"reallocations", s.Reallocations},
		{"live_arena_bytes", s.LiveArenaBytes},
		{"max_active_path_length", s.MaxActivePathLength},
		{"register_slots", s.RegisterSlots},
		{"register_entries", s.RegisterEntries},
		{"estimated_memory_mib", s.EstimatedMemoryMiB},
	}
}
