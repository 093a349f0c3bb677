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

// Automaton is a published, immutable minimal acyclic FSA.
//
// Arena holds every frozen state as a run of fixed-width arcs (see
// [github.com/fsabuild/dawg/internal/arcs]); Entry is the offset of the
// epsilon arc, whose target is either the root state or
// [github.com/fsabuild/dawg/internal/arcs.Terminal] for the empty
// language. Both fields are safe to share across goroutines for read-only
// traversal.
type Automaton struct {
	Arena []byte
	Entry uint32
}
