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

// Package dawg builds minimal, deterministic, acyclic finite state
// automata over sorted sets of byte sequences.
//
// A [Builder] consumes sequences one at a time, in strictly
// lex-nondecreasing order, and performs on-the-fly minimization (the
// Daciuk/Mihov/Watson/Watson incremental construction): equivalent
// sub-automata are hash-consed and shared as soon as the input order
// proves they can never be extended again, so peak memory tracks the
// longest active prefix plus the minimal automaton rather than the size
// of the input.
//
// [Builder.Complete] publishes the result as an [Automaton]: a flat byte
// arena of fixed-width arcs plus an entry offset. Everything downstream of
// that — on-disk formats, perfect hashing, traversal — is deliberately out
// of scope; see [github.com/fsabuild/dawg/internal/walk] for the minimal
// traversal this package's own tests use to check their work.
package dawg
