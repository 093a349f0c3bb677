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

// Package assert provides a single always-on internal invariant check.
//
// Unlike the teacher's debug.Assert, this is not gated behind a build tag:
// a builder that has been driven into a state its own invariants forbid
// (e.g. a freeze target pointing at scratch, not canonical, bytes) must
// never silently continue and publish a broken automaton — see §7 of
// SPEC_FULL.md ("no user-visible partial build is ever published").
package assert

import "fmt"

// That panics with a formatted message if cond is false.
//
// Use this only for conditions that indicate a bug in this module itself,
// never for validating caller-supplied data — those get typed error values
// instead (see the root package's error types).
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("dawg: internal invariant violated: "+format, args...))
	}
}
