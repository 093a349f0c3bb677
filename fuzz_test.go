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

package dawg_test

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsabuild/dawg"
	"github.com/fsabuild/dawg/internal/walk"
)

// splitCorpus carves raw fuzzer bytes into a lex-sorted, deduplicated
// sequence set, using 0x00 as a separator so both the empty string and
// every other byte value (including 0xFF) are reachable; 0x00 itself never
// appears inside a sequence.
func splitCorpus(raw []byte) [][]byte {
	parts := bytes.Split(raw, []byte{0})

	sort.Slice(parts, func(i, j int) bool { return bytes.Compare(parts[i], parts[j]) < 0 })

	out := parts[:0]
	for i, p := range parts {
		if i > 0 && bytes.Equal(p, parts[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FuzzBuild throws random lex-sorted corpora (and, via splitCorpus's
// dedup-in-place rewrite, corpora that are never presented out of order) at
// the builder and checks two invariants that must hold for any input: the
// rebuilt language matches the input set exactly, and the resulting graph
// has no cycles.
func FuzzBuild(f *testing.F) {
	f.Add([]byte("a\x00ab\x00ac\x00b"))
	f.Add([]byte("\x00a\x00aa\x00aaa"))
	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add(bytes.Repeat([]byte{0xFF, 0}, 50))

	f.Fuzz(func(t *testing.T, raw []byte) {
		in := splitCorpus(raw)

		a := dawg.Build(in)

		want := make([]string, len(in))
		for i, s := range in {
			want[i] = string(s)
		}
		sort.Strings(want)

		got := make([]string, 0, len(in))
		for _, s := range walk.Sequences(a.Arena, a.Entry) {
			got = append(got, string(s))
		}
		sort.Strings(got)

		require.Equal(t, want, got)

		_, err := walk.Reachable(a.Arena, a.Entry)
		require.NoError(t, err, "a correctly built automaton must always be acyclic")
	})
}
