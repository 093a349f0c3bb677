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
	"fmt"

	"github.com/fsabuild/dawg"
	"github.com/fsabuild/dawg/internal/walk"
)

func Example() {
	// Sequences must arrive in sorted order; Build is a convenience wrapper
	// around New, Add, and Complete for callers who already have them all
	// in hand.
	a := dawg.Build([][]byte{
		[]byte("a"),
		[]byte("aba"),
		[]byte("ac"),
		[]byte("b"),
		[]byte("ba"),
		[]byte("c"),
	})

	for _, seq := range walk.Sequences(a.Arena, a.Entry) {
		fmt.Println(string(seq))
	}

	// Output:
	// a
	// aba
	// ac
	// b
	// ba
	// c
}

func Example_incremental() {
	b := dawg.New()
	for _, seq := range []string{"ac", "bc"} {
		b.Add([]byte(seq))
	}
	a := b.Complete()
	stats := b.Stats()

	// "ac" and "bc" share a minimized tail state, so there are only two
	// distinct states in the register: the root and the shared 'c' state.
	fmt.Println("entries:", stats.RegisterEntries)
	for _, seq := range walk.Sequences(a.Arena, a.Entry) {
		fmt.Println(string(seq))
	}

	// Output:
	// entries: 2
	// ac
	// bc
}
