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

import (
	"go.uber.org/zap"

	"github.com/fsabuild/dawg/internal/arena"
)

// config holds the resolved settings a [Builder] is constructed with.
type config struct {
	growth   int
	maxArena uint32
	log      *zap.Logger
}

func defaultConfig() config {
	return config{
		growth:   arena.DefaultGrowthSize,
		maxArena: 0, // resolved to math.MaxUint32 by arena.New.
		log:      zap.NewNop(),
	}
}

// Option configures a [Builder] at construction.
type Option func(*config)

// WithBufferGrowthSize sets the arena's grow quantum: how much headroom is
// added each time the arena must reallocate. It is floored at one
// worst-case state's worth of bytes regardless of the value given.
func WithBufferGrowthSize(n int) Option {
	return func(c *config) { c.growth = n }
}

// WithMaxArenaSize caps the arena's address space. Exceeding it raises
// [AllocationFailureError]. The default is the natural ceiling imposed by
// the arc codec's 4-byte target field (math.MaxUint32); a smaller value is
// mainly useful to exercise allocation failure in tests without needing
// gigabytes of input.
func WithMaxArenaSize(n uint32) Option {
	return func(c *config) { c.maxArena = n }
}

// WithLogger attaches a structured logger that receives debug-level
// records of arena growth, register resizes, and freeze hit/miss events.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}
