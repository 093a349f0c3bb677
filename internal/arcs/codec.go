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

// Package arcs implements the fixed-width arc codec shared by every other
// package in this module.
//
// An arc is a six byte record: one flags byte, one label byte, and a four
// byte big-endian target offset. Fixing the width (rather than using a
// variable-length encoding, as downstream on-disk formats do) is what makes
// two states' byte regions comparable for equality with a single memcmp,
// which is the basis of the register's hash-consing in
// [github.com/fsabuild/dawg/internal/register].
package arcs

import "encoding/binary"

// Size is the width in bytes of a single arc record.
const Size = 6

const (
	flagsOffset  = 0
	labelOffset  = 1
	targetOffset = 2
)

// Flag bits within an arc's flags byte.
const (
	// Last marks the final arc of the state that owns it.
	Last byte = 0x01
	// Final marks an arc whose traversal accepts the sequence spelled so far.
	Final byte = 0x02
)

// Terminal is the reserved sink address: transitioning to it accepts and
// stops. It is never materialized as a state in the arena.
const Terminal uint32 = 0

// Flags returns the flags byte of the arc at off.
func Flags(buf []byte, off uint32) byte {
	return buf[off+flagsOffset]
}

// Label returns the label byte of the arc at off.
func Label(buf []byte, off uint32) byte {
	return buf[off+labelOffset]
}

// Target returns the big-endian target offset of the arc at off.
func Target(buf []byte, off uint32) uint32 {
	return binary.BigEndian.Uint32(buf[off+targetOffset : off+targetOffset+4])
}

// SetTarget overwrites the target offset of the arc at off.
func SetTarget(buf []byte, off uint32, target uint32) {
	binary.BigEndian.PutUint32(buf[off+targetOffset:off+targetOffset+4], target)
}

// SetLabel overwrites the label byte of the arc at off.
func SetLabel(buf []byte, off uint32, label byte) {
	buf[off+labelOffset] = label
}

// IsLast reports whether the arc at off is the last arc of its state.
func IsLast(buf []byte, off uint32) bool {
	return Flags(buf, off)&Last != 0
}

// IsFinal reports whether the arc at off accepts.
func IsFinal(buf []byte, off uint32) bool {
	return Flags(buf, off)&Final != 0
}

// MarkLast sets the Last bit on the arc at off.
func MarkLast(buf []byte, off uint32) {
	buf[off+flagsOffset] |= Last
}

// ClearLast clears the Last bit on the arc at off.
//
// The builder itself does not call this: it sets Last only when a state is
// frozen, and a frozen depth is reopened rather than extended.
func ClearLast(buf []byte, off uint32) {
	buf[off+flagsOffset] &^= Last
}

// MarkFinal sets the Final bit on the arc at off.
func MarkFinal(buf []byte, off uint32) {
	buf[off+flagsOffset] |= Final
}

// SetFlags overwrites the flags byte outright.
func SetFlags(buf []byte, off uint32, flags byte) {
	buf[off+flagsOffset] = flags
}

// ScanLength returns the number of arcs, and their combined byte length,
// of the state whose first arc starts at base — that is, it walks forward
// arc by arc until it finds the one with Last set.
func ScanLength(buf []byte, base uint32) (arcCount int, byteLen uint32) {
	off := base
	for {
		arcCount++
		off += Size
		if IsLast(buf, off-Size) {
			return arcCount, off - base
		}
	}
}
