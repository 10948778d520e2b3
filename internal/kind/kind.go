// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kind packs entry tags and raw item kinds into composite 32 bit kinds.
package kind

import (
	"fmt"

	"fortio.org/safecast"
)

// Layout describes how a composite kind is split: the tag occupies the high TagBits bits, the raw
// kind the remaining low bits.
type Layout struct {
	TagBits int
}

// RawBits returns the number of low bits available to raw kinds.
func (l Layout) RawBits() int { return 32 - l.TagBits }

// Tags returns the number of distinct tags.
func (l Layout) Tags() int { return 1 << l.TagBits }

func (l Layout) rawMask() uint32 { return 1<<l.RawBits() - 1 }

// Pack packs tag and raw into a composite kind. It returns an error if raw is negative or doesn't
// fit into the low bits. The tag must be smaller than l.Tags().
func (l Layout) Pack(tag uint32, raw int) (uint32, error) {
	if uint64(tag) >= uint64(l.Tags()) {
		panic(fmt.Sprintf("tag %d outside of [0, %d)", tag, l.Tags()))
	}
	r, err := safecast.Conv[uint32](raw)
	if err != nil {
		return 0, fmt.Errorf("raw kind %d: %w", raw, err)
	}
	if r&^l.rawMask() != 0 {
		return 0, fmt.Errorf("raw kind %#x uses bits reserved for tags (%d low bits available)", r, l.RawBits())
	}
	return tag<<l.RawBits() | r, nil
}

// Unpack returns the tag and raw kind of a composite kind.
func (l Layout) Unpack(k uint32) (tag uint32, raw int) {
	return k >> l.RawBits(), int(k & l.rawMask())
}
