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

package fusion

import (
	"fmt"

	"znkr.io/fusion/internal/kind"
)

// Kind is a composite item kind. The high bits hold the tag of the provider that reported the
// kind and the low bits hold the provider's raw kind. The split is configured with [TagBits].
type Kind uint32

// Split returns the tag and the raw kind of k for a split with tagBits high bits.
func (k Kind) Split(tagBits int) (tag uint32, raw int) {
	return kind.Layout{TagBits: tagBits}.Unpack(uint32(k))
}

func (k Kind) String() string { return fmt.Sprintf("0x%08x", uint32(k)) }

// PackKind packs tag and raw into a composite kind for a split with tagBits high bits. It returns
// an error wrapping [ErrInvalidItemKind] if raw doesn't fit into the low bits and an error
// wrapping [ErrOutOfRange] if tag doesn't fit into the high bits.
func PackKind(tagBits int, tag uint32, raw int) (Kind, error) {
	l := kind.Layout{TagBits: tagBits}
	if tagBits < 1 || tagBits > 31 {
		return 0, fmt.Errorf("%w: tag bits %d", ErrOutOfRange, tagBits)
	}
	if uint64(tag) >= uint64(l.Tags()) {
		return 0, fmt.Errorf("%w: tag %d doesn't fit into %d bits", ErrOutOfRange, tag, tagBits)
	}
	k, err := l.Pack(tag, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidItemKind, err)
	}
	return Kind(k), nil
}
