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

// Package tags allocates small integer tags that are unique among all live tags.
//
// Tags are handed out from a counter that increases with every allocation and wraps around at the
// number of available tags. A tag that is still in use is skipped by probing linearly for the
// next free one, so that two live entries never share a tag, even after the counter wrapped.
package tags

import (
	"errors"
	"math/bits"

	"fortio.org/safecast"
)

// ErrExhausted is returned when all tags are in use.
var ErrExhausted = errors.New("all tags are in use")

// Allocator allocates tags in [0, n).
type Allocator struct {
	n    int
	next int
	live int
	used []uint64 // occupancy bit set
}

// New creates an allocator for the tags [0, n).
func New(n int) *Allocator {
	if n <= 0 {
		panic("tags: non-positive number of tags")
	}
	return &Allocator{n: n}
}

// Len returns the number of live tags.
func (a *Allocator) Len() int { return a.live }

// Alloc returns the next free tag.
func (a *Allocator) Alloc() (uint32, error) {
	if a.live == a.n {
		return 0, ErrExhausted
	}
	for i := range a.n {
		tag := (a.next + i) % a.n
		if a.isUsed(tag) {
			continue
		}
		a.set(tag)
		a.next = (tag + 1) % a.n
		a.live++
		out, err := safecast.Conv[uint32](tag)
		if err != nil {
			panic(err)
		}
		return out, nil
	}
	panic("never reached")
}

// Release makes tag available again. Releasing a tag that isn't live panics.
func (a *Allocator) Release(tag uint32) {
	i := int(tag)
	if i >= a.n || !a.isUsed(i) {
		panic("tags: release of a tag that isn't live")
	}
	a.used[i/64] &^= 1 << (i % 64)
	a.live--
}

// InUse reports whether tag is live.
func (a *Allocator) InUse(tag uint32) bool {
	i := int(tag)
	return i < a.n && a.isUsed(i)
}

// Live returns the live tags in ascending order.
func (a *Allocator) Live() []uint32 {
	out := make([]uint32, 0, a.live)
	for w, word := range a.used {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, uint32(w*64+b))
			word &^= 1 << b
		}
	}
	return out
}

func (a *Allocator) isUsed(i int) bool {
	w := i / 64
	return w < len(a.used) && a.used[w]&(1<<(i%64)) != 0
}

func (a *Allocator) set(i int) {
	w := i / 64
	for len(a.used) <= w {
		a.used = append(a.used, 0)
	}
	a.used[w] |= 1 << (i % 64)
}
