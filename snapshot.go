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
	"sort"
)

// entry pairs a registered provider with its tag. Entries are compared by identity: two
// snapshots refer to the same provider registration if and only if they share the entry.
type entry[V any] struct {
	tag      uint32
	provider Provider[V]
}

// Snapshot is an immutable ordered sequence of registered providers at one point in time.
type Snapshot[V any] struct {
	entries []*entry[V]
}

// Len returns the number of providers in the snapshot.
func (s Snapshot[V]) Len() int { return len(s.entries) }

// Provider returns the i-th provider of the snapshot.
func (s Snapshot[V]) Provider(i int) Provider[V] { return s.entries[i].provider }

// Tag returns the tag of the i-th provider of the snapshot.
func (s Snapshot[V]) Tag(i int) uint32 { return s.entries[i].tag }

// span is the range of global positions [start, start+count) owned by an entry.
type span[V any] struct {
	e     *entry[V]
	index int // index of e in its snapshot
	start int
	count int
}

// spans is the prefix-sum layout of a snapshot for one of the provider counts.
type spans[V any] struct {
	s     []span[V]
	total int
}

// layout computes the spans of entries using count for each provider.
func layout[V any](entries []*entry[V], count func(Provider[V]) int) spans[V] {
	out := spans[V]{s: make([]span[V], 0, len(entries))}
	for i, e := range entries {
		n := count(e.provider)
		if n < 0 {
			panic(fmt.Sprintf("fusion: %T reported negative item count %d", e.provider, n))
		}
		out.s = append(out.s, span[V]{e: e, index: i, start: out.total, count: n})
		out.total += n
	}
	return out
}

// find returns the span that owns pos and the local position within it. ok is false if pos is
// outside of [0, total).
func (l *spans[V]) find(pos int) (sp span[V], local int, ok bool) {
	if pos < 0 || pos >= l.total {
		return span[V]{}, 0, false
	}
	// First span that ends after pos. Empty spans end where they start and are skipped.
	i := sort.Search(len(l.s), func(i int) bool {
		return l.s[i].start+l.s[i].count > pos
	})
	sp = l.s[i]
	return sp, pos - sp.start, true
}

// mustFind is find for positions that are known to be valid.
func (l *spans[V]) mustFind(pos int) (span[V], int) {
	sp, local, ok := l.find(pos)
	if !ok {
		panic(fmt.Sprintf("fusion: invariant violation: position %d doesn't resolve in snapshot with %d items", pos, l.total))
	}
	return sp, local
}

func oldCount[V any](p Provider[V]) int     { return p.OldCount() }
func newCount[V any](p Provider[V]) int     { return p.NewCount() }
func currentCount[V any](p Provider[V]) int { return p.Count() }
