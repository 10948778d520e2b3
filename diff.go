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
	"slices"

	"znkr.io/fusion/internal/config"
	"znkr.io/fusion/internal/myers"
	"znkr.io/fusion/internal/rvecs"
)

// Diff compares two snapshots and returns the updates necessary to transform the merged list of
// before into the merged list of after.
//
// The old list consists of the OldCount items of every provider in before, the new list of the
// NewCount items of every provider in after. An old and a new item are the same item only if both
// belong to the same provider registration and the provider's SameItem reports true for their
// local positions. Items of different providers never match, even if their local positions do.
//
// If the snapshots are identical and no provider staged a change, the output has length zero.
//
// The following options are supported: [Minimal], [DetectMoves], [WithEngine]
func Diff[V any](before, after Snapshot[V], opts ...Option) []Update {
	cfg := config.FromOptions(opts, config.Minimal|config.DetectMoves|config.EngineFunc)
	return diff(before.entries, after.entries, cfg)
}

// differ holds the two position layouts and implements the gated predicates.
type differ[V any] struct {
	old, new spans[V]
}

func (d *differ[V]) sameItem(s, t int) bool {
	os, ol := d.old.mustFind(s)
	ns, nl := d.new.mustFind(t)
	return os.e == ns.e && os.e.provider.SameItem(ol, nl)
}

func (d *differ[V]) sameContent(s, t int) bool {
	os, ol := d.old.mustFind(s)
	ns, nl := d.new.mustFind(t)
	return os.e == ns.e && os.e.provider.SameContent(ol, nl)
}

func diff[V any](before, after []*entry[V], cfg config.Config) []Update {
	d := &differ[V]{
		old: layout(before, oldCount[V]),
		new: layout(after, newCount[V]),
	}
	n, m := d.old.total, d.new.total

	var rx, ry []bool
	if cfg.Engine != nil {
		rx, ry = cfg.Engine(n, m, d.sameItem)
		if len(rx) != n+1 || len(ry) != m+1 {
			panic(fmt.Sprintf("fusion: engine returned result vectors of length %d, %d for inputs of length %d, %d", len(rx), len(ry), n, m))
		}
	} else {
		rx, ry = myers.Diff(n, m, d.sameItem, cfg.Minimal)
	}
	rvecs.Validate(rx, ry)

	var sc script[V]
	sc.d = d
	sc.matches(rx, ry)
	if cfg.DetectMoves {
		sc.moves(rx, ry)
	}
	return sc.build(rx, ry)
}

// script turns result vectors into a list of updates.
type script[V any] struct {
	d *differ[V]

	// oldOf[t] is the old position of the new item t if t is matched or moved, -1 otherwise.
	oldOf []int

	// moved[s] is set if the removed old item s is the source of a move.
	moved []bool
}

func (sc *script[V]) matches(rx, ry []bool) {
	sc.oldOf = make([]int, len(ry)-1)
	for i := range sc.oldOf {
		sc.oldOf[i] = -1
	}
	for r := range rvecs.Runs(rx, ry) {
		if r.Kind != rvecs.Match {
			continue
		}
		for i := range r.S1 - r.S0 {
			sc.oldOf[r.T0+i] = r.S0 + i
		}
	}
}

// moves pairs removed and inserted items with the same identity. Removed items are considered in
// order and each is paired with the first unpaired inserted item it matches.
//
// Only items of the same entry can be paired, so inserted items are grouped by entry and their
// local positions are resolved once.
func (sc *script[V]) moves(rx, ry []bool) {
	type candidate struct{ t, local int }
	inserted := make(map[*entry[V]][]candidate)
	for t, r := range ry[:len(ry)-1] {
		if r {
			sp, local := sc.d.new.mustFind(t)
			inserted[sp.e] = append(inserted[sp.e], candidate{t, local})
		}
	}
	if len(inserted) == 0 {
		return
	}

	for s, r := range rx[:len(rx)-1] {
		if !r {
			continue
		}
		sp, local := sc.d.old.mustFind(s)
		cands := inserted[sp.e]
		for i, c := range cands {
			if !sp.e.provider.SameItem(local, c.local) {
				continue
			}
			if sc.moved == nil {
				sc.moved = make([]bool, len(rx)-1)
			}
			sc.moved[s] = true
			sc.oldOf[c.t] = s
			inserted[sp.e] = slices.Delete(cands, i, i+1)
			break
		}
	}
}

// build generates the updates. All removals are emitted first, left to right. Then a single walk
// over the new list emits insertions, moves, and changes in the order in which they are
// encountered. Adjacent updates of the same kind are merged.
//
// The walk keeps a simulation of the list in cur, where every element is the old position of an
// item or -1 for an inserted item. cur[:i] holds the completed prefix of the new list, interleaved
// with items that wait to be moved further back.
func (sc *script[V]) build(rx, ry []bool) []Update {
	n, m := len(rx)-1, len(ry)-1
	var out []Update

	// Removals.
	cur := make([]int, 0, max(n, m))
	for s := range n {
		if rx[s] && (sc.moved == nil || !sc.moved[s]) {
			out = extend(out, Remove, len(cur))
			continue
		}
		cur = append(cur, s)
	}

	i := 0
	for t := 0; t < m; {
		s := sc.oldOf[t]
		switch {
		case s < 0:
			// Run of insertions.
			k := 1
			for t+k < m && sc.oldOf[t+k] < 0 {
				k++
			}
			cur = slices.Insert(cur, i, slices.Repeat([]int{-1}, k)...)
			for range k {
				out = extend(out, Insert, i)
				i++
			}
			t += k
			continue

		case ry[t]:
			// Move of old item s to the current position.
			j := slices.Index(cur, s)
			if j < 0 {
				panic(fmt.Sprintf("fusion: invariant violation: move source %d not found", s))
			}
			cur = slices.Delete(cur, j, j+1)
			if j < i {
				i--
			}
			cur = slices.Insert(cur, i, s)
			if j != i {
				out = append(out, Update{Op: Move, From: j, To: i})
			}

		default:
			// Match. Skip over items that are waiting to be moved.
			for i < len(cur) && cur[i] != s {
				if cur[i] < 0 || sc.moved == nil || !sc.moved[cur[i]] {
					panic(fmt.Sprintf("fusion: invariant violation: matched item %d not in order", s))
				}
				i++
			}
			if i == len(cur) {
				panic(fmt.Sprintf("fusion: invariant violation: matched item %d not found", s))
			}
		}

		if !sc.d.sameContent(s, t) {
			out = extend(out, Change, i)
		}
		i++
		t++
	}

	if len(cur) != m {
		panic(fmt.Sprintf("fusion: invariant violation: script results in %d items, want %d", len(cur), m))
	}
	return out
}

// extend adds a single item update of kind op at pos to out, merging it with the last update if
// they are adjacent.
func extend(out []Update, op Op, pos int) []Update {
	if len(out) > 0 {
		last := &out[len(out)-1]
		switch {
		case last.Op != op:
		case op == Remove && last.Pos == pos:
			// Removing at the same position again extends the removed range.
			last.End++
			return out
		case op != Remove && last.End == pos:
			last.End++
			return out
		}
	}
	return append(out, Update{Op: op, Pos: pos, End: pos + 1})
}
