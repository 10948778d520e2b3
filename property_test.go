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

package fusion_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
	"znkr.io/fusion"
)

// gen creates fresh items with unique IDs.
type gen struct{ next int }

func (g *gen) item() item {
	g.next++
	return item{ID: fmt.Sprintf("i%d", g.next)}
}

func (g *gen) items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = g.item()
	}
	return out
}

// edit returns a random modification of in: items are dropped, changed, inserted, and swapped.
func (g *gen) edit(t *rapid.T, in []item) []item {
	var out []item
	if rapid.IntRange(0, 3).Draw(t, "prepend") == 0 {
		out = append(out, g.item())
	}
	for _, it := range in {
		switch rapid.IntRange(0, 4).Draw(t, "op") {
		case 0:
			// Dropped.
		case 1:
			g.next++
			it.Content = fmt.Sprintf("c%d", g.next)
			out = append(out, it)
		default:
			out = append(out, it)
		}
		if rapid.IntRange(0, 4).Draw(t, "insert") == 0 {
			out = append(out, g.item())
		}
	}
	if len(out) > 1 {
		for range rapid.IntRange(0, 2).Draw(t, "swaps") {
			i := rapid.IntRange(0, len(out)-1).Draw(t, "i")
			j := rapid.IntRange(0, len(out)-1).Draw(t, "j")
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func drawOptions(t *rapid.T) []fusion.Option {
	var opts []fusion.Option
	if rapid.Bool().Draw(t, "minimal") {
		opts = append(opts, fusion.Minimal())
	}
	if !rapid.Bool().Draw(t, "detectMoves") {
		opts = append(opts, fusion.DetectMoves(false))
	}
	return opts
}

// register registers n providers with random items at random indices.
func register(t *rapid.T, h *harness, g *gen, n int) {
	for i := range n {
		l := &list{name: fmt.Sprintf("p%d", i)}
		l.new = g.items(rapid.IntRange(0, 8).Draw(t, "count"))
		index := rapid.IntRange(0, h.r.Len()).Draw(t, "index")
		if err := h.r.Register(index, l); err != nil {
			t.Fatalf("Register(%d, %s) = %v", index, l.name, err)
		}
	}
}

func TestProperty_positionBijection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness()
		var g gen
		register(t, h, &g, rapid.IntRange(0, 6).Draw(t, "providers"))

		start := make([]int, h.r.Len()+1)
		for i := range h.r.Len() {
			start[i+1] = start[i] + h.r.Provider(i).Count()
		}
		for pos := range h.r.Count() {
			loc, err := h.r.Resolve(pos)
			if err != nil {
				t.Fatalf("Resolve(%d) = %v", pos, err)
			}
			if got := loc.Global(); got != pos {
				t.Fatalf("Resolve(%d).Global() = %d", pos, got)
			}
			if loc.Provider != h.r.Provider(loc.Index) || loc.Start != start[loc.Index] {
				t.Fatalf("Resolve(%d) = %+v, inconsistent with provider order", pos, loc)
			}
			if loc.Local < 0 || loc.Local >= loc.Provider.Count() {
				t.Fatalf("Resolve(%d) has local position %d outside of provider", pos, loc.Local)
			}
			if got, err := h.r.Position(loc.Provider, loc.Local); err != nil || got != pos {
				t.Fatalf("Position(Resolve(%d)) = (%d, %v)", pos, got, err)
			}
		}
	})
}

func TestProperty_kindRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tagBits := rapid.IntRange(1, 31).Draw(t, "tagBits")
		tag := rapid.Uint32Range(0, 1<<tagBits-1).Draw(t, "tag")
		raw := rapid.IntRange(0, 1<<(32-tagBits)-1).Draw(t, "raw")

		k, err := fusion.PackKind(tagBits, tag, raw)
		if err != nil {
			t.Fatalf("PackKind(%d, %d, %d) = %v", tagBits, tag, raw, err)
		}
		if gotTag, gotRaw := k.Split(tagBits); gotTag != tag || gotRaw != raw {
			t.Fatalf("PackKind(%d, %d, %d).Split() = (%d, %d)", tagBits, tag, raw, gotTag, gotRaw)
		}
	})
}

func TestProperty_registrationUniqueness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness()
		var g gen
		register(t, h, &g, rapid.IntRange(1, 6).Draw(t, "providers"))
		h.last()

		p := h.r.Provider(rapid.IntRange(0, h.r.Len()-1).Draw(t, "provider"))
		n := h.r.Len()
		index := rapid.IntRange(0, n).Draw(t, "index")
		if err := h.r.Register(index, p); !errors.Is(err, fusion.ErrDuplicateProvider) {
			t.Fatalf("Register(%d, p) = %v, want %v", index, err, fusion.ErrDuplicateProvider)
		}
		if got := h.r.Len(); got != n {
			t.Fatalf("Len() = %d after duplicate registration, want %d", got, n)
		}
		if got := h.last(); len(got) != 0 {
			t.Fatalf("duplicate registration dispatched %v", got)
		}
	})
}

func TestProperty_insertAtEnd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness(drawOptions(t)...)
		var g gen
		register(t, h, &g, rapid.IntRange(1, 6).Draw(t, "providers"))

		i := rapid.IntRange(0, h.r.Len()-1).Draw(t, "provider")
		l := h.r.Provider(i).(*list)
		pos := 0
		for j := range i + 1 {
			pos += h.r.Provider(j).Count()
		}

		before := h.r.Snapshot()
		l.new = append(l.new, g.item())
		got := fusion.Diff(before, h.r.Snapshot(), drawOptions(t)...)
		if diff := cmp.Diff([]fusion.Update{ins(pos, pos+1)}, got); diff != "" {
			t.Fatalf("Diff(...) result is different [-want,+got]:\n%s", diff)
		}
	})
}

func TestProperty_idempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness()
		var g gen
		register(t, h, &g, rapid.IntRange(0, 6).Draw(t, "providers"))
		h.last()

		s := h.r.Snapshot()
		opts := drawOptions(t)
		for range 2 {
			if got := fusion.Diff(s, s, opts...); len(got) != 0 {
				t.Fatalf("Diff(s, s) = %v, want no updates", got)
			}
		}
		if h.r.Len() > 0 {
			if err := h.r.NotifyChanged(h.r.Provider(0).(*list).h); err != nil {
				t.Fatalf("NotifyChanged() = %v", err)
			}
			if got := h.last(); len(got) != 0 {
				t.Fatalf("NotifyChanged() without changes dispatched %v", got)
			}
		}
	})
}

// TestProperty_mutations runs random sequences of registrations, deregistrations, and item edits
// and checks that the dispatched updates keep a list model in sync with the registry.
func TestProperty_mutations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness(drawOptions(t)...)
		var g gen
		next := 0
		for range rapid.IntRange(1, 20).Draw(t, "steps") {
			switch op := rapid.IntRange(0, 3).Draw(t, "step"); {
			case op == 0 || h.r.Len() == 0:
				next++
				l := &list{name: fmt.Sprintf("p%d", next), new: g.items(rapid.IntRange(0, 8).Draw(t, "count"))}
				index := rapid.IntRange(0, h.r.Len()).Draw(t, "index")
				if err := h.r.Register(index, l); err != nil {
					t.Fatalf("Register(%d, %s) = %v", index, l.name, err)
				}
			case op == 1:
				index := rapid.IntRange(0, h.r.Len()-1).Draw(t, "index")
				if !h.r.DeregisterAt(index) {
					t.Fatalf("DeregisterAt(%d) = false", index)
				}
			default:
				// Stage edits in one or more providers and notify once.
				var l *list
				for i := range h.r.Len() {
					if i == 0 || rapid.Bool().Draw(t, "edit") {
						l = h.r.Provider(i).(*list)
						l.new = g.edit(t, l.new)
					}
				}
				if err := l.h.NotifyChanged(); err != nil {
					t.Fatalf("NotifyChanged() = %v", err)
				}
			}
			for _, u := range h.last() {
				if u.Op == fusion.Move && u.From == u.To {
					t.Fatalf("dispatched no-op %v", u)
				}
			}
			h.check(t)
		}
	})
}
