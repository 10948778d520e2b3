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
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/fusion"
	"znkr.io/fusion/internal/listmodel"
)

// item is an element of a list provider. Items with the same ID are the same item.
type item struct {
	ID      string
	Content string
}

// items parses a space separated list of items. An item is either "id" or "id:content".
func items(s string) []item {
	var out []item
	for f := range strings.FieldsSeq(s) {
		id, content, _ := strings.Cut(f, ":")
		out = append(out, item{ID: id, Content: content})
	}
	return out
}

// list is a provider that stages changes in new until they are committed by the registry.
type list struct {
	name     string
	old, new []item
	kind     func(pos int) int

	h        fusion.Handle[string]
	attached int
	detached int
	bound    []string
}

func newList(name, s string) *list {
	it := items(s)
	return &list{name: name, old: it, new: slices.Clone(it)}
}

func (l *list) OldCount() int { return len(l.old) }
func (l *list) NewCount() int { return len(l.new) }
func (l *list) Count() int    { return len(l.new) }

func (l *list) ItemKind(pos int) int {
	if l.kind == nil {
		return 0
	}
	return l.kind(pos)
}

func (l *list) CreateView(kind int) string { return fmt.Sprintf("%s/%d", l.name, kind) }

func (l *list) BindView(view string, pos int) {
	l.bound = append(l.bound, fmt.Sprintf("%s=%s", view, l.new[pos].ID))
}

func (l *list) SameItem(s, t int) bool    { return l.old[s].ID == l.new[t].ID }
func (l *list) SameContent(s, t int) bool { return l.old[s] == l.new[t] }

func (l *list) OnAttach(h fusion.Handle[string]) { l.h = h; l.attached++ }
func (l *list) OnDetach(h fusion.Handle[string]) { l.detached++ }

func (l *list) Commit() { l.old = slices.Clone(l.new) }

// tb is the subset of testing.TB that is also implemented by *rapid.T.
type tb interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// set stages a new list of items and notifies the registry.
func (l *list) set(t tb, s string) {
	t.Helper()
	l.new = items(s)
	if err := l.h.NotifyChanged(); err != nil {
		t.Fatalf("NotifyChanged() = %v", err)
	}
}

// harness records all dispatched updates and replays them on a list model.
type harness struct {
	r    *fusion.Registry[string]
	m    *listmodel.Model[item]
	sent [][]fusion.Update
}

func newHarness(opts ...fusion.Option) *harness {
	h := &harness{m: listmodel.New[item]()}
	h.r = fusion.New[string](fusion.SinkFunc(func(updates []fusion.Update) {
		h.sent = append(h.sent, slices.Clone(updates))
		h.m.Apply(updates)
	}), opts...)
	return h
}

// last returns the updates dispatched since the last call and resets the record.
func (h *harness) last() []fusion.Update {
	var out []fusion.Update
	for _, u := range h.sent {
		out = append(out, u...)
	}
	h.sent = nil
	return out
}

// check binds all stale rows of the model and verifies that the model equals the items of all
// registered providers.
func (h *harness) check(t tb) {
	t.Helper()
	h.m.Bind(func(pos int) item {
		loc, err := h.r.Resolve(pos)
		if err != nil {
			t.Fatalf("Resolve(%d) = %v", pos, err)
		}
		return loc.Provider.(*list).new[loc.Local]
	})
	var want []item
	for i := range h.r.Len() {
		want = append(want, h.r.Provider(i).(*list).new...)
	}
	if diff := cmp.Diff(want, h.m.Values(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("list model differs from registry [-want,+got]:\n%s", diff)
	}
	if got, want := h.r.Count(), len(want); got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}

// counter is a provider of n items whose identity and content are their position.
type counter struct {
	old, n int
	kind   func(pos int) int
	h      fusion.Handle[string]
}

func (c *counter) OldCount() int                    { return c.old }
func (c *counter) NewCount() int                    { return c.n }
func (c *counter) Count() int                       { return c.n }
func (c *counter) ItemKind(pos int) int             { return c.kind(pos) }
func (c *counter) CreateView(kind int) string       { return fmt.Sprintf("counter/%d", kind) }
func (c *counter) BindView(view string, pos int)    {}
func (c *counter) SameItem(s, t int) bool           { return s == t }
func (c *counter) SameContent(s, t int) bool        { return true }
func (c *counter) OnAttach(h fusion.Handle[string]) { c.h = h }
func (c *counter) OnDetach(h fusion.Handle[string]) {}
func (c *counter) Commit()                          { c.old = c.n }

func (c *counter) add() error    { c.old, c.n = c.n, c.n+1; return c.h.NotifyChanged() }
func (c *counter) remove() error { c.old, c.n = c.n, c.n-1; return c.h.NotifyChanged() }

func mod(k int) func(int) int { return func(pos int) int { return pos % k } }
