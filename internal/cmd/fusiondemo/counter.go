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

package main

import (
	"errors"
	"fmt"

	"znkr.io/fusion"
)

// view is what the demo renders for a single item.
type view struct {
	layout string
	text   string
}

func (v *view) String() string { return v.layout + " " + v.text }

// counter is a provider of n numbered items. It stages every change of n in old and n and asks the
// registry to dispatch it.
type counter struct {
	name  string
	kinds int
	old   int
	n     int
	h     fusion.Handle[*view]
}

func newCounter(name string, n, kinds int) *counter {
	return &counter{name: name, kinds: kinds, old: n, n: n}
}

func (c *counter) OldCount() int        { return c.old }
func (c *counter) NewCount() int        { return c.n }
func (c *counter) Count() int           { return c.n }
func (c *counter) ItemKind(pos int) int { return pos % c.kinds }

func (c *counter) CreateView(kind int) *view {
	return &view{layout: fmt.Sprintf("%s/%d", c.name, kind)}
}

func (c *counter) BindView(v *view, pos int) { v.text = fmt.Sprintf("Position: %d", pos) }

// Items are identified by their position and never change their content.
func (c *counter) SameItem(s, t int) bool    { return s == t }
func (c *counter) SameContent(s, t int) bool { return s == t }

func (c *counter) OnAttach(h fusion.Handle[*view]) { c.h = h }
func (c *counter) OnDetach(fusion.Handle[*view])   {}

func (c *counter) Commit() { c.old = c.n }

func (c *counter) add() error {
	c.old, c.n = c.n, c.n+1
	return c.h.NotifyChanged()
}

var errEmpty = errors.New("no items left")

func (c *counter) remove() error {
	if c.n == 0 {
		return errEmpty
	}
	c.old, c.n = c.n, c.n-1
	return c.h.NotifyChanged()
}
