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

// Package listmodel provides an in-memory list that is kept up to date with the updates of a
// fusion registry.
//
// It plays the role of a rendering collaborator: inserted and changed rows are marked stale and
// need to be bound again before their values are current.
package listmodel

import (
	"fmt"
	"slices"

	"znkr.io/fusion"
)

// Model is a list of values that applies [fusion.Update] lists. The zero value is an empty list.
type Model[T any] struct {
	rows []row[T]
}

type row[T any] struct {
	v     T
	stale bool
}

// New creates a model with the given values. All rows are bound.
func New[T any](vs ...T) *Model[T] {
	m := &Model[T]{rows: make([]row[T], len(vs))}
	for i, v := range vs {
		m.rows[i].v = v
	}
	return m
}

// Len returns the number of rows.
func (m *Model[T]) Len() int { return len(m.rows) }

// Apply applies updates in order. It panics if an update refers to positions outside of the list.
func (m *Model[T]) Apply(updates []fusion.Update) {
	for _, u := range updates {
		if err := m.apply(u); err != nil {
			panic(fmt.Sprintf("listmodel: %v: %v", u, err))
		}
	}
}

func (m *Model[T]) apply(u fusion.Update) error {
	n := len(m.rows)
	switch u.Op {
	case fusion.Insert:
		if u.Pos < 0 || u.Pos > n || u.End <= u.Pos {
			return fmt.Errorf("invalid range for %d rows", n)
		}
		ins := make([]row[T], u.End-u.Pos)
		for i := range ins {
			ins[i].stale = true
		}
		m.rows = slices.Insert(m.rows, u.Pos, ins...)
	case fusion.Remove:
		if u.Pos < 0 || u.End > n || u.End <= u.Pos {
			return fmt.Errorf("invalid range for %d rows", n)
		}
		m.rows = slices.Delete(m.rows, u.Pos, u.End)
	case fusion.Change:
		if u.Pos < 0 || u.End > n || u.End <= u.Pos {
			return fmt.Errorf("invalid range for %d rows", n)
		}
		for i := u.Pos; i < u.End; i++ {
			m.rows[i].stale = true
		}
	case fusion.Move:
		if u.From < 0 || u.From >= n || u.To < 0 || u.To >= n {
			return fmt.Errorf("invalid move for %d rows", n)
		}
		r := m.rows[u.From]
		m.rows = slices.Delete(m.rows, u.From, u.From+1)
		m.rows = slices.Insert(m.rows, u.To, r)
	default:
		return fmt.Errorf("unknown op %d", u.Op)
	}
	return nil
}

// Stale returns the positions of all rows that need to be bound.
func (m *Model[T]) Stale() []int {
	var out []int
	for i, r := range m.rows {
		if r.stale {
			out = append(out, i)
		}
	}
	return out
}

// Bind binds all stale rows to the value returned by get for their position and returns the
// number of bound rows.
func (m *Model[T]) Bind(get func(pos int) T) int {
	n := 0
	for i := range m.rows {
		if m.rows[i].stale {
			m.rows[i] = row[T]{v: get(i)}
			n++
		}
	}
	return n
}

// Values returns the current values. Stale rows hold the zero value or the value they had
// before they were changed.
func (m *Model[T]) Values() []T {
	out := make([]T, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.v
	}
	return out
}
