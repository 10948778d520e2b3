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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by the diff engine and is then translated into the update operations of the
// registry.
package rvecs

import "iter"

// Kind describes what happens to the elements of a run.
type Kind int

const (
	Match  Kind = iota // Elements are kept in both sequences.
	Remove             // Elements are only in the old sequence.
	Insert             // Elements are only in the new sequence.
)

// Run describes a maximal sequence of consecutive elements of the same kind.
//
// For Remove runs T0 == T1 and for Insert runs S0 == S1. For Match runs S1-S0 == T1-T0.
type Run struct {
	Kind   Kind
	S0, S1 int // Start and end of the run in the old sequence.
	T0, T1 int // Start and end of the run in the new sequence.
}

// Runs iterates over the result vectors and yields runs in order. Removals are yielded before
// insertions at the same position.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			var r Run
			switch {
			case rx[s]:
				r = Run{Kind: Remove, S0: s, T0: t, T1: t}
				for s < n && rx[s] {
					s++
				}
				r.S1 = s
			case ry[t]:
				r = Run{Kind: Insert, S0: s, S1: s, T0: t}
				for t < m && ry[t] {
					t++
				}
				r.T1 = t
			default:
				r = Run{Kind: Match, S0: s, T0: t}
				for s < n && t < m && !rx[s] && !ry[t] {
					s++
					t++
				}
				r.S1, r.T1 = s, t
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Validate panics if rx and ry don't describe the same number of matches. This is the case when
// an engine returns inconsistent result vectors.
func Validate(rx, ry []bool) {
	var dx, dy int
	for _, r := range rx[:len(rx)-1] {
		if !r {
			dx++
		}
	}
	for _, r := range ry[:len(ry)-1] {
		if !r {
			dy++
		}
	}
	if dx != dy || rx[len(rx)-1] || ry[len(ry)-1] {
		panic("inconsistent result vectors")
	}
}
