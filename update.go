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

import "fmt"

// Op describes the kind of a structural update.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Insert Op = iota // Items are inserted at [Pos, End)
	Remove           // Items at [Pos, End) are removed
	Move             // The item at From moves to To
	Change           // The content of the items at [Pos, End) changed
)

// Update describes a single structural update of the merged list.
//
// Positions are global positions in the merged list at the time the update is applied, that is,
// after all preceding updates of the same list have been applied.
//
//   - For Insert, Remove, and Change, [Pos, End) is the affected range and From and To are unset.
//   - For Move, the item at From is removed and reinserted such that it ends up at To. Pos and
//     End are unset.
type Update struct {
	Op       Op
	Pos, End int
	From, To int
}

// Len returns the number of items affected by u.
func (u Update) Len() int {
	if u.Op == Move {
		return 1
	}
	return u.End - u.Pos
}

func (u Update) String() string {
	if u.Op == Move {
		return fmt.Sprintf("%v(%d->%d)", u.Op, u.From, u.To)
	}
	return fmt.Sprintf("%v[%d,%d)", u.Op, u.Pos, u.End)
}
