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

// Provider is an independently owned ordered list of items that can be registered with a
// [Registry]. V is the type of views created by the rendering collaborator.
//
// Positions passed to a provider are always local to the provider. Providers are identified by
// interface equality and must therefore have comparable dynamic types, in practice pointers.
type Provider[V any] interface {
	// OldCount returns the number of items as of the last diff. A provider that changed its
	// items reports the previous number here and the current number from NewCount until the
	// change was dispatched.
	OldCount() int

	// NewCount returns the number of items the next diff transitions to.
	NewCount() int

	// Count returns the current number of items.
	Count() int

	// ItemKind returns the raw kind of the item at pos. It must fit into the bits that are not
	// reserved for tags (see [TagBits]).
	ItemKind(pos int) int

	// CreateView creates a view for items of the given raw kind.
	CreateView(kind int) V

	// BindView populates view with the item at pos.
	BindView(view V, pos int)

	// SameItem reports whether the old item at oldPos and the new item at newPos are the same
	// item.
	SameItem(oldPos, newPos int) bool

	// SameContent reports whether the old item at oldPos and the new item at newPos have the
	// same content. Only called if SameItem returned true.
	SameContent(oldPos, newPos int) bool

	// OnAttach is called when the provider is registered, before its items are dispatched. The
	// registry is in the middle of a mutation: calling NotifyChanged or any other mutating method
	// from OnAttach panics. Keep h and notify about later changes.
	OnAttach(h Handle[V])

	// OnDetach is called when the provider is deregistered, before its removal is dispatched. Like
	// in OnAttach, NotifyChanged must not be called.
	OnDetach(h Handle[V])
}

// Committer is an optional interface for providers that stage count changes in OldCount and
// NewCount. Commit is called on every registered provider after a diff was dispatched, so that
// the staged change isn't reported again by the next diff.
type Committer interface {
	Commit()
}

// Handle is given to a provider when it is registered. It lets the provider notify the registry
// about changes to its own items without holding on to the registry itself.
type Handle[V any] struct {
	r *Registry[V]
	e *entry[V]
}

// NotifyChanged diffs and dispatches the changes the provider made to its items. It's a shorthand
// for calling [Registry.NotifyChanged] on the registry that issued the handle.
func (h Handle[V]) NotifyChanged() error {
	if h.r == nil {
		return ErrForeignHandle
	}
	return h.r.NotifyChanged(h)
}

// Tag returns the tag of the provider's entry.
func (h Handle[V]) Tag() uint32 {
	if h.e == nil {
		return 0
	}
	return h.e.tag
}

// Sink receives the updates computed by a registry. It's the rendering collaborator that applies
// the updates to whatever displays the merged list.
type Sink interface {
	// Apply is called once per non-empty diff. The updates must be applied in order.
	Apply(updates []Update)
}

// SinkFunc adapts a function to a [Sink].
type SinkFunc func(updates []Update)

// Apply calls f(updates).
func (f SinkFunc) Apply(updates []Update) { f(updates) }
