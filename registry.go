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
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"znkr.io/fusion/internal/config"
	"znkr.io/fusion/internal/kind"
	"znkr.io/fusion/internal/tags"
)

// Registry multiplexes the items of several providers into one merged list.
//
// Every mutation of the registry, as well as every change a provider announces with
// [Registry.NotifyChanged], is diffed against the previous state and the resulting updates are
// dispatched to the registry's [Sink].
//
// A Registry is not safe for concurrent use. All calls, including calls from providers and the
// sink, must happen on the same goroutine or be serialized by the caller. Mutating the registry
// from within a provider hook or the sink panics.
type Registry[V any] struct {
	cfg    config.Config
	layout kind.Layout
	log    *slog.Logger
	sink   Sink
	tags   *tags.Allocator
	byTag  map[uint32]*entry[V]

	// before is the state as of the last dispatched diff, after the current state.
	before, after []*entry[V]

	busy bool // set while a mutation is in progress
}

// New creates an empty registry that dispatches updates to sink. A nil sink discards all
// updates.
//
// All options are supported.
func New[V any](sink Sink, opts ...Option) *Registry[V] {
	cfg := config.FromOptions(opts, config.TagBits|config.Minimal|config.DetectMoves|config.Logger|config.EngineFunc)
	if sink == nil {
		sink = SinkFunc(func([]Update) {})
	}
	l := kind.Layout{TagBits: cfg.TagBits}
	return &Registry[V]{
		cfg:    cfg,
		layout: l,
		log:    cfg.Logger,
		sink:   sink,
		tags:   tags.New(l.Tags()),
		byTag:  make(map[uint32]*entry[V]),
	}
}

// Len returns the number of registered providers.
func (r *Registry[V]) Len() int { return len(r.after) }

// Provider returns the provider registered at index. It panics if index is out of range.
func (r *Registry[V]) Provider(index int) Provider[V] { return r.after[index].provider }

// Snapshot returns the current sequence of registered providers.
func (r *Registry[V]) Snapshot() Snapshot[V] {
	return Snapshot[V]{entries: slices.Clone(r.after)}
}

// Count returns the total number of items of all registered providers.
func (r *Registry[V]) Count() int {
	n := 0
	for _, e := range r.after {
		n += e.provider.Count()
	}
	return n
}

// Append registers p after all other providers.
func (r *Registry[V]) Append(p Provider[V]) error {
	return r.Register(len(r.after), p)
}

// Register registers p at index, which must be in [0, Len()]. The provider's OnAttach hook is
// called before its items are dispatched as insertions.
//
// Register returns an error wrapping [ErrOutOfRange] for an invalid index,
// [ErrDuplicateProvider] if p is already registered, or [ErrTagsExhausted] if no tag is left. The
// registry is unchanged if an error is returned.
func (r *Registry[V]) Register(index int, p Provider[V]) error {
	if p == nil {
		panic("fusion: nil provider")
	}
	if t := reflect.TypeOf(p); !t.Comparable() {
		panic(fmt.Sprintf("fusion: provider type %v is not comparable", t))
	}
	if index < 0 || index > len(r.after) {
		return fmt.Errorf("%w: index %d for %d providers", ErrOutOfRange, index, len(r.after))
	}
	if r.indexOf(p) >= 0 {
		return fmt.Errorf("%w: %T", ErrDuplicateProvider, p)
	}

	defer r.enter()()

	tag, err := r.tags.Alloc()
	if errors.Is(err, tags.ErrExhausted) {
		return fmt.Errorf("%w: %d providers registered", ErrTagsExhausted, r.tags.Len())
	} else if err != nil {
		return err
	}
	e := &entry[V]{tag: tag, provider: p}
	r.byTag[tag] = e

	p.OnAttach(Handle[V]{r: r, e: e})
	r.before = slices.Clone(r.after)
	r.after = slices.Insert(r.after, index, e)
	r.log.Debug("registered provider",
		slog.Int("index", index),
		slog.Uint64("tag", uint64(tag)),
		slog.String("provider", fmt.Sprintf("%T", p)))

	r.update(e)
	return nil
}

// DeregisterAt removes the provider at index. It reports whether index referred to a provider.
func (r *Registry[V]) DeregisterAt(index int) bool {
	if index < 0 || index >= len(r.after) {
		return false
	}
	r.deregister(index)
	return true
}

// Deregister removes p. It reports whether p was registered.
func (r *Registry[V]) Deregister(p Provider[V]) bool {
	i := r.indexOf(p)
	if i < 0 {
		return false
	}
	r.deregister(i)
	return true
}

func (r *Registry[V]) deregister(index int) {
	defer r.enter()()

	e := r.after[index]
	r.before = slices.Clone(r.after)
	r.after = slices.Delete(r.after, index, index+1)
	e.provider.OnDetach(Handle[V]{r: r, e: e})
	r.log.Debug("deregistered provider",
		slog.Int("index", index),
		slog.Uint64("tag", uint64(e.tag)),
		slog.String("provider", fmt.Sprintf("%T", e.provider)))

	r.update(nil)

	delete(r.byTag, e.tag)
	r.tags.Release(e.tag)
}

// NotifyChanged diffs the changes a provider made to its own items and dispatches them. h is the
// handle the provider received in OnAttach.
//
// It returns [ErrForeignHandle] if h wasn't issued by r and [ErrStaleHandle] if the provider
// was deregistered in the meantime. Calling it from a provider hook or from the sink panics.
func (r *Registry[V]) NotifyChanged(h Handle[V]) error {
	if h.r != r {
		return ErrForeignHandle
	}

	defer r.enter()()

	if h.e == nil || r.byTag[h.e.tag] != h.e || !slices.Contains(r.after, h.e) {
		return ErrStaleHandle
	}

	r.log.Debug("provider changed",
		slog.Uint64("tag", uint64(h.e.tag)),
		slog.String("provider", fmt.Sprintf("%T", h.e.provider)))
	r.update(nil)
	return nil
}

// Location describes where a global position ends up.
type Location[V any] struct {
	Provider Provider[V]
	Index    int    // Index of the provider in the registry.
	Tag      uint32 // Tag of the provider.
	Start    int    // Global position of the provider's first item.
	Local    int    // Position within the provider.
}

// Global returns the global position of the location.
func (l Location[V]) Global() int { return l.Start + l.Local }

// Resolve returns the provider that owns the item at the global position pos and the position
// within that provider. It returns an error wrapping [ErrOutOfRange] if pos is not in
// [0, Count()).
func (r *Registry[V]) Resolve(pos int) (Location[V], error) {
	sp := layout(r.after, currentCount[V])
	s, local, ok := sp.find(pos)
	if !ok {
		return Location[V]{}, fmt.Errorf("%w: position %d for %d items", ErrOutOfRange, pos, sp.total)
	}
	return Location[V]{
		Provider: s.e.provider,
		Index:    s.index,
		Tag:      s.e.tag,
		Start:    s.start,
		Local:    local,
	}, nil
}

// Position returns the global position of the item at local in p. This is the inverse of
// [Registry.Resolve].
func (r *Registry[V]) Position(p Provider[V], local int) (int, error) {
	start := 0
	for _, e := range r.after {
		n := e.provider.Count()
		if e.provider != p {
			start += n
			continue
		}
		if local < 0 || local >= n {
			return 0, fmt.Errorf("%w: local position %d for %d items", ErrOutOfRange, local, n)
		}
		return start + local, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrNotRegistered, p)
}

// ItemKind returns the composite kind of the item at pos. It returns an error wrapping
// [ErrOutOfRange] for invalid positions and [ErrInvalidItemKind] if the provider reports a raw
// kind that doesn't fit into the bits that are not reserved for tags.
func (r *Registry[V]) ItemKind(pos int) (Kind, error) {
	loc, err := r.Resolve(pos)
	if err != nil {
		return 0, err
	}
	raw := loc.Provider.ItemKind(loc.Local)
	k, err := r.layout.Pack(loc.Tag, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %T at position %d: %v", ErrInvalidItemKind, loc.Provider, loc.Local, err)
	}
	return Kind(k), nil
}

// SplitKind returns the tag and the raw kind of k.
func (r *Registry[V]) SplitKind(k Kind) (tag uint32, raw int) {
	return r.layout.Unpack(uint32(k))
}

// CreateView creates a view for items of kind k by forwarding to the provider that reported k. It
// returns an error wrapping [ErrUnknownKind] if no registered provider has the tag of k.
func (r *Registry[V]) CreateView(k Kind) (V, error) {
	tag, raw := r.layout.Unpack(uint32(k))
	e, ok := r.byTag[tag]
	if !ok || !slices.Contains(r.after, e) {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return e.provider.CreateView(raw), nil
}

// BindView populates view with the item at pos by forwarding to the provider that owns pos.
func (r *Registry[V]) BindView(view V, pos int) error {
	loc, err := r.Resolve(pos)
	if err != nil {
		return err
	}
	loc.Provider.BindView(view, loc.Local)
	return nil
}

// update diffs before and after, makes after the new before, and dispatches the updates. added
// is the entry that was added by the current mutation, if any.
func (r *Registry[V]) update(added *entry[V]) {
	for _, e := range r.after {
		if e != added && !slices.Contains(r.before, e) {
			panic(fmt.Sprintf("fusion: invariant violation: entry with tag %d appeared without registration", e.tag))
		}
	}

	updates := diff(r.before, r.after, r.cfg)
	r.before = slices.Clone(r.after)
	r.log.Debug("dispatching updates",
		slog.Int("providers", len(r.after)),
		slog.Int("updates", len(updates)))
	if len(updates) > 0 {
		r.sink.Apply(updates)
	}
	for _, e := range r.after {
		if c, ok := e.provider.(Committer); ok {
			c.Commit()
		}
	}
}

func (r *Registry[V]) indexOf(p Provider[V]) int {
	return slices.IndexFunc(r.after, func(e *entry[V]) bool { return e.provider == p })
}

// enter marks the registry as busy and returns a function that clears the mark.
func (r *Registry[V]) enter() func() {
	if r.busy {
		panic("fusion: re-entrant registry mutation")
	}
	r.busy = true
	return func() { r.busy = false }
}
