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

import "errors"

var (
	// ErrDuplicateProvider is returned when a provider is registered twice.
	ErrDuplicateProvider = errors.New("fusion: provider already registered")

	// ErrOutOfRange is returned for positions or indices outside of the registry's bounds.
	ErrOutOfRange = errors.New("fusion: out of range")

	// ErrInvalidItemKind is returned when a provider reports a raw item kind that doesn't fit into
	// the bits not reserved for tags.
	ErrInvalidItemKind = errors.New("fusion: invalid item kind")

	// ErrUnknownKind is returned for composite kinds whose tag belongs to no registered provider.
	ErrUnknownKind = errors.New("fusion: unknown kind")

	// ErrTagsExhausted is returned when every tag is used by a registered provider.
	ErrTagsExhausted = errors.New("fusion: no free tag")

	// ErrNotRegistered is returned when an operation refers to a provider that isn't registered.
	ErrNotRegistered = errors.New("fusion: provider not registered")

	// ErrForeignHandle is returned when a handle is used with a registry that didn't issue it.
	ErrForeignHandle = errors.New("fusion: handle belongs to another registry")

	// ErrStaleHandle is returned when a handle is used after its provider was deregistered.
	ErrStaleHandle = errors.New("fusion: stale handle")
)
