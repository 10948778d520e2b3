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

// Package fusion merges the items of several independently owned lists into one list and keeps a
// consumer of the merged list up to date.
//
// Each list is a [Provider] registered with a [Registry]. The registry lays the providers' items
// out one after another, resolves global positions to the owning provider and a local position,
// and packs the provider's tag into the high bits of every item [Kind] so that views can be
// created by the provider that reported the kind.
//
// Whenever a provider is registered or deregistered, or announces a change of its own items with
// [Registry.NotifyChanged], the registry compares the state before and after the mutation and
// sends a minimal list of [Update] values to its [Sink]. Items are compared with the providers'
// SameItem and SameContent predicates, but only among items of the same provider registration.
//
// Performance: Diffing uses the Myers algorithm over the merged item positions. The default
// complexity is bounded by heuristics for large inputs. With [Minimal], the time complexity is
// O(ND) where N is the sum of the old and the new item count and D is the number of differences.
// The space complexity is O(N) in both cases.
package fusion
