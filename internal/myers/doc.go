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

// Package myers contains an implementation of Myers' algorithm over index predicates.
//
// The sequences that are compared are never materialized. Instead, the caller provides the
// lengths of both sequences and a predicate eq(s, t) that reports whether the s-th element of the
// old sequence and the t-th element of the new sequence are the same. This is what a registry of
// sub-lists needs: the elements only exist behind their providers' equality callbacks.
//
// The implementation uses the linear space variant described in section 4.2 of the paper. Without
// heuristics, the runtime is O(ND) where N is the sum of the lengths of both inputs and D is the
// number of differences.
//
// # Myers Algorithm
//
// All possible edit scripts from the old sequence x to the new sequence y form a grid. Moving
// right from (s, t) to (s+1, t) removes x[s], moving down from (s, t) to (s, t+1) inserts y[t],
// and if x[s] and y[t] are the same, a diagonal edge from (s, t) to (s+1, t+1) keeps the element.
// A minimal edit script is a path from (0, 0) to (N, M) with the fewest non-diagonal edges.
//
// We use s and t for the horizontal and vertical coordinates and k = s - t for diagonals. A
// d-path is a path with exactly d non-diagonal edges; it ends on one of the diagonals
// -d, -d+2, ..., d. The greedy algorithm computes, for increasing d, the furthest reaching d-path
// on every diagonal from the furthest reaching (d-1)-paths on the neighbouring diagonals.
//
// The linear space variant searches forwards from (0, 0) and backwards from (N, M) at the same
// time. As soon as a forward and a backward path overlap on a diagonal, the sequence of diagonals
// in the middle of the overlap splits the problem into two smaller ones that are solved
// recursively.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// # Heuristics
//
// GOOD_DIAGONAL: Past a cost limit, eagerly use a long diagonal near the middle of the search as
// the split point instead of searching for an optimal one.
//
// TOO_EXPENSIVE: A heuristic by Paul Eggert. If the search for an optimal d-path exceeds a cost
// limit (in terms of d), the search is aborted and the furthest reaching d-path that optimizes
// s + t determines the split. This reduces the complexity to O(N^1.5 log N) for long inputs with
// many differences at the cost of non-minimal results.
//
// Both heuristics are disabled when a minimal result is requested.
package myers
