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

package myers

// Diff compares an old sequence of length n with a new sequence of length m and returns the
// result vectors describing how to turn one into the other. The sequences are only accessible
// through eq, which reports whether the s-th old element and the t-th new element are the same.
//
// rx has length n+1 and ry has length m+1. rx[s] is true if the s-th old element is removed and
// ry[t] is true if the t-th new element is inserted. The last element of both vectors is a
// sentinel that is always false, it simplifies iteration over both vectors at the same time.
//
// If minimal is false, heuristics limit the cost for large inputs with many differences at the
// price of a potentially non-minimal result.
func Diff(n, m int, eq func(s, t int) bool, minimal bool) (rx, ry []bool) {
	if n < 0 || m < 0 {
		panic("negative sequence length")
	}

	// For the result we add a simple border of one element that makes it easier to iterate over
	// the results.
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]

	var d myers
	d.rx, d.ry = rx, ry
	smin, smax, tmin, tmax := d.init(n, m, eq)

	// Handle trivial cases without doing anything extra.
	switch {
	case smin == smax && tmin == tmax:
		return rx, ry
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return rx, ry
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return rx, ry
	}

	d.compare(smin, smax, tmin, tmax, minimal)
	return rx, ry
}
