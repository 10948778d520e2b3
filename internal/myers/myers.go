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

import "math"

type myers struct {
	// Equality of the s-th old and the t-th new element.
	eq func(s, t int) bool

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k] where v0 is the offset that
	// translates k in [-d, d] to k0 = v0+k in [0, 2*d]. The endpoints only store the s-coordinate
	// since t = s - k.
	vf, vb []int
	v0     int

	// The costLimit parameter controls the TOO_EXPENSIVE heuristic that limit the runtime of
	// the algorithm for large inputs.
	costLimit int

	// Result vectors.
	rx, ry []bool
}

// init strips the common prefix and suffix and prepares the v-arrays for the remaining range.
func (m *myers) init(n, mm int, eq func(s, t int) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = n, mm

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(smin, tmin) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(smax-1, tmax-1) {
		smax--
		tmax--
	}

	m.eq = eq

	diagonals := (smax - smin) + (tmax - tmin)
	vlen := 2*diagonals + 3    // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen) // allocate space for vf and vb with a single allocation
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1 // +1 for the middle point

	// Set the costLimit to the approximate square root of the number of diagonals bounded by
	// minCostLimit.
	costLimit := 1
	for i := diagonals; i != 0; i >>= 2 {
		costLimit <<= 1
	}
	m.costLimit = max(minCostLimit, costLimit)
	return
}

// compare finds an optimal d-path from (smin, tmin) to (smax, tmax).
//
// Important: the ranges [smin, smax) and [tmin, tmax) must not have a common prefix or a common
// suffix.
func (m *myers) compare(smin, smax, tmin, tmax int, minimal bool) {
	switch {
	case smin == smax:
		// Nothing left in the old range, everything in tmin to tmax is an insertion.
		for t := tmin; t < tmax; t++ {
			m.ry[t] = true
		}
	case tmin == tmax:
		// Nothing left in the new range, everything in smin to smax is a removal.
		for s := smin; s < smax; s++ {
			m.rx[s] = true
		}
	default:
		// Use split to divide the input into three pieces:
		//
		//   (1) A, possibly empty, rect (smin, tmin) to (s0, t0)
		//   (2) A, possibly empty, sequence of diagonals (matches) (s0, t0) to (s1, t1)
		//   (3) A, possibly empty, rect (s1, t1) to (smax, tmax)
		//
		// (1) and (3) will not have a common suffix or a common prefix, so we can use them directly
		// as inputs to compare.
		s0, s1, t0, t1, min0, min1 := m.split(smin, smax, tmin, tmax, minimal)

		m.compare(smin, s0, tmin, t0, min0)
		m.compare(s1, smax, t1, tmax, min1)
	}
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of an
// optimal path from (smin, tmin) to (smax, tmax).
//
// Important: the ranges [smin, smax) and [tmin, tmax) must not have a common prefix or a common
// suffix and they may not both be empty.
func (m *myers) split(smin, smax, tmin, tmax int, minimal bool) (s0, s1, t0, t1 int, min0, min1 bool) {
	N, M := smax-smin, tmax-tmin
	eq := m.eq
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k. Since t = s - k, we can determine the min and max for k using: k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// All diagonals are numbered consistently by centering the forwards and backwards searches
	// around different midpoints. That way, k's don't need to be converted when checking for an
	// overlap.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// The length of an optimal diff is odd or even as (N-M) is odd or even. That tells us in
	// which half of an iteration overlaps need to be checked.
	odd := (N-M)%2 != 0

	// There is no common prefix or suffix, so there is no 0-path. Seed the v-arrays with the
	// trivial d=0 result and start at d=1.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	// There's always a d-path with d = ⌈(N + M)/2⌉, the loop terminates.
	for d := 1; ; d++ {
		longestDiag := 0 // Longest diagonal we found

		// Forwards iteration.
		//
		// The search space for k is clamped to the edit grid. Since k moves in steps of 2, the
		// bounds move inwards by one when they hit the border. The extra sentinel element on either
		// side lets the k-loop treat the top and left border like any other value.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0

			// A furthest reaching d-path on k is either a (d-1)-path on k+1 followed by a vertical
			// edge or a (d-1)-path on k-1 followed by a horizontal edge, each followed by as many
			// diagonals as possible. Ties prefer removals over insertions.
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				s = vf[k0-1] + 1
			}
			t := s - k

			// Follow the diagonals as long as possible.
			sd, td := s, t
			for s < smax && t < tmax && eq(s, t) {
				s++
				t++
			}
			longestDiag = max(longestDiag, s-sd)

			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return sd, s, td, t, minimal, minimal
			}
		}

		// Backwards iteration, mirroring the forwards iteration.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			sd, td := s, t
			for s > smin && t > tmin && eq(s-1, t-1) {
				s--
				t--
			}
			longestDiag = max(longestDiag, sd-s)

			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, sd, t, td, minimal, minimal
			}
		}

		if minimal {
			continue
		}

		// Heuristic (GOOD_DIAGONAL): Past the cost limit for this heuristic, accept a long
		// diagonal that is not too far from a corner and not too far from the middle diagonal as
		// the split point.
		if longestDiag >= goodDiagMinLen && d >= goodDiagCostLimit {
			if s0, s1, t0, t1, min0, min1, ok := m.goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax); ok {
				return s0, s1, t0, t1, min0, min1
			}
		}

		// Heuristic (TOO_EXPENSIVE): Past the cost limit, pick the furthest reaching path found so
		// far instead of an optimal split point.
		if d >= m.costLimit {
			return m.tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax)
		}
	}
}

// fdiag returns the start of the diagonal that ends in the forward endpoint on k.
func (m *myers) fdiag(k int) (s, t int) {
	k0 := k + m.v0
	s = m.vf[k0]
	t = s - k

	// Redo the decision of the forward iteration to find the previous endpoint. The path between
	// both consists of one horizontal or vertical edge plus a possibly empty sequence of
	// diagonals.
	var pk int
	if m.vf[k0-1] < m.vf[k0+1] {
		pk = k + 1
	} else {
		pk = k - 1
	}
	ps := m.vf[pk+m.v0]
	pt := ps - pk
	diag := min(s-ps, t-pt)
	return s - diag, t - diag
}

// bdiag returns the end of the diagonal that starts in the backward endpoint on k.
func (m *myers) bdiag(k int) (s, t int) {
	k0 := k + m.v0
	s = m.vb[k0]
	t = s - k

	var pk int
	if m.vb[k0-1] < m.vb[k0+1] {
		pk = k - 1
	} else {
		pk = k + 1
	}
	ps := m.vb[pk+m.v0]
	pt := ps - pk
	diag := min(ps-s, pt-t)
	return s + diag, t + diag
}

func (m *myers) goodDiagonal(d, smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, min0, min1, ok bool) {
	fmid, bmid := smin-tmin, smax-tmax
	best := 0
	for k := fmin; k <= fmax; k += 2 {
		s := m.vf[k+m.v0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (s - smin) + (t - tmin) - max(fmid-d, d-fmid)
		if v <= goodDiagMagic*d || v < best {
			continue // not good enough, check next diagonal
		}
		ds, dt := m.fdiag(k)
		if s-ds >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1 = ds, s, dt, t
			min0, min1 = true, false
			ok = true
		}
	}
	for k := bmin; k <= bmax; k += 2 {
		s := m.vb[k+m.v0]
		t := s - k
		if s < smin || smax <= s || t < tmin || tmax <= t {
			continue
		}
		v := (smax - s) + (tmax - t) - max(bmid-d, d-bmid)
		if v <= goodDiagMagic*d || v < best {
			continue
		}
		ds, dt := m.bdiag(k)
		if ds-s >= goodDiagMinLen {
			best = v
			s0, s1, t0, t1 = s, ds, t, dt
			min0, min1 = false, true
			ok = true
		}
	}
	return
}

func (m *myers) tooExpensive(smin, smax, tmin, tmax, fmin, fmax, bmin, bmax int) (s0, s1, t0, t1 int, min0, min1 bool) {
	// Find endpoint of the furthest reaching forward d-path that maximizes s+t.
	fbest, fbestk := math.MinInt, 0
	for k := fmin; k <= fmax; k += 2 {
		s := m.vf[k+m.v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
			fbest = s + t
			fbestk = k
		}
	}

	// Find endpoint of the furthest reaching backward d-path that minimizes s+t.
	bbest, bbestk := math.MaxInt, 0
	for k := bmin; k <= bmax; k += 2 {
		s := m.vb[k+m.v0]
		t := s - k
		if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
			bbest = s + t
			bbestk = k
		}
	}

	// Use the better of the two d-paths.
	switch {
	case fbest != math.MinInt && (smax+tmax)-bbest < fbest-(smin+tmin):
		s := m.vf[fbestk+m.v0]
		ds, dt := m.fdiag(fbestk)
		return ds, s, dt, s - fbestk, true, false
	case bbest != math.MaxInt:
		s := m.vb[bbestk+m.v0]
		ds, dt := m.bdiag(bbestk)
		return s, ds, s - bbestk, dt, false, true
	default:
		panic("no best path found")
	}
}
