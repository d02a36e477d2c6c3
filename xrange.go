/*
 * Copyright 2019 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flipsketch

import "math"

// Prim is the canonical numeric coordinate the sketch measures internally.
type Prim = float64

// Count is a non-negative accumulated weight.
type Count = float64

// Range is a half-open real interval [Start, End). Endpoints may be
// infinite; dividers stored in a Cmap are always finite, so Start and End
// never both land on the same infinity and Start-End never produces NaN.
type Range struct {
	Start Prim
	End   Prim
}

// RangeP builds a Range from the two endpoints.
func RangeP(start, end Prim) Range {
	return Range{Start: start, End: end}
}

// Length returns End-Start. Infinite ranges return +Inf.
func (r Range) Length() Prim {
	return r.End - r.Start
}

// IsPoint reports whether the range has zero width.
func (r Range) IsPoint() bool {
	return r.Start == r.End
}

// Middle returns the arithmetic midpoint. For a range with one infinite
// endpoint (an outer sentinel bin) it returns that infinity, which a Cmap
// still maps to the same outer bin; for (-Inf, +Inf) it is NaN.
func (r Range) Middle() Prim {
	return (r.Start + r.End) / 2
}

// Contains reports whether x falls in the half-open interval.
func (r Range) Contains(x Prim) bool {
	return x >= r.Start && x < r.End
}

// intersect returns the overlap of r and o, or the zero Range with ok=false
// if they are disjoint.
func (r Range) intersect(o Range) (Range, bool) {
	start := math.Max(r.Start, o.Start)
	end := math.Min(r.End, o.End)
	if start >= end {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// OverlapPercent returns the fraction of r covered by the intersection of r
// and o: |r ∩ o| / |r|. Zero when r is a point or the ranges are disjoint.
//
// r may have an infinite endpoint (the two outer Cmap sentinel bins). Full
// containment of r inside o always returns 1 regardless of infinities, so
// that a query spanning the whole line still attributes 100% of an outer
// bin's weight. A genuinely partial overlap against an infinite-length r
// returns 0: a finite sub-interval carries no measure against a uniform
// density spread over unbounded support.
func (r Range) OverlapPercent(o Range) Prim {
	if r.IsPoint() {
		return 0
	}
	inter, ok := r.intersect(o)
	if !ok {
		return 0
	}
	if inter.Start == r.Start && inter.End == r.End {
		return 1
	}
	if math.IsInf(r.Length(), 0) {
		return 0
	}
	return inter.Length() / r.Length()
}
