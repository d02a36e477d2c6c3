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

import (
	"math"
	"sort"
)

// Cmap is a partition of the real line into indexed bins, induced by a
// nondecreasing sequence of finite dividers. A divider list of length k-1
// induces k bins, indexed 0..k-1: (-Inf, d1), [d1, d2), ..., [d_{k-1}, +Inf).
//
// Cmap is immutable: every operation that changes the partition returns a
// new Cmap value, mirroring the way a Structure never mutates its Cmap in
// place.
type Cmap struct {
	dividers []Prim
}

// Divider builds a Cmap from a set of finite dividers, sorting and
// deduplicating by position. Mirrors the sort-then-dedupe idiom the teacher
// uses when building its sampled-LFU segments from raw counts.
func Divider(ds []Prim) Cmap {
	out := make([]Prim, len(ds))
	copy(out, ds)
	sort.Float64s(out)
	out = dedupeSorted(out)
	return Cmap{dividers: out}
}

func dedupeSorted(xs []Prim) []Prim {
	if len(xs) == 0 {
		return xs
	}
	n := 1
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[n-1] {
			xs[n] = xs[i]
			n++
		}
	}
	return xs[:n]
}

// Size is the number of bins this Cmap induces: len(dividers)+1.
func (c Cmap) Size() int {
	return len(c.dividers) + 1
}

// Apply returns the bin index containing x: the largest i such that
// dividers[i-1] <= x, with ties at a divider going to the right bin (the
// bin is half-open [d, ...)).
func (c Cmap) Apply(x Prim) int {
	// sort.Search finds the first index where dividers[i] > x; everything
	// at or before x (inclusive of ties) belongs to a lower-or-equal bin.
	return sort.Search(len(c.dividers), func(i int) bool {
		return c.dividers[i] > x
	})
}

// Range returns the bin's Range, using -Inf/+Inf sentinels for the two
// outer bins.
func (c Cmap) Range(i int) Range {
	start := math.Inf(-1)
	if i > 0 {
		start = c.dividers[i-1]
	}
	end := math.Inf(1)
	if i < len(c.dividers) {
		end = c.dividers[i]
	}
	return RangeP(start, end)
}

// Bins returns the ordered list of all bin ranges.
func (c Cmap) Bins() []Range {
	out := make([]Range, c.Size())
	for i := range out {
		out[i] = c.Range(i)
	}
	return out
}

// Equal reports whether two Cmaps have identical divider sequences.
func (c Cmap) Equal(o Cmap) bool {
	if len(c.dividers) != len(o.dividers) {
		return false
	}
	for i := range c.dividers {
		if c.dividers[i] != o.dividers[i] {
			return false
		}
	}
	return true
}

// Dividers returns a defensive copy of the divider sequence.
func (c Cmap) Dividers() []Prim {
	out := make([]Prim, len(c.dividers))
	copy(out, c.dividers)
	return out
}
