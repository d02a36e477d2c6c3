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

	"gonum.org/v1/gonum/floats"
)

// plotRecord is one (Range, value) entry of a piecewise-constant plot.
type plotRecord struct {
	R Range
	V Prim
}

// stepPlot is the shared piecewise-constant lookup behind DensityPlot and
// CountPlot: a record's value holds for every point its Range contains, 0
// elsewhere. Records are kept sorted by Range.Start on construction.
type stepPlot struct {
	records []plotRecord
}

func newStepPlot(records []plotRecord) stepPlot {
	out := make([]plotRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].R.Start < out[j].R.Start })
	return stepPlot{records: out}
}

// interpolation returns the value of the record containing x, 0 if none.
func (p stepPlot) interpolation(x Prim) Prim {
	// records are sorted by Start; find the last record whose Start <= x.
	i := sort.Search(len(p.records), func(i int) bool { return p.records[i].R.Start > x }) - 1
	if i < 0 || i >= len(p.records) {
		return 0
	}
	if !p.records[i].R.Contains(x) {
		return 0
	}
	return p.records[i].V
}

func (p stepPlot) breakpoints() []Prim {
	var out []Prim
	for _, r := range p.records {
		if !math.IsInf(r.R.Start, 0) {
			out = append(out, r.R.Start)
		}
		if !math.IsInf(r.R.End, 0) {
			out = append(out, r.R.End)
		}
	}
	return out
}

// DensityPlot is a piecewise-constant probability density over disjoint
// Ranges: area under the curve is probability mass.
type DensityPlot struct {
	stepPlot
}

// DensityPlotDisjoint builds a DensityPlot from non-overlapping records.
func DensityPlotDisjoint(records []plotRecord) DensityPlot {
	return DensityPlot{newStepPlot(records)}
}

// NewDensityPlot is the public constructor mirroring DensityPlotDisjoint,
// taking parallel Range/value slices for callers outside this package.
func NewDensityPlot(ranges []Range, values []Prim) DensityPlot {
	records := make([]plotRecord, len(ranges))
	for i := range ranges {
		records[i] = plotRecord{R: ranges[i], V: values[i]}
	}
	return DensityPlotDisjoint(records)
}

// Interpolation returns the density at x.
func (p DensityPlot) Interpolation(x Prim) Prim {
	return p.interpolation(x)
}

// Scale returns a new DensityPlot with every value multiplied by s.
func (p DensityPlot) Scale(s Prim) DensityPlot {
	out := make([]plotRecord, len(p.records))
	for i, r := range p.records {
		out[i] = plotRecord{R: r.R, V: r.V * s}
	}
	return DensityPlotDisjoint(out)
}

// Add returns the pointwise sum of p and o over the union of both plots'
// breakpoints: each resulting record's value is p.Interpolation(x) +
// o.Interpolation(x) for x in that subinterval.
func (p DensityPlot) Add(o DensityPlot) DensityPlot {
	bs := mergeUniqueSorted(p.breakpoints(), o.breakpoints())
	if len(bs) < 2 {
		return DensityPlotDisjoint(nil)
	}
	out := make([]plotRecord, 0, len(bs)-1)
	for i := 0; i < len(bs)-1; i++ {
		start, end := bs[i], bs[i+1]
		v := p.interpolation(start) + o.interpolation(start)
		if v == 0 {
			continue
		}
		out = append(out, plotRecord{R: RangeP(start, end), V: v})
	}
	return DensityPlotDisjoint(out)
}

// Cumulative integrates the density left-to-right into a CumulativePlot.
// Gaps between records (uncovered stretches, implied density 0) contribute
// no area but still appear as flat segments of the resulting piecewise-linear
// plot.
func (p DensityPlot) Cumulative() CumulativePlot {
	if len(p.records) == 0 {
		return CumulativePlot{}
	}
	bs := p.breakpoints()
	bs = dedupeSortedFloats(uniqueSorted(bs))
	if len(bs) < 2 {
		return CumulativePlot{}
	}
	pts := make([]linearPoint, len(bs))
	pts[0] = linearPoint{X: bs[0], Y: 0}
	areas := make([]Prim, len(bs)-1)
	for i := 0; i < len(bs)-1; i++ {
		width := bs[i+1] - bs[i]
		areas[i] = p.interpolation(bs[i]) * width
	}
	cum := floats.CumSum(make([]Prim, len(areas)), areas)
	for i, c := range cum {
		pts[i+1] = linearPoint{X: bs[i+1], Y: c}
	}
	return CumulativePlot{points: pts}
}

// CountPlot is a piecewise-constant count (not density) over disjoint
// Ranges: the value itself is the count attributed to that range, with no
// implied division by the range's length.
type CountPlot struct {
	stepPlot
}

// CountPlotDisjoint builds a CountPlot from non-overlapping records.
func CountPlotDisjoint(records []plotRecord) CountPlot {
	return CountPlot{newStepPlot(records)}
}

// Interpolation returns the raw count of the record containing x.
func (p CountPlot) Interpolation(x Prim) Prim {
	return p.interpolation(x)
}

// linearPoint is one breakpoint of a piecewise-linear plot.
type linearPoint struct {
	X Prim
	Y Prim
}

// CumulativePlot is a monotone nondecreasing piecewise-linear function,
// produced by DensityPlot.Cumulative or by CumulativePlot.Inverse.
type CumulativePlot struct {
	points []linearPoint
}

// Interpolation linearly interpolates between bracketing breakpoints,
// saturating to the first point's Y below the domain and the last point's Y
// above it.
func (c CumulativePlot) Interpolation(x Prim) Prim {
	n := len(c.points)
	if n == 0 {
		return 0
	}
	if x <= c.points[0].X {
		return c.points[0].Y
	}
	if x >= c.points[n-1].X {
		return c.points[n-1].Y
	}
	i := sort.Search(n, func(i int) bool { return c.points[i].X >= x })
	lo, hi := c.points[i-1], c.points[i]
	if hi.X == lo.X {
		return lo.Y
	}
	frac := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + frac*(hi.Y-lo.Y)
}

// Total returns the cumulative value at the right end of the domain (the
// total probability mass integrated).
func (c CumulativePlot) Total() Prim {
	if len(c.points) == 0 {
		return 0
	}
	return c.points[len(c.points)-1].Y
}

// Empty reports whether this plot carries no breakpoints.
func (c CumulativePlot) Empty() bool {
	return len(c.points) == 0
}

// Inverse swaps X and Y and re-sorts by the new X (the old cumulative
// value), producing the quantile function of the original plot. Ties in
// the original Y (flat, zero-density stretches) are collapsed to their
// smallest X, a documented left-edge convention for otherwise-ambiguous
// inversion.
func (c CumulativePlot) Inverse() CumulativePlot {
	if len(c.points) == 0 {
		return CumulativePlot{}
	}
	swapped := make([]linearPoint, len(c.points))
	for i, p := range c.points {
		swapped[i] = linearPoint{X: p.Y, Y: p.X}
	}
	// Break ties on X (repeated cumulative values, from zero-density
	// stretches) by the original X (now Y) so the smallest original X
	// always wins the tie, regardless of sort.Slice's unspecified order
	// for equal keys.
	sort.Slice(swapped, func(i, j int) bool {
		if swapped[i].X != swapped[j].X {
			return swapped[i].X < swapped[j].X
		}
		return swapped[i].Y < swapped[j].Y
	})
	out := swapped[:0:0]
	for i, p := range swapped {
		if i > 0 && p.X == swapped[i-1].X {
			continue
		}
		out = append(out, p)
	}
	return CumulativePlot{points: out}
}

func mergeUniqueSorted(a, b []Prim) []Prim {
	all := make([]Prim, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return uniqueSorted(all)
}

func uniqueSorted(xs []Prim) []Prim {
	sort.Float64s(xs)
	return dedupeSortedFloats(xs)
}

func dedupeSortedFloats(xs []Prim) []Prim {
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
