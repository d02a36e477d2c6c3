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

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is one raw (value, weight) observation fed to a smoothing kernel.
type Sample struct {
	Value  Prim
	Weight Count
}

// SquareKernel smooths point samples into a density by spreading each
// sample's weight uniformly over a window centered on its value: height
// w_i/window over [x_i-window/2, x_i+window/2). The resulting plot is the
// sum of all per-sample rectangles, so overlapping windows add up.
func SquareKernel(points []Sample, window Prim) DensityPlot {
	if window <= 0 || len(points) == 0 {
		return DensityPlotDisjoint(nil)
	}
	plot := DensityPlotDisjoint(nil)
	half := window / 2
	for _, p := range points {
		if p.Weight == 0 {
			continue
		}
		r := RangeP(p.Value-half, p.Value+half)
		rect := NewDensityPlot([]Range{r}, []Prim{p.Weight / window})
		plot = plot.Add(rect)
	}
	return plot
}

// EqualSpaceSmoothingPs sorts the samples by value and, for every
// consecutive pair, emits a density of (w_i+w_{i+1})/(2*length) over
// [p_i, p_{i+1}) — the trapezoid-ish piecewise-constant interpolation of a
// sparse sample list. When at least two points are present, a zero-weight
// head point (p_1-(p_2-p_1)) and tail point (p_n+(p_n-p_{n-1})) are
// synthesized first so the extreme samples get finite support on both
// sides rather than only within the convex hull of the observations.
// Degenerate input (fewer than two distinct values) yields an empty plot.
func EqualSpaceSmoothingPs(points []Sample) DensityPlot {
	pts := make([]Sample, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Value < pts[j].Value })

	if len(pts) >= 2 {
		first, second := pts[0], pts[1]
		last, prevLast := pts[len(pts)-1], pts[len(pts)-2]
		head := Sample{Value: first.Value - (second.Value - first.Value), Weight: 0}
		tail := Sample{Value: last.Value + (last.Value - prevLast.Value), Weight: 0}
		extended := make([]Sample, 0, len(pts)+2)
		extended = append(extended, head)
		extended = append(extended, pts...)
		extended = append(extended, tail)
		pts = extended
	}

	var records []plotRecord
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		length := b.Value - a.Value
		if length <= 0 || math.IsInf(length, 0) {
			continue
		}
		density := (a.Weight + b.Weight) / (2 * length)
		records = append(records, plotRecord{R: RangeP(a.Value, b.Value), V: density})
	}
	return DensityPlotDisjoint(records)
}

// normalSupportSigmas is how many standard deviations each Gaussian
// contribution is discretized over — wide enough to capture >99.99% of its
// mass without an unbounded support.
const normalSupportSigmas = 4

// normalSupportBins is the number of equal-width bins each discretized
// Gaussian is split into.
const normalSupportBins = 64

// NormalSmoothingPs discretizes each sample's Gaussian contribution (mass
// w_i, standard deviation sigma) over a fixed support of
// +/-normalSupportSigmas*sigma around its value, using
// gonum.org/v1/gonum/stat/distuv.Normal for the density shape. Spec.md
// treats NormalSmoothingPs abstractly and explicitly allows discretization
// over a fixed support. sigma is used as given for every sample; there is
// no default, and sigma <= 0 yields an empty plot.
func NormalSmoothingPs(points []Sample, sigma Prim) DensityPlot {
	if len(points) == 0 || sigma <= 0 {
		return DensityPlotDisjoint(nil)
	}
	plot := DensityPlotDisjoint(nil)
	span := normalSupportSigmas * sigma
	binWidth := (2 * span) / normalSupportBins
	for _, p := range points {
		if p.Weight == 0 {
			continue
		}
		dist := distuv.Normal{Mu: p.Value, Sigma: sigma}
		records := make([]plotRecord, 0, normalSupportBins)
		for i := 0; i < normalSupportBins; i++ {
			start := p.Value - span + Prim(i)*binWidth
			end := start + binWidth
			mid := (start + end) / 2
			records = append(records, plotRecord{R: RangeP(start, end), V: p.Weight * dist.Prob(mid)})
		}
		plot = plot.Add(DensityPlotDisjoint(records))
	}
	return plot
}
