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

// updateCmap implements the CDF-inversion update of spec.md §4.8: it
// rebuilds the partition so that every bin carries approximately equal
// cumulative mass under a density mixing the current sketch with the
// incoming batch. Any recoverable failure (no Structures yet, a collapsed
// plot, a non-finite total) falls back to the current newest Cmap (the seed
// Cmap when there are no Structures yet) rather than propagating an error,
// per spec.md §7.
func (c *core) updateCmap(ps []rawSample) Cmap {
	sketchPlot, err := c.densityPlot()
	if err != nil {
		return c.conf.seedCmap()
	}
	fallback := c.structures[0].Cmap

	mu := c.conf.MixingRatio
	var mixed DensityPlot
	if len(ps) == 0 {
		mixed = sketchPlot
	} else {
		samples := make([]Sample, len(ps))
		for i, p := range ps {
			samples[i] = Sample{Value: p.Value, Weight: p.Weight}
		}
		kernel := SquareKernel(samples, c.conf.Window)
		mixed = sketchPlot.Scale(1 / (mu + 1)).Add(kernel.Scale(mu / (mu + 1)))
	}

	cdf := mixed.Cumulative()
	if cdf.Empty() {
		// DegenerateInput: collapsed or empty plot. Retain the prior Cmap.
		return fallback
	}
	total := cdf.Total()
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		// NumericOverflow / DegenerateInput: abort the rearrangement.
		return fallback
	}

	invCdf := cdf.Inverse()
	unit := total / Prim(c.conf.CmapSize)

	dividers := make([]Prim, 0, c.conf.CmapSize-1)
	for i := 1; i < c.conf.CmapSize; i++ {
		d := invCdf.Interpolation(Prim(i) * unit)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fallback
		}
		dividers = append(dividers, d)
	}
	return Divider(dividers)
}
