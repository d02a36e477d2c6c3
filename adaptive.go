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

// Update applies a batch of raw samples. For the base kind this is a
// direct narrow update (spec.md §4.6). For the adaptive kind it is
// append(as) from spec.md §4.7: the batch is prepended to the bounded
// FIFO queue (newest-first), and whatever spills past QueueSize is
// forwarded to narrowUpdateForStr exactly as the teacher's ring.Buffer
// (ring/buffer.go) drains overflow to its Consumer instead of growing
// unbounded.
func (c *core) Update(ps []rawSample) {
	if c.kind != kindAdaptive {
		c.narrowUpdateForStr(ps)
		return
	}
	merged := make([]rawSample, 0, len(ps)+len(c.queue))
	merged = append(merged, ps...)
	merged = append(merged, c.queue...)
	if len(merged) <= c.conf.QueueSize {
		c.queue = merged
		return
	}
	evicted := merged[c.conf.QueueSize:]
	c.queue = merged[:c.conf.QueueSize]
	c.narrowUpdateForStr(evicted)
	c.metrics.queueEvictions.Add(uint64(len(evicted)))
}

// Rearrange runs the CDF-inversion updater and rotates the Structure list.
// For the adaptive kind, the current queue is the batch and is cleared
// afterward (spec.md §4.7's rearrange); for the base kind, the batch is
// empty — the partition is simply re-fit to the current density estimate.
func (c *core) Rearrange() {
	var batch []rawSample
	if c.kind == kindAdaptive {
		batch = c.queue
	}
	c.deepUpdate(batch)
	if c.kind == kindAdaptive {
		c.queue = nil
	}
}

// sumForQueue totals the queue's raw weights.
func (c *core) sumForQueue() Count {
	var total Count
	for _, p := range c.queue {
		total += p.Weight
	}
	return total
}

// countForQueue linearly scans the queue summing weights whose value falls
// in [from, to], per spec.md §4.7.
func (c *core) countForQueue(from, to Prim) Count {
	var total Count
	for _, p := range c.queue {
		if p.Value >= from && p.Value <= to {
			total += p.Weight
		}
	}
	return total
}

// queueCorrection normalizes the queue's contribution to the same
// decay scale as the effective (non-reference) Structures, per spec.md
// §4.7. Until the Structure list is fully saturated (|structures| <
// cmapNo), it is 1 — spec.md §9 flags this as the hardcoded
// growing-regime boundary carried over from the source as-is.
func (c *core) queueCorrection() Prim {
	if len(c.structures) < c.conf.CmapNo {
		return 1
	}
	denomAll := c.decayDenominator(c.conf.CmapNo)
	if denomAll == 0 {
		return 1
	}
	return c.decayDenominator(c.effNo()) / denomAll
}

// flatDensity is the fallback density returned by pdfForQueue when the
// queue carries no weight to estimate from: a uniform density over the
// sketch's seed range. spec.md §4.7 names "the sketch's flatDensity"
// without defining it further; a uniform prior over [CmapStart, CmapEnd]
// is the natural reading given the seed Cmap is itself equally spaced over
// that interval.
func (c *core) flatDensity() Count {
	span := c.conf.CmapEnd - c.conf.CmapStart
	if span <= 0 {
		return 0
	}
	return 1 / span
}

// pdfForQueue estimates the density at a from the queue alone, using the
// newest Cmap's local three-bin neighborhood, per spec.md §4.7.
func (c *core) pdfForQueue(a Prim) Count {
	sumQ := c.sumForQueue()
	if sumQ == 0 {
		return c.flatDensity()
	}
	newest := c.structures[0]
	adim := newest.Cmap.Apply(a)

	countIn := func(bin int) Count {
		if bin < 0 || bin >= newest.Cmap.Size() {
			return 0
		}
		r := newest.Cmap.Range(bin)
		var total Count
		for _, p := range c.queue {
			if r.Contains(p.Value) {
				total += p.Weight
			}
		}
		return total
	}

	var records []plotRecord
	for _, bin := range []int{adim - 1, adim, adim + 1} {
		if bin < 0 || bin >= newest.Cmap.Size() {
			continue
		}
		records = append(records, plotRecord{R: newest.Cmap.Range(bin), V: countIn(bin)})
	}
	localCount := CountPlotDisjoint(records).Interpolation(a)

	rng := newest.Cmap.Range(adim)
	if rng.IsPoint() {
		if localCount > 0 {
			return math.Inf(1)
		}
		return 0
	}
	if localCount == 0 {
		return 0
	}
	return localCount / (sumQ * rng.Length())
}

// Sum is the total effective weight: the decay-weighted Structure sum,
// plus the queue's decay-normalized contribution for the adaptive kind.
func (c *core) Sum() Count {
	total := c.sumForStr()
	if c.kind == kindAdaptive {
		total += c.queueCorrection() * c.sumForQueue()
	}
	return total
}

// Count answers the range-count query over [from, to].
func (c *core) Count(from, to Prim) Count {
	total := c.primCountForStr(from, to)
	if c.kind == kindAdaptive {
		total += c.queueCorrection() * c.countForQueue(from, to)
	}
	return total
}

// Probability is Count/Sum, 0 when the sketch carries no weight yet.
func (c *core) Probability(from, to Prim) Count {
	sum := c.Sum()
	if sum == 0 {
		return 0
	}
	return c.Count(from, to) / sum
}

// Pdf answers the point-density query. For the base kind it is the newest
// Structure's density. For the adaptive kind it blends the Structure-based
// density with pdfForQueue, weighted by each side's share of total
// effective mass — spec.md §4.7 only states the count/sum queue-correction
// formula explicitly; this applies the same decay-normalized weighting to
// density so pdf, count, and sum stay mutually consistent (documented as
// an Open Question resolution in DESIGN.md).
func (c *core) Pdf(a Prim) Count {
	plot, err := c.densityPlot()
	var baseDensity Count
	if err == nil {
		baseDensity = plot.Interpolation(a)
	}
	if c.kind != kindAdaptive {
		return baseDensity
	}

	baseMass := c.sumForStr()
	queueMass := c.queueCorrection() * c.sumForQueue()
	total := baseMass + queueMass
	if total == 0 {
		return 0
	}
	queueDensity := c.pdfForQueue(a)
	return (baseMass*baseDensity + queueMass*queueDensity) / total
}
