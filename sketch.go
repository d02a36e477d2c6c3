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

// Package flipsketch implements the adaptive equal-space CDF sketch: a
// streaming probability-density estimator over a univariate numeric stream
// under concept drift, supporting range-count, point-density, and
// total-sum queries in sublinear memory.
package flipsketch

import (
	"math"
	"math/rand"
)

// rawSample is one (value, weight) update in internal Prim coordinates.
type rawSample struct {
	Value  Prim
	Weight Count
}

// kind distinguishes the base Sketch from the Adaptive variant, replacing
// the source's subtype dispatch with an explicit tag per spec.md §9.
type kind int

const (
	kindBase kind = iota
	kindAdaptive
)

// core is the non-generic engine: every operation from spec.md §4
// operates on Prim, never on the caller's element type A. Sketch[A] in
// facade.go is a thin generic façade around core that applies a Measure[A] at the
// boundary, per spec.md §9's "reduce polymorphism over A to a measure
// function."
type core struct {
	kind       kind
	structures []Structure // newest first, 0 < len <= conf.CmapNo
	conf       SketchConf
	decay      *decayCache
	rng        *rand.Rand
	metrics    *Metrics
	queue      []rawSample // newest first; only meaningful when kind == kindAdaptive
}

func newCore(conf SketchConf, adaptive bool) *core {
	k := kindBase
	if adaptive {
		k = kindAdaptive
	}
	c := &core{
		kind:    k,
		conf:    conf,
		decay:   newDecayCache(),
		rng:     rand.New(rand.NewSource(1)),
		metrics: newMetrics(),
	}
	c.structures = []Structure{{Cmap: conf.seedCmap(), Counter: newCmCounter(conf.CounterSize, conf.CounterNo)}}
	return c
}

// clone makes a shallow copy of c: the Structures slice header is copied
// (Structures themselves are immutable values, so sharing them by
// reference is safe), and the queue slice is copied so the new core can
// diverge independently. The new core gets its own Metrics, starting from
// c's current counts. Backs Sketch[A].Clone (SPEC_FULL.md's supplemented
// feature #3).
func (c *core) clone() *core {
	m := newMetrics()
	m.narrowUpdates.Store(c.metrics.NarrowUpdates())
	m.deepUpdates.Store(c.metrics.DeepUpdates())
	m.queueEvictions.Store(c.metrics.QueueEvictions())
	n := &core{
		kind:    c.kind,
		conf:    c.conf,
		decay:   c.decay,
		rng:     c.rng,
		metrics: m,
	}
	n.structures = append([]Structure(nil), c.structures...)
	n.queue = append([]rawSample(nil), c.queue...)
	return n
}

// effNo is the size of the "effective" structure prefix that narrow
// updates write to: cmapNo-1 once there is at least one reference
// generation to keep frozen, else the single structure that exists.
func (c *core) effNo() int {
	if c.conf.CmapNo > 1 {
		return c.conf.CmapNo - 1
	}
	return c.conf.CmapNo
}

// decayRate returns exp(-lambda*i) via the bounded memoization cache.
func (c *core) decayRate(i int) Prim {
	return c.decay.rate(c.conf.DecayFactor, i)
}

// decayDenominator sums decayRate(i) over the first n generations, the
// normalizer shared by sumForStr, primCountForStr, and queueCorrection.
func (c *core) decayDenominator(n int) Prim {
	var total Prim
	for i := 0; i < n; i++ {
		total += c.decayRate(i)
	}
	return total
}

// sumForStr is the decay-weighted total across Structures, per spec.md
// §4.5. It ignores the queue entirely; Adaptive overrides add the queue
// contribution on top (adaptive.go).
func (c *core) sumForStr() Count {
	denom := c.decayDenominator(len(c.structures))
	if denom == 0 {
		return 0
	}
	var total Count
	for i, s := range c.structures {
		total += c.decayRate(i) * s.Counter.Sum()
	}
	return total / denom
}

// primCountForStr is the decay-weighted range-count across Structures.
func (c *core) primCountForStr(pFrom, pTo Prim) Count {
	denom := c.decayDenominator(len(c.structures))
	if denom == 0 {
		return 0
	}
	var total Count
	for i, s := range c.structures {
		total += c.decayRate(i) * s.singleCount(pFrom, pTo)
	}
	return total / denom
}

// densityPlot is the newest Structure's density, or errEmptySketch if
// there are no Structures (unreachable for a well-formed core, but kept so
// updateCmap can recover per spec.md §7 without a panic).
func (c *core) densityPlot() (DensityPlot, error) {
	if len(c.structures) == 0 {
		return DensityPlot{}, errEmptySketch
	}
	return DensityPlotDisjoint(c.structures[0].densityRecords()), nil
}

// narrowUpdateForStr applies a weight-only update to the effective
// (non-reference) prefix of Structures, per spec.md §4.6. Each Structure
// buckets ps through its own Cmap, since generations after a rearrangement
// carry different partitions.
func (c *core) narrowUpdateForStr(ps []rawSample) {
	if len(ps) == 0 {
		return
	}
	limit := c.effNo()
	if limit > len(c.structures) {
		limit = len(c.structures)
	}
	for i := 0; i < limit; i++ {
		s := c.structures[i]
		updates := make([]BinWeight, len(ps))
		for j, p := range ps {
			updates[j] = BinWeight{Bin: s.Cmap.Apply(p.Value), Weight: p.Weight}
		}
		c.structures[i] = Structure{Cmap: s.Cmap, Counter: s.Counter.Updates(updates)}
	}
	c.metrics.narrowUpdates.Add(1)
}

// deepUpdate rearranges the partition from the current density mixed with
// ps, prepends a fresh Structure, and projects ps's mass onto the new
// grid, per spec.md §4.6.
func (c *core) deepUpdate(ps []rawSample) {
	newCmap := c.updateCmap(ps)

	seed := c.deriveSeed(ps)
	emptyCounter := newSeededCounter(c.conf.CounterSize, c.conf.CounterNo, seed)

	c.structures = append([]Structure{{Cmap: newCmap, Counter: emptyCounter}}, c.structures...)
	if len(c.structures) > c.conf.CmapNo {
		c.structures = c.structures[:c.conf.CmapNo]
	}
	c.metrics.deepUpdates.Add(1)

	if len(ps) == 0 {
		return
	}
	samples := make([]Sample, len(ps))
	var batchWeight Count
	for i, p := range ps {
		samples[i] = Sample{Value: p.Value, Weight: p.Weight}
		batchWeight += p.Weight
	}
	d := EqualSpaceSmoothingPs(samples)
	dTotal := d.Cumulative().Total()
	if dTotal <= 0 {
		return
	}

	bins := newCmap.Bins()
	projected := make([]rawSample, 0, len(bins))
	for _, r := range bins {
		if r.IsPoint() {
			continue
		}
		// Each bin receives d's probability over the bin times the batch's
		// total weight. d's own area can fall short of that weight (the
		// smoothing skips zero-length intervals between repeated values),
		// so the raw area is normalized by d's total first.
		mass := d.probabilityMass(r.Start, r.End) / dTotal * batchWeight
		if mass == 0 {
			continue
		}
		projected = append(projected, rawSample{Value: r.Middle(), Weight: mass})
	}
	c.narrowUpdateForStr(projected)
}

// probabilityMass integrates a density over [a, b] via its Cumulative
// plot: cdf(b) - cdf(a). Infinite endpoints saturate to the plot's total.
func (p DensityPlot) probabilityMass(a, b Prim) Prim {
	cum := p.Cumulative()
	if cum.Empty() {
		return 0
	}
	return cum.Interpolation(b) - cum.Interpolation(a)
}

// deriveSeed produces a deterministic int64 seed from the sketch's current
// total mass and the batch's first value. spec.md §9 flags the source's
// `((sum+ps.head)*1000).toInt` as overflow-prone for large sums; this
// hashes the IEEE-754 bit pattern of both doubles instead of scaling and
// truncating, so it never overflows regardless of their magnitude.
func (c *core) deriveSeed(ps []rawSample) int64 {
	var head Prim
	if len(ps) > 0 {
		head = ps[0].Value
	}
	var total Count
	for _, s := range c.structures {
		total += s.Counter.Sum()
	}
	mixed := fnvHash64(math.Float64bits(total)) ^ fnvHash64(math.Float64bits(head))
	return int64(mixed)
}
