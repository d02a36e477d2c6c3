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
	"encoding/binary"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	farm "github.com/dgryski/go-farm"
)

// BinWeight is one (bin index, weight) pair submitted to an HCounter update.
type BinWeight struct {
	Bin    int
	Weight Count
}

// HCounter is an immutable mapping from bin index to accumulated weight,
// with a capacity independent of the number of bins it is asked to track —
// when the map is smaller than the Cmap it backs, distinct bins collide and
// Get/Count become (over-)estimates. Every update returns a new HCounter;
// implementations never mutate in place.
type HCounter interface {
	// Get returns the accumulated weight attributed to bin i.
	Get(i int) Count
	// Updates returns a new HCounter with each (bin, weight) folded in.
	Updates(updates []BinWeight) HCounter
	// Count returns the inclusive sum over bins [lo, hi].
	Count(lo, hi int) Count
	// Sum returns the total weight ever folded in.
	Sum() Count
}

// cmCounter is a count-min-sketch-flavored HCounter: cmDepth independent
// rows of cmWidth float64 counters, each row keyed by a different hash
// algorithm so that two bins colliding in one row are unlikely to collide
// in another. Estimate is the minimum across rows, following the teacher's
// cmSketch/CM design in sketch.go and bloom.go, generalized from 4-bit
// integer counters (good for LFU frequency, useless for summed weights) to
// float64 accumulators and from single increments to batched weighted
// updates.
type cmCounter struct {
	rows  [][]Count
	width uint64
	salt  uint64
	sum   Count
}

// newCmCounter builds an empty, unsalted counter with `depth` independent
// rows of `width` counters apiece (width rounded up to the next power of
// two, as the teacher does in next2Power, for cheap masking instead of
// modulo).
func newCmCounter(width, depth int) *cmCounter {
	return newSeededCounter(width, depth, 0)
}

// newSeededCounter is newCmCounter plus a salt XORed into every row's hash
// input before hashing. deepUpdate (sketch.go) derives a fresh salt for
// every rearrangement's counter via deriveSeed, so that two generations
// created from different batches don't share identical collision patterns.
func newSeededCounter(width, depth int, seed int64) *cmCounter {
	if width <= 0 {
		width = 1
	}
	if depth <= 0 {
		depth = 1
	}
	if depth > len(rowHashers) {
		depth = len(rowHashers)
	}
	w := next2Power(uint64(width))
	rows := make([][]Count, depth)
	for i := range rows {
		rows[i] = make([]Count, w)
	}
	return &cmCounter{rows: rows, width: w, salt: uint64(seed)}
}

// rowHashers is the fixed family of per-row hash algorithms: fnv64a (the
// teacher's baseline in sketch.go), xxhash (the teacher's benchmark
// alternative in cache_bench_test.go), and go-farm's Fingerprint64 (the
// teacher's other benchmarked alternative in z/rtutil_test.go). Three rows
// is the practical ceiling for a count-min sketch of this size; depth
// beyond len(rowHashers) is clamped in newCmCounter.
var rowHashers = []func(uint64) uint64{
	fnvHash64,
	xxhash64,
	farmHash64,
}

func fnvHash64(bin uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], bin)
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func farmHash64(bin uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], bin)
	return farm.Fingerprint64(buf[:])
}

func xxhash64(bin uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], bin)
	return xxhash.Sum64(buf[:])
}

func next2Power(x uint64) uint64 {
	if x == 0 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	return x
}

func (c *cmCounter) slot(row int, bin int) uint64 {
	return rowHashers[row](uint64(bin)^c.salt) & (c.width - 1)
}

func (c *cmCounter) Get(i int) Count {
	min := Count(-1)
	for r := range c.rows {
		v := c.rows[r][c.slot(r, i)]
		if min < 0 || v < min {
			min = v
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

func (c *cmCounter) Updates(updates []BinWeight) HCounter {
	next := &cmCounter{
		rows:  make([][]Count, len(c.rows)),
		width: c.width,
		salt:  c.salt,
		sum:   c.sum,
	}
	for r := range c.rows {
		row := make([]Count, len(c.rows[r]))
		copy(row, c.rows[r])
		next.rows[r] = row
	}
	for _, u := range updates {
		if u.Weight == 0 {
			continue
		}
		for r := range next.rows {
			next.rows[r][next.slot(r, u.Bin)] += u.Weight
		}
		next.sum += u.Weight
	}
	return next
}

func (c *cmCounter) Count(lo, hi int) Count {
	var total Count
	for i := lo; i <= hi; i++ {
		total += c.Get(i)
	}
	return total
}

func (c *cmCounter) Sum() Count {
	return c.sum
}
