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

// Structure is one generation of the sketch: a Cmap partition paired with
// the HCounter accumulating weight over that partition's bins. A Structure
// never has its Cmap mutated in place; narrow updates replace the
// HCounter, deep updates replace the whole Structure.
type Structure struct {
	Cmap    Cmap
	Counter HCounter
}

// singleCount computes the range-count query [pFrom, pTo] inside this one
// Structure, per spec.md §4.5.
func (s Structure) singleCount(pFrom, pTo Prim) Count {
	sb := s.Cmap.Apply(pFrom)
	eb := s.Cmap.Apply(pTo)

	if sb == eb {
		return s.Counter.Get(sb) * s.Cmap.Range(sb).OverlapPercent(RangeP(pFrom, pTo))
	}

	var interior Count
	if eb-sb > 1 {
		interior = s.Counter.Count(sb+1, eb-1)
	}

	startRange := s.Cmap.Range(sb)
	boundary := s.Counter.Get(sb) * startRange.OverlapPercent(RangeP(pFrom, startRange.End))

	endRange := s.Cmap.Range(eb)
	boundary += s.Counter.Get(eb) * endRange.OverlapPercent(RangeP(endRange.Start, pTo))

	return interior + boundary
}

// densityRecords returns this Structure's (bin range, density) pairs,
// skipping the two outer infinite-range sentinel bins, which carry no
// finite density.
func (s Structure) densityRecords() []plotRecord {
	bins := s.Cmap.Bins()
	out := make([]plotRecord, 0, len(bins))
	for i, r := range bins {
		if r.IsPoint() {
			continue
		}
		length := r.Length()
		if length <= 0 || math.IsInf(length, 0) {
			continue
		}
		out = append(out, plotRecord{R: r, V: s.Counter.Get(i) / length})
	}
	return out
}
