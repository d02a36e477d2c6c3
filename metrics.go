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

import "sync/atomic"

// Metrics is a snapshot of operational counters for the lifetime of a
// Sketch, in the spirit of the teacher's own Metrics type (metrics.go):
// a handful of independently-incremented atomic counters with accessor
// methods, rather than one struct guarded by a single lock.
type Metrics struct {
	narrowUpdates  atomic.Uint64
	deepUpdates    atomic.Uint64
	queueEvictions atomic.Uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// NarrowUpdates is the number of weight-only updates applied to the
// effective Structure prefix (spec.md §4.6).
func (m *Metrics) NarrowUpdates() uint64 {
	return m.narrowUpdates.Load()
}

// DeepUpdates is the number of CDF-inversion rearrangements performed
// (spec.md §4.6/§4.8). Only an explicit Rearrange call performs one; queue
// overflow on the adaptive layer goes to a narrow update and is not counted
// here.
func (m *Metrics) DeepUpdates() uint64 {
	return m.deepUpdates.Load()
}

// QueueEvictions is the number of raw samples pushed out of the adaptive
// layer's bounded queue and forwarded into a narrow update (spec.md §4.7).
// Always 0 for a non-adaptive Sketch.
func (m *Metrics) QueueEvictions() uint64 {
	return m.queueEvictions.Load()
}
