/*
 * Copyright 2020 Dgraph Labs, Inc. and Contributors
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
	"sync"
)

// decayCacheCap bounds the memoization cache at ~100 entries, per spec.md
// §5. Chosen as a field of the Sketch rather than a process-wide global, so
// its lifetime tracks the sketch that owns it — spec.md §9's option (a).
const decayCacheCap = 100

type decayKey struct {
	lambda Prim
	i      int
}

// decayCache memoizes decayRate(lambda, i) = exp(-lambda*i). Eviction is
// forgetful: once full, the oldest inserted entry is dropped, mirroring the
// teacher's ring.Buffer overwrite-oldest discipline (ring/buffer.go) and
// its expirationMap bucket map (ttl.go), both of which bound a live working
// set by discarding the earliest insertion rather than tracking usage.
type decayCache struct {
	mu     sync.Mutex
	values map[decayKey]Prim
	order  []decayKey
}

func newDecayCache() *decayCache {
	return &decayCache{values: make(map[decayKey]Prim, decayCacheCap)}
}

// rate returns exp(-lambda*i), serving from the cache when present. The
// memoized value is always exactly math.Exp's result for that key — the
// cache never drifts from the closed form, it only avoids recomputing it.
func (c *decayCache) rate(lambda Prim, i int) Prim {
	key := decayKey{lambda: lambda, i: i}

	c.mu.Lock()
	if v, ok := c.values[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := math.Exp(-lambda * Prim(i))

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; !ok {
		if len(c.order) >= decayCacheCap {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.values, oldest)
		}
		c.values[key] = v
		c.order = append(c.order, key)
	}
	return v
}
