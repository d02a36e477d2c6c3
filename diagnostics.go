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
	"fmt"

	"github.com/dustin/go-humanize"
)

// String is a one-line human-readable summary of the sketch's current
// state, for logs and debugging — SPEC_FULL.md's supplemented feature #1.
// Never parsed by the sketch itself; format is not a compatibility surface.
func (s *Sketch[A]) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kindName := "base"
	queueLen := 0
	if s.core.kind == kindAdaptive {
		kindName = "adaptive"
		queueLen = len(s.core.queue)
	}

	return fmt.Sprintf(
		"Sketch{kind=%s, structures=%d/%d, sum=%s, queue=%d, narrowUpdates=%s, deepUpdates=%s}",
		kindName,
		len(s.core.structures), s.core.conf.CmapNo,
		humanize.Commaf(float64(s.core.Sum())),
		queueLen,
		humanize.Comma(int64(s.Metrics.NarrowUpdates())),
		humanize.Comma(int64(s.Metrics.DeepUpdates())),
	)
}
