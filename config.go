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

import "github.com/pkg/errors"

// SketchConf holds every tunable of the sketch engine. Validated once by
// NewSketchConf; every other constructor takes a *SketchConf by value and
// trusts it.
type SketchConf struct {
	// CmapSize is the number of bins per Structure. Must be >= 2.
	CmapSize int
	// CmapNo is the number of Structures retained (newest-first). When >=
	// 2, the oldest is treated as a frozen reference generation.
	CmapNo int
	// CmapStart/CmapEnd seed the initial Cmap with equally spaced dividers.
	CmapStart Prim
	CmapEnd   Prim
	// CounterSize/CounterNo size the underlying HCounter (hash width and
	// row depth, i.e. collision resistance vs memory).
	CounterSize int
	CounterNo   int
	// QueueSize bounds the Adaptive layer's FIFO; 0 disables it.
	QueueSize int
	// DecayFactor is lambda in exp(-lambda*i); 0 disables decay (uniform
	// generation weighting).
	DecayFactor Prim
	// MixingRatio is mu in the CDF-inversion update (updater.go).
	MixingRatio Prim
	// Window is the square-kernel width used when mixing a batch into the
	// rearrangement density.
	Window Prim
}

// NewSketchConf validates conf and returns it, or an error wrapping
// ErrInvalidConfig describing the first offending field, mirroring the
// teacher's NewCache switch-case validation in cache.go.
func NewSketchConf(conf SketchConf) (*SketchConf, error) {
	switch {
	case conf.CmapSize < 2:
		return nil, errors.Wrap(ErrInvalidConfig, "CmapSize must be >= 2")
	case conf.CmapNo < 1:
		return nil, errors.Wrap(ErrInvalidConfig, "CmapNo must be >= 1")
	case conf.CmapStart >= conf.CmapEnd:
		return nil, errors.Wrap(ErrInvalidConfig, "CmapStart must be < CmapEnd")
	case conf.CounterSize < 1:
		return nil, errors.Wrap(ErrInvalidConfig, "CounterSize must be >= 1")
	case conf.CounterNo < 1:
		return nil, errors.Wrap(ErrInvalidConfig, "CounterNo must be >= 1")
	case conf.QueueSize < 0:
		return nil, errors.Wrap(ErrInvalidConfig, "QueueSize must be >= 0")
	case conf.DecayFactor < 0:
		return nil, errors.Wrap(ErrInvalidConfig, "DecayFactor must be >= 0")
	case conf.MixingRatio < 0:
		return nil, errors.Wrap(ErrInvalidConfig, "MixingRatio must be >= 0")
	case conf.Window <= 0:
		return nil, errors.Wrap(ErrInvalidConfig, "Window must be > 0")
	}
	c := conf
	return &c, nil
}

// seedCmap builds the initial equally-spaced Cmap for a fresh sketch.
func (c *SketchConf) seedCmap() Cmap {
	if c.CmapSize <= 1 {
		return Divider(nil)
	}
	step := (c.CmapEnd - c.CmapStart) / Prim(c.CmapSize)
	dividers := make([]Prim, c.CmapSize-1)
	for i := range dividers {
		dividers[i] = c.CmapStart + step*Prim(i+1)
	}
	return Divider(dividers)
}
