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

// ErrInvalidConfig is wrapped with the offending field when SketchConf
// validation fails at construction.
var ErrInvalidConfig = errors.New("flipsketch: invalid config")

// errEmptySketch signals that densityPlot was requested on a sketch with no
// Structures. It never escapes the package: updateCmap recovers from it by
// returning the seed Cmap, since there is no prior Cmap to reuse, per
// spec.md §7.
var errEmptySketch = errors.New("flipsketch: sketch has no structures")
