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

// Measure carries the strictly monotone conversion between an element type
// A and the internal Prim coordinate the engine operates on. The source
// system resolved this via typeclasses; here it is an explicit value
// carried by the Sketch, per spec.md §9 ("implicit typeclass resolution...
// replace with explicit parameters").
//
// Only To is used internally; From lets callers recover an approximate
// element back out of a Prim result (e.g. a quantile).
type Measure[A any] struct {
	To   func(A) Prim
	From func(Prim) A
}

// IdentityMeasure is the Measure for a stream whose elements already are
// Prim (float64).
func IdentityMeasure() Measure[Prim] {
	return Measure[Prim]{
		To:   func(p Prim) Prim { return p },
		From: func(p Prim) Prim { return p },
	}
}
