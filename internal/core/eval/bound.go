// Copyright 2025 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import "cuelabs.dev/go/dataflow/internal/core/adt"

// WidenFunc forces a conservative over-approximation once a point's
// iteration budget is exhausted. It must return a value >= any value the
// transfer function would produce, and re-applying it must be a no-op
// under the point's ChangeDetector.
type WidenFunc[V any] func(args adt.ArgTuple, current V) V

// IterationBound selects between the two modes. The zero value is
// NeverAbort.
type IterationBound[V any] struct {
	abort bool
	n     uint32
	widen WidenFunc[V]
}

// NeverAbort relies on the ascending-chain condition of V for termination.
func NeverAbort[V any]() IterationBound[V] {
	return IterationBound[V]{}
}

// AbortAfter replaces a point's transfer-function output with
// widen(args, current) once the point has already been updated n times.
func AbortAfter[V any](n uint32, widen WidenFunc[V]) IterationBound[V] {
	return IterationBound[V]{abort: true, n: n, widen: widen}
}

// AbortWithTop is the convenience widening from for lattices with a
// top element: it replaces the value with top unconditionally, which is
// trivially a no-op under any change detector once applied twice.
func AbortWithTop[V any](n uint32, top V) IterationBound[V] {
	return AbortAfter[V](n, func(adt.ArgTuple, V) V { return top })
}

// shouldWiden reports whether point p, currently at iterations with a
// value, should be widened instead of recomputed via its transfer
// function.
func (b IterationBound[V]) shouldWiden(iterations uint32, hasValue bool) bool {
	return b.abort && hasValue && iterations >= b.n
}
