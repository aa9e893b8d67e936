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

// Package dataflow is the public façade over the solver core in
// internal/core/eval: a client builds a Problem by allocating nodes with
// AllocateNode or Register, then calls Solve to run the worklist to a
// fixed point and read the value at a chosen root point. Everything below
// this package is free to panic on an invariant violation; Solve is the
// one place that gets turned back into a normal error.
package dataflow

import (
	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/eval"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

// Node is a client-allocated node identity.
type Node = adt.NodeId

// ArgTuple identifies a point within a node's function-valued domain. Use
// Unit for a zero-argument node, Args for an integer-argument one.
type ArgTuple = adt.ArgTuple

// Point is the (Node, ArgTuple) pair that names one value in the problem.
type Point = adt.Point

// Unit is the argument tuple for a zero-argument node.
func Unit() ArgTuple { return adt.Unit() }

// Args builds an ArgTuple from a sequence of integer arguments.
func Args(vs ...int) ArgTuple { return adt.Args(vs...) }

// At names the point (node, args).
func At(node Node, args ArgTuple) Point { return Point{Node: node, Args: args} }

// Density selects the graph-store backend: Sparse for an unbounded node
// range, Dense for a problem that can declare an upper bound up front.
type Density = eval.Density

// Sparse selects the hash-map-backed graph store.
func Sparse() Density { return eval.SparseDensity() }

// Dense selects the array-backed graph store, sized for node ids in
// [0, maxNode].
func Dense(maxNode Node) Density { return eval.DenseDensity(maxNode) }

// IterationBound caps how many times a point may be recomputed before its
// value is replaced with a conservative widening.
type IterationBound[V any] = eval.IterationBound[V]

// WidenFunc forces a conservative over-approximation once a point's
// iteration budget is exhausted.
type WidenFunc[V any] = eval.WidenFunc[V]

// NeverAbort relies on the ascending-chain condition of V for termination.
func NeverAbort[V any]() IterationBound[V] { return eval.NeverAbort[V]() }

// AbortAfter replaces a point's transfer-function output with
// widen(args, current) once the point has already been updated n times.
func AbortAfter[V any](n uint32, widen WidenFunc[V]) IterationBound[V] {
	return eval.AbortAfter[V](n, widen)
}

// AbortWithTop replaces a point's value with top unconditionally once its
// iteration budget is exhausted.
func AbortWithTop[V any](n uint32, top V) IterationBound[V] {
	return eval.AbortWithTop[V](n, top)
}

// Logger is the solver's structured-logging seam; see xlog.New.
type Logger = xlog.Logger

// NewLogger wraps an *slog.Logger for use with Solve. A nil argument (or
// never calling this at all) produces a silent Logger.
var NewLogger = xlog.New
