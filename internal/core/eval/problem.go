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

// Package eval is the scheduler: the recompute/dependOn primitives, the
// main worklist loop, and the widening gate, plus the lattice
// contract, problem description, and execution environment they operate
// over. The public façade in the dataflow package is a
// thin wrapper over this package's Problem and SolveProblem.
package eval

import "cuelabs.dev/go/dataflow/internal/core/adt"

// Lattice is the algebraic contract the core consumes for a value type V
//: an optimistic starting approximation and a commutative,
// associative, idempotent, monotone join.
type Lattice[V any] interface {
	Bottom() V
	Join(a, b V) V
}

// ChangeDetector decides whether new differs enough from old to require
// propagating the change to referrers. The solver does not require it to
// be equality; a permissive default is provided by NotEqual for any
// comparable V.
type ChangeDetector[V any] func(old, new V) bool

// NotEqual is the default change detector described in : propagate
// whenever old != new.
func NotEqual[V comparable]() ChangeDetector[V] {
	return func(old, new V) bool { return old != new }
}

// TransferFunc computes the value at (node, args) using env to read the
// values of other points via env.DependOn. It must be monotone with
// respect to every value it reads; the solver does not verify this.
type TransferFunc[V any] func(env *Env[V], node adt.NodeId, args adt.ArgTuple) V

// nodeSpec is what the problem remembers about one allocated node.
type nodeSpec[V any] struct {
	transfer  TransferFunc[V]
	detector  ChangeDetector[V]
}

// Problem is a DataFlowProblem: an immutable-once-solving-starts
// mapping from NodeId to (TransferFunc, ChangeDetector), built up through
// AllocateNode or Register.
type Problem[V any] struct {
	lattice Lattice[V]
	nodes   map[adt.NodeId]nodeSpec[V]
	nextID  adt.NodeId
}

// NewProblem returns an empty problem over the given lattice.
func NewProblem[V any](lattice Lattice[V]) *Problem[V] {
	return &Problem[V]{lattice: lattice, nodes: make(map[adt.NodeId]nodeSpec[V])}
}

// AllocateNode is the problem-builder primitive from /: it reserves
// a fresh NodeId, then calls f with that id so recursive bindings can tie
// the knot (f's returned TransferFunc may itself reference its own node
// through env.DependOn), and finally registers the result under the new
// id. detector must not be nil: recompute calls it whenever the point
// already had a value, and no default is substituted. There is no
// universal default across arbitrary V, only for comparable V (NotEqual).
func (p *Problem[V]) AllocateNode(detector ChangeDetector[V], f func(self adt.NodeId) TransferFunc[V]) adt.NodeId {
	id := p.nextID
	p.nextID++
	p.nodes[id] = nodeSpec[V]{transfer: f(id), detector: detector}
	return id
}

// Register installs a transfer function and change detector under an
// explicit, already-known NodeId. Used by clients that allocate their own
// node numbering scheme rather than going through AllocateNode.
func (p *Problem[V]) Register(id adt.NodeId, detector ChangeDetector[V], transfer TransferFunc[V]) {
	p.nodes[id] = nodeSpec[V]{transfer: transfer, detector: detector}
}

func (p *Problem[V]) transferFor(n adt.NodeId) (TransferFunc[V], bool) {
	spec, ok := p.nodes[n]
	if !ok {
		return nil, false
	}
	return spec.transfer, true
}

func (p *Problem[V]) detectorFor(n adt.NodeId) ChangeDetector[V] {
	return p.nodes[n].detector
}
