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

package dataflow

import "cuelabs.dev/go/dataflow/internal/core/eval"

// Lattice is the algebraic contract a value type V must satisfy: an
// optimistic starting approximation and a commutative, associative,
// idempotent, monotone join.
type Lattice[V any] = eval.Lattice[V]

// ChangeDetector decides whether a new value differs enough from the old
// one to require propagating the change to referrers.
type ChangeDetector[V any] = eval.ChangeDetector[V]

// NotEqual is the default change detector for any comparable V: propagate
// whenever old != new.
func NotEqual[V comparable]() ChangeDetector[V] { return eval.NotEqual[V]() }

// Env is the dependency-tracking context passed to a TransferFunc. Its
// only public operation is DependOn.
type Env[V any] = eval.Env[V]

// TransferFunc computes the value at (node, args) using env to read the
// values of other points via env.DependOn. It must be monotone with
// respect to every value it reads.
type TransferFunc[V any] = eval.TransferFunc[V]

// Problem is a mapping from Node to (TransferFunc, ChangeDetector), built
// up through AllocateNode or Register. It is immutable once Solve starts
// running it.
type Problem[V any] struct {
	inner *eval.Problem[V]
}

// NewProblem returns an empty problem over the given lattice.
func NewProblem[V any](lattice Lattice[V]) *Problem[V] {
	return &Problem[V]{inner: eval.NewProblem[V](lattice)}
}

// AllocateNode reserves a fresh Node, then calls f with that id so
// recursive bindings can tie the knot: f's returned TransferFunc may
// itself reference its own node through env.DependOn.
func (p *Problem[V]) AllocateNode(detector ChangeDetector[V], f func(self Node) TransferFunc[V]) Node {
	return p.inner.AllocateNode(detector, f)
}

// Register installs a transfer function and change detector under an
// explicit, already-known Node, for clients that allocate their own node
// numbering scheme rather than going through AllocateNode.
func (p *Problem[V]) Register(id Node, detector ChangeDetector[V], transfer TransferFunc[V]) {
	p.inner.Register(id, detector, transfer)
}
