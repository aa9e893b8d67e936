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

import (
	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

// The scenario-driven tests for this package live in the external
// eval_test package so they can import internal/scenarios without
// creating an import cycle (scenarios imports eval). These exported
// forwarders give that external test package access to the unexported
// internals those tests exercise directly.

// NewTestEnv exposes newEnv for use by tests outside this package.
func NewTestEnv[V any](problem *Problem[V], density Density, bound IterationBound[V], log xlog.Logger) *Env[V] {
	return newEnv(problem, density, bound, log)
}

// InsertUnstable seeds the worklist with p, for tests outside this package.
func (e *Env[V]) InsertUnstable(p adt.Point) { e.unstable.Insert(p) }

// RunWork runs the worklist to completion, for tests outside this package.
func (e *Env[V]) RunWork() { e.work() }

// TransferFor exposes Problem.transferFor for tests outside this package.
func (p *Problem[V]) TransferFor(n adt.NodeId) (TransferFunc[V], bool) { return p.transferFor(n) }

// DetectorFor exposes Problem.detectorFor for tests outside this package.
func (p *Problem[V]) DetectorFor(n adt.NodeId) ChangeDetector[V] { return p.detectorFor(n) }

// EvalTransfer runs transfer at p inside a with_call frame, the way
// recompute does, without writing the result into the graph.
func (e *Env[V]) EvalTransfer(p adt.Point, transfer TransferFunc[V]) V {
	e.enterCall(p)
	defer e.exitCall(p)
	return transfer(e, p.Node, p.Args)
}

// LatticeBottom exposes the problem's lattice Bottom value for tests
// outside this package.
func (p *Problem[V]) LatticeBottom() V { return p.lattice.Bottom() }
