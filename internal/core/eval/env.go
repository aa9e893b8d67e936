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
	"context"

	"github.com/google/uuid"

	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/graph"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

// Env is the ExecutionEnv of : the ambient state carried through a
// single solveProblem call. It is created fresh per solve, seeded with
// the root point as the sole unstable element, and torn down on return;
// no state outlives a solve. Transfer functions never touch it except
// through DependOn.
type Env[V any] struct {
	problem *Problem[V]
	bound   IterationBound[V]
	graph   *graph.Store[V]

	callStack []adt.Point     // points currently executing, in push order
	onStack   map[string]bool // membership mirror of callStack, by Point.Key

	refFrames [][]adt.Point // stack of current_refs frames, one per with_call

	unstable *adt.PointSet

	balance adt.CallBalance

	log   xlog.Logger
	runID uuid.UUID
	ctx   context.Context
}

func newEnv[V any](problem *Problem[V], density Density, bound IterationBound[V], log xlog.Logger) *Env[V] {
	runID := uuid.New()
	return &Env[V]{
		problem:  problem,
		bound:    bound,
		graph:    newStore[V](density),
		onStack:  make(map[string]bool),
		unstable: adt.NewPointSet(),
		log:      log.With("run", runID.String()),
		runID:    runID,
		ctx:      context.Background(),
	}
}

// Graph exposes the underlying store read-only, for the CLI's --verbose
// dump and for tests that check the fixed-point and symmetry properties
// directly against the final graph.
func (e *Env[V]) Graph() *graph.Store[V] { return e.graph }

// RunID is this solve's correlation id, the "run" attribute attached to
// every log line it emits.
func (e *Env[V]) RunID() uuid.UUID { return e.runID }

func (e *Env[V]) onCallStack(p adt.Point) bool {
	return e.onStack[p.Key()]
}

// enterCall pushes p onto the call stack and opens a fresh current_refs
// frame, saving the outer one.
func (e *Env[V]) enterCall(p adt.Point) {
	e.balance.Enter()
	e.callStack = append(e.callStack, p)
	e.onStack[p.Key()] = true
	e.refFrames = append(e.refFrames, nil)
}

// exitCall pops the call stack and discards the innermost current_refs
// frame (the caller has already read it via currentRefs before calling
// this).
func (e *Env[V]) exitCall(p adt.Point) {
	e.callStack = e.callStack[:len(e.callStack)-1]
	delete(e.onStack, p.Key())
	e.refFrames = e.refFrames[:len(e.refFrames)-1]
	e.balance.Exit(p.Node)
}

// currentRefs returns the references accumulated so far in the innermost
// with_call frame.
func (e *Env[V]) currentRefs() []adt.Point {
	if len(e.refFrames) == 0 {
		return nil
	}
	return e.refFrames[len(e.refFrames)-1]
}

// recordRef adds q to the innermost current_refs frame, unconditionally —
// the reference-tracking contract of dependOn step 1.
func (e *Env[V]) recordRef(q adt.Point) {
	top := len(e.refFrames) - 1
	e.refFrames[top] = append(e.refFrames[top], q)
}
