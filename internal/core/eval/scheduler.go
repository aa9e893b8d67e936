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
	"github.com/google/uuid"

	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/graph"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

// recompute re-evaluates point p, writes the result into the graph, and
// enqueues referrers if the change detector says the value moved. It is
// the only place a point's transfer function is invoked, and it performs
// at most one transfer-function call per invocation (none when the
// iteration bound substitutes the widened value).
func (e *Env[V]) recompute(p adt.Point) V {
	e.enterCall(p)
	defer e.exitCall(p)

	prior, _ := e.graph.Lookup(p)

	var newValue V
	if e.bound.shouldWiden(prior.Iterations, prior.HasValue) {
		newValue = e.bound.widen(p.Args, prior.Value)
		e.log.Debug(e.ctx, "widen", "point", p.String(), "iterations", prior.Iterations)
	} else {
		transfer, ok := e.problem.transferFor(p.Node)
		if !ok {
			adt.Panicf(adt.MissingTransfer, p.Node, "no transfer function registered for node %d", p.Node)
		}
		e.log.Debug(e.ctx, "recompute start", "point", p.String())
		newValue = transfer(e, p.Node, p.Args)
	}

	refs := e.currentRefs()
	old := e.graph.UpdatePoint(p, newValue, refs)
	e.unstable.Delete(p)

	changed := !old.HasValue || e.problem.detectorFor(p.Node)(old.Value, newValue)
	if changed {
		for _, r := range old.Referrers {
			e.unstable.Insert(r)
		}
		if selfReferenced(refs, p) {
			// The just-overwritten old.Referrers may not yet list p if
			// this is the first time p referenced itself.
			e.unstable.Insert(p)
		}
	}

	e.log.Debug(e.ctx, "recompute end", "point", p.String(), "changed", changed)
	return newValue
}

func selfReferenced(refs []adt.Point, p adt.Point) bool {
	for _, q := range refs {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// DependOn is the dependOn primitive, called from inside a TransferFunc
// currently executing under the innermost with_call frame to consult the
// value of another point.
func (e *Env[V]) DependOn(node adt.NodeId, args adt.ArgTuple) V {
	q := adt.Point{Node: node, Args: args}

	// Step 1: record the reference unconditionally, regardless of which
	// case below applies.
	e.recordRef(q)

	cyclic := e.onCallStack(q)
	info, hasInfo := e.graph.Lookup(q)
	stable := !e.unstable.Has(q)

	switch {
	case !hasInfo || !info.HasValue:
		if cyclic {
			// We are inside the evaluation of q transitively: break the
			// cycle with the optimistic approximation rather than
			// recursing forever.
			return e.optimisticApproximation(q)
		}
		// Undiscovered and not on the call stack: descend eagerly.
		return e.drain(q)
	case stable || cyclic:
		// Fully settled, or mid-cycle and must not recurse: use the value
		// as it stands.
		return info.Value
	default:
		// Unstable with an existing value and not on the call stack:
		// descend again and drive q to a local fixed point, so that this
		// read observes q's stabilised value.
		return e.drain(q)
	}
}

// drain recomputes q until it no longer re-enqueues itself, and returns
// its final value. A point only re-enqueues itself from inside this call
// when its own transfer function depends on q directly (a genuine
// self-loop): recompute is single-shot, so a caller descending eagerly
// into such a point must keep driving it to a local fixed point itself,
// or a second dependOn on the same point later in the same transfer call
// would observe a stale intermediate value instead of the stabilised one.
func (e *Env[V]) drain(q adt.Point) V {
	for {
		v := e.recompute(q)
		if !e.unstable.Has(q) {
			return v
		}
	}
}

// optimisticApproximation returns the join of every already-discovered,
// valued point of q.Node whose ArgTuple is strictly less than q.Args. The
// join of an empty set is Bottom.
func (e *Env[V]) optimisticApproximation(q adt.Point) V {
	acc := e.problem.lattice.Bottom()
	for _, info := range e.graph.LookupLT(q.Node, q.Args) {
		acc = e.problem.lattice.Join(acc, info.Value)
	}
	e.log.Debug(e.ctx, "cycle break", "point", q.String())
	return acc
}

// work is the main loop: while the worklist is non-empty, pop the
// highest-priority point and recompute it.
func (e *Env[V]) work() {
	for {
		p, ok := e.unstable.PopMax()
		if !ok {
			return
		}
		e.recompute(p)
	}
}

// SolveProblem creates a fresh environment seeded with root as the sole
// unstable point, runs the worklist to completion, and returns the value
// at root. It is a solver invariant that root has a value on exit;
// absence panics as a RootUnresolved error, recovered at the public
// façade boundary.
func SolveProblem[V any](problem *Problem[V], density Density, bound IterationBound[V], root adt.Point, log xlog.Logger) V {
	_, _, v := SolveProblemDebug(problem, density, bound, root, log)
	return v
}

// SolveProblemDebug is SolveProblem plus the final graph and the solve's
// correlation id, for callers that want to inspect every point's
// PointInfo after the solve — the CLI's --verbose dump, in particular.
func SolveProblemDebug[V any](problem *Problem[V], density Density, bound IterationBound[V], root adt.Point, log xlog.Logger) (*graph.Store[V], uuid.UUID, V) {
	env := newEnv(problem, density, bound, log)
	env.unstable.Insert(root)
	env.work()
	env.balance.AssertBalanced()

	info, ok := env.graph.Lookup(root)
	if !ok || !info.HasValue {
		adt.Panicf(adt.RootUnresolved, root.Node, "solveProblem terminated without a value at the root point")
	}
	return env.graph, env.runID, info.Value
}
