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

package eval_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/eval"
	"cuelabs.dev/go/dataflow/internal/scenarios"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

func TestScenarios(t *testing.T) {
	for _, s := range scenarios.All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			got := eval.SolveProblem(s.Build(), eval.SparseDensity(), s.Bound, s.Root, xlog.Logger{})
			if got != s.Want {
				t.Logf("%s graph mismatch:\n%# v", s.Name, pretty.Formatter(got))
			}
			qt.Assert(t, qt.Equals(got, s.Want))
		})
	}
}

// TestDeterminism checks that solving the same problem twice, including
// ones with genuine cross-node cycles, yields bitwise identical results.
func TestDeterminism(t *testing.T) {
	for _, s := range scenarios.All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			a := eval.SolveProblem(s.Build(), eval.SparseDensity(), s.Bound, s.Root, xlog.Logger{})
			b := eval.SolveProblem(s.Build(), eval.SparseDensity(), s.Bound, s.Root, xlog.Logger{})
			qt.Assert(t, qt.Equals(a, b))
		})
	}
}

// TestDensityEquivalence checks that the sparse and dense backends agree
// on every scenario, each bounded by a node range comfortably larger than
// anything the scenario can reach.
func TestDensityEquivalence(t *testing.T) {
	bounds := map[string]adt.NodeId{
		"S1": 2,
		"S2": 2,
		"S3": 43,
		"S4": 16,
		"S5": 101,
		"S6": 1,
	}
	for _, s := range scenarios.All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			sparse := eval.SolveProblem(s.Build(), eval.SparseDensity(), s.Bound, s.Root, xlog.Logger{})
			dense := eval.SolveProblem(s.Build(), eval.DenseDensity(bounds[s.Name]), s.Bound, s.Root, xlog.Logger{})
			qt.Assert(t, qt.Equals(sparse, dense))
		})
	}
}

// TestReferenceSymmetry checks invariant 1 holds over the final graph of a
// solve with a genuine cross-node cycle: every reference has a matching
// referrer edge in the other direction.
func TestReferenceSymmetry(t *testing.T) {
	s := scenarios.S4()
	env := eval.NewTestEnv(s.Build(), eval.SparseDensity(), s.Bound, xlog.Logger{})
	env.InsertUnstable(s.Root)
	env.RunWork()

	for _, p := range env.Graph().Points() {
		info, ok := env.Graph().Lookup(p)
		qt.Assert(t, qt.IsTrue(ok))
		for _, q := range info.References {
			qInfo, ok := env.Graph().Lookup(q)
			qt.Assert(t, qt.IsTrue(ok))
			found := false
			for _, r := range qInfo.Referrers {
				if r.Equal(p) {
					found = true
				}
			}
			qt.Assert(t, qt.IsTrue(found))
		}
	}
}

// TestFixedPoint checks that every point with a value, re-fed through its
// own transfer function against the final graph, is reported unchanged by
// its change detector.
func TestFixedPoint(t *testing.T) {
	s := scenarios.S5()
	problem := s.Build()
	env := eval.NewTestEnv(problem, eval.SparseDensity(), s.Bound, xlog.Logger{})
	env.InsertUnstable(s.Root)
	env.RunWork()

	for _, p := range env.Graph().Points() {
		info, ok := env.Graph().Lookup(p)
		if !ok || !info.HasValue {
			continue
		}
		transfer, ok := problem.TransferFor(p.Node)
		qt.Assert(t, qt.IsTrue(ok))
		recomputed := env.EvalTransfer(p, transfer)
		qt.Assert(t, qt.IsFalse(problem.DetectorFor(p.Node)(info.Value, recomputed)))
	}
}

// TestBottomSoundness checks the Kleene fixed-point property: replacing
// the value at a reachable, non-root point with bottom and re-running the
// worklist to completion reproduces the original result.
func TestBottomSoundness(t *testing.T) {
	s := scenarios.S5()
	problem := s.Build()
	env := eval.NewTestEnv(problem, eval.SparseDensity(), s.Bound, xlog.Logger{})
	env.InsertUnstable(s.Root)
	env.RunWork()
	want, ok := env.Graph().Lookup(s.Root)
	qt.Assert(t, qt.IsTrue(ok))

	mid := adt.Point{Node: s.Root.Node / 2}
	info, ok := env.Graph().Lookup(mid)
	qt.Assert(t, qt.IsTrue(ok))
	refs := info.References
	env.Graph().UpdatePoint(mid, problem.LatticeBottom(), refs)
	env.InsertUnstable(mid)
	for _, r := range info.Referrers {
		env.InsertUnstable(r)
	}
	env.RunWork()

	got, ok := env.Graph().Lookup(s.Root)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.Value, want.Value))
}

// TestIterationBoundCorrectness checks that AbortAfter(5, identity) caps
// the root point's update count at n+1 and that the final value is the
// one the point held when widening engaged: the transfer function climbs
// without bound, and the identity widen on the sixth update freezes it
// at 5.
func TestIterationBoundCorrectness(t *testing.T) {
	s := scenarios.S6()
	env := eval.NewTestEnv(s.Build(), eval.SparseDensity(), s.Bound, xlog.Logger{})
	env.InsertUnstable(s.Root)
	env.RunWork()

	info, ok := env.Graph().Lookup(s.Root)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(info.Iterations <= 6, true))
	qt.Assert(t, qt.Equals(info.Value, s.Want))
}
