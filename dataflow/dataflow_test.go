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

package dataflow_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cuelabs.dev/go/dataflow"
)

type naturalMax struct{}

func (naturalMax) Bottom() int { return 0 }

func (naturalMax) Join(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TestSolveSaturatingSelfLoop exercises the façade end to end: a single
// self-referential node climbing to a cap, read back through Solve.
func TestSolveSaturatingSelfLoop(t *testing.T) {
	problem := dataflow.NewProblem[int](naturalMax{})
	problem.AllocateNode(dataflow.NotEqual[int](), func(self dataflow.Node) dataflow.TransferFunc[int] {
		return func(env *dataflow.Env[int], node dataflow.Node, args dataflow.ArgTuple) int {
			v := env.DependOn(self, dataflow.Unit()) + 1
			if v > 5 {
				return 5
			}
			return v
		}
	})

	got, err := dataflow.Solve[int](problem, dataflow.Sparse(), dataflow.NeverAbort[int](), dataflow.At(0, dataflow.Unit()), dataflow.Logger{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, 5))
}

// TestSolveRootUnresolvedBecomesError checks that asking for a node with
// no registered transfer function comes back as a normal error rather
// than a panic escaping Solve.
func TestSolveRootUnresolvedBecomesError(t *testing.T) {
	problem := dataflow.NewProblem[int](naturalMax{})

	_, err := dataflow.Solve[int](problem, dataflow.Sparse(), dataflow.NeverAbort[int](), dataflow.At(0, dataflow.Unit()), dataflow.Logger{})
	qt.Assert(t, qt.IsNotNil(err))
}

// TestDenseBound checks the Dense backend produces the same result as
// Sparse for a bounded problem.
func TestDenseBound(t *testing.T) {
	build := func() *dataflow.Problem[int] {
		problem := dataflow.NewProblem[int](naturalMax{})
		problem.Register(0, dataflow.NotEqual[int](), func(env *dataflow.Env[int], node dataflow.Node, args dataflow.ArgTuple) int {
			return 1
		})
		return problem
	}

	root := dataflow.At(0, dataflow.Unit())
	sparse, err := dataflow.Solve[int](build(), dataflow.Sparse(), dataflow.NeverAbort[int](), root, dataflow.Logger{})
	qt.Assert(t, qt.IsNil(err))

	dense, err := dataflow.Solve[int](build(), dataflow.Dense(0), dataflow.NeverAbort[int](), root, dataflow.Logger{})
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.Equals(sparse, dense))
}
