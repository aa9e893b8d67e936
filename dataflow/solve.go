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

import (
	"fmt"

	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/eval"
)

// Solve runs problem's worklist to a fixed point and returns the value at
// root. The core signals an internal invariant violation (an unresolved
// root, a node recomputed with no registered transfer function, a
// call-stack imbalance) by panicking with *adt.Error; Solve is the one
// place that panic is recovered and turned back into a normal error.
func Solve[V any](problem *Problem[V], density Density, bound IterationBound[V], root Point, log Logger) (result V, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if solverErr, ok := r.(*adt.Error); ok {
			err = fmt.Errorf("%w", solverErr)
			return
		}
		panic(r)
	}()

	result = eval.SolveProblem(problem.inner, density, bound, root, log)
	return result, nil
}
