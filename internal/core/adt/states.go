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

package adt

// PointState is the observable state of a point. It is not
// load-bearing for recompute/dependOn, which derive the same information
// directly from the graph and the worklist; it exists for debugging and for
// the CLI's --verbose dump, the way a scheduler associated with a vertex
// reports a condition mask for diagnostics.
type PointState int8

const (
	// Undiscovered: the point has never been recomputed and is not on the
	// call stack.
	Undiscovered PointState = iota

	// InProgress: the point is on the call stack and has not yet produced
	// a value (a cycle is being resolved through it).
	InProgress

	// Settled: the point has a value and is not in the worklist.
	Settled

	// Dirty: the point has a value but a referent changed and it is
	// waiting in the worklist to be recomputed.
	Dirty
)

func (s PointState) String() string {
	switch s {
	case Undiscovered:
		return "undiscovered"
	case InProgress:
		return "in-progress"
	case Settled:
		return "settled"
	case Dirty:
		return "dirty"
	default:
		return "invalid"
	}
}

// DerivePointState computes the state of a point from the three facts
// the graph and worklist can report about it.
func DerivePointState(hasValue, onCallStack, inWorklist bool) PointState {
	switch {
	case onCallStack && !hasValue:
		return InProgress
	case !hasValue:
		return Undiscovered
	case inWorklist:
		return Dirty
	default:
		return Settled
	}
}
