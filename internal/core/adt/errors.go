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

import "fmt"

// This file encodes the solver's internal error values.
//
// *Error:
//   - always indicates a violated invariant or a misuse of the solver's
//     external interface.
//   - is never returned as a normal error from recompute/dependOn.
//   - is raised with panic and is meant to be recovered exactly once, at
//     the public façade boundary (dataflow.Solve), which turns it into a
//     regular error.

// ErrorCode classifies a solver-internal error.
type ErrorCode int8

const (
	// RootUnresolved means solveProblem's post-condition was violated: the
	// root point has no value after the worklist drained.
	RootUnresolved ErrorCode = iota

	// MissingTransfer means a node was recomputed for which the problem
	// registers no transfer function.
	MissingTransfer

	// InvariantViolation covers any other internal invariant failure
	// (e.g. a call-stack imbalance detected by the debug balance counter).
	InvariantViolation
)

func (c ErrorCode) String() string {
	switch c {
	case RootUnresolved:
		return "root unresolved"
	case MissingTransfer:
		return "missing transfer function"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "unknown solver error"
	}
}

// Error is the typed value panicked with on every fatal solver condition.
type Error struct {
	Code ErrorCode
	Node NodeId
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("dataflow: %s (node %d): %s", e.Code, e.Node, e.Msg)
}

// Panicf raises a solver Error for the given node, formatting Msg like
// fmt.Sprintf.
func Panicf(code ErrorCode, node NodeId, format string, args ...any) {
	panic(&Error{Code: code, Node: node, Msg: fmt.Sprintf(format, args...)})
}
