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

// CallBalance tracks matching enter/exit pairs around with_call frames, the
// same role depKind/incDependent/decDependent play for closedContext
// bookkeeping: it catches a mismatched push/pop of scheduler state during
// development rather than asserting anything about the solved values
// themselves.
type CallBalance struct {
	depth int
}

// Enter records entry into a with_call frame.
func (b *CallBalance) Enter() {
	b.depth++
}

// Exit records the matching exit. It panics immediately if depth would go
// negative, since that can only mean exitCall ran without a matching
// enterCall.
func (b *CallBalance) Exit(node NodeId) {
	b.depth--
	if b.depth < 0 {
		Panicf(InvariantViolation, node, "with_call exited without a matching enter")
	}
}

// AssertBalanced panics if any with_call frame was entered without a
// matching exit. Call it once solveProblem's worklist has drained.
func (b *CallBalance) AssertBalanced() {
	if b.depth != 0 {
		Panicf(InvariantViolation, 0, "call stack imbalance: depth %d at end of solve", b.depth)
	}
}
