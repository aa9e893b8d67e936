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

// Package scenarios holds a small library of fixed, known-answer problems
// used both by the CLI's "run"/"list" subcommands and by the eval
// package's tests, so the two never drift out of sync on what a given
// scenario name means.
package scenarios

import "math"

// NaturalMax is the natural-numbers-under-max lattice used by every
// scenario except the signed-integer recurrence: bottom is zero, join is
// the larger of the two values.
type NaturalMax struct{}

func (NaturalMax) Bottom() int { return 0 }

func (NaturalMax) Join(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SignedMax is the signed-integer-under-max lattice, bottom at a
// conventional 32-bit minimum so a doubled bottom cannot overflow a native
// int during cycle breaking.
type SignedMax struct{}

func (SignedMax) Bottom() int { return math.MinInt32 }

func (SignedMax) Join(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
