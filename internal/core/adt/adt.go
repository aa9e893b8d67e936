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

// Package adt holds the data types shared by the solver's graph and
// scheduler packages: node identities, argument tuples, points, and the
// point-state machine. It deliberately knows nothing about lattices or
// transfer functions; those live in internal/core/eval.
package adt

import (
	"fmt"
	"strings"
)

// NodeId is the stable identity of a client-allocated node. Client problem
// builders allocate ids in post-order over the syntactic structure being
// analysed, so the scheduler treats a larger id as "more inner" (see
// PointSet.PopMax).
type NodeId uint32

// Arg is one cell of an ArgTuple. Implementations must be totally ordered
// and must render a stable String() so ArgTuple can be used as a hash key.
type Arg interface {
	fmt.Stringer

	// Less reports whether a precedes other in the total order used for
	// tie-breaking and for LookupLT.
	Less(other Arg) bool

	// Equal reports whether a and other denote the same argument.
	Equal(other Arg) bool
}

// IntArg is the common case: a single integer-valued argument, used by all
// of the built-in scenarios in internal/scenarios.
type IntArg int

func (a IntArg) String() string { return fmt.Sprintf("%d", int(a)) }

func (a IntArg) Less(other Arg) bool {
	o, ok := other.(IntArg)
	return ok && a < o
}

func (a IntArg) Equal(other Arg) bool {
	o, ok := other.(IntArg)
	return ok && a == o
}

// ArgTuple identifies a point within a node's domain. A nil or empty
// ArgTuple is the unit tuple, used for zero-argument domains.
type ArgTuple []Arg

// Unit returns the argument tuple for a zero-argument domain.
func Unit() ArgTuple { return nil }

// Args is a convenience constructor for an ArgTuple of IntArg values.
func Args(vs ...int) ArgTuple {
	if len(vs) == 0 {
		return nil
	}
	out := make(ArgTuple, len(vs))
	for i, v := range vs {
		out[i] = IntArg(v)
	}
	return out
}

// Less implements the lexicographic total order over argument tuples: a
// shorter tuple that is a prefix of a longer one sorts first.
func (t ArgTuple) Less(other ArgTuple) bool {
	n := len(t)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		switch {
		case t[i].Less(other[i]):
			return true
		case other[i].Less(t[i]):
			return false
		}
	}
	return len(t) < len(other)
}

// Equal reports whether t and other denote the same argument tuple.
func (t ArgTuple) Equal(other ArgTuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if !t[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Key renders t as a stable string usable as a hash/map key.
func (t ArgTuple) Key() string {
	if len(t) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range t {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Point is the (node, args) pair that uniquely keys everything in the
// graph: the unit of iteration for the scheduler.
type Point struct {
	Node NodeId
	Args ArgTuple
}

// NewPoint builds a Point from a node id and its argument cells.
func NewPoint(node NodeId, args ...Arg) Point {
	return Point{Node: node, Args: ArgTuple(args)}
}

// Key renders p as a stable string usable as a hash/map key, since ArgTuple
// is a slice and therefore not itself a valid Go map key.
func (p Point) Key() string {
	return fmt.Sprintf("%d%s", p.Node, p.Args.Key())
}

// Equal reports whether p and other are the same point.
func (p Point) Equal(other Point) bool {
	return p.Node == other.Node && p.Args.Equal(other.Args)
}

// Less orders points by NodeId ascending, then by ArgTuple ascending. The
// scheduler's pop order (see PointSet.PopMax) reverses the NodeId part,
// popping the *largest* NodeId first, but keeps the ArgTuple part.
func (p Point) Less(other Point) bool {
	if p.Node != other.Node {
		return p.Node < other.Node
	}
	return p.Args.Less(other.Args)
}

func (p Point) String() string {
	return fmt.Sprintf("#%d%s", p.Node, p.Args.Key())
}
