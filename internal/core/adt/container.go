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

import "sort"

// PointSet is the monotone integer-keyed container required by : an
// associative set of points supporting insert, delete, lookup, membership,
// iteration, and PopMax, the "pop highest priority" operation the scheduler
// uses to drive its worklist. It also backs the call stack, where only
// membership is needed.
//
// Priority is NodeId descending; ties within a node are broken by ArgTuple
// ascending, so that for a family of points allocated for increasing
// arguments (the common case for recursive client problems, e.g. fib(n-1)
// before fib(n-2) at the same node) the smaller argument is recomputed
// first. Both orderings are fixed and make PopMax deterministic across
// runs for identical input, as required by .
type PointSet struct {
	byNode map[NodeId][]Point
	size   int
}

// NewPointSet returns an empty PointSet.
func NewPointSet() *PointSet {
	return &PointSet{byNode: make(map[NodeId][]Point)}
}

// Len reports the number of points currently in the set.
func (s *PointSet) Len() int { return s.size }

// search returns the index at which p belongs within the (sorted-by-Args)
// bucket for p.Node, and whether it is already present there.
func search(bucket []Point, args ArgTuple) (int, bool) {
	idx := sort.Search(len(bucket), func(i int) bool {
		return !bucket[i].Args.Less(args)
	})
	return idx, idx < len(bucket) && bucket[idx].Args.Equal(args)
}

// Insert adds p to the set. Inserting a point already present is a no-op.
func (s *PointSet) Insert(p Point) {
	bucket := s.byNode[p.Node]
	idx, found := search(bucket, p.Args)
	if found {
		return
	}
	bucket = append(bucket, Point{})
	copy(bucket[idx+1:], bucket[idx:])
	bucket[idx] = p
	s.byNode[p.Node] = bucket
	s.size++
}

// Delete removes p from the set. Deleting a point not present is a no-op.
func (s *PointSet) Delete(p Point) {
	bucket, ok := s.byNode[p.Node]
	if !ok {
		return
	}
	idx, found := search(bucket, p.Args)
	if !found {
		return
	}
	bucket = append(bucket[:idx], bucket[idx+1:]...)
	if len(bucket) == 0 {
		delete(s.byNode, p.Node)
	} else {
		s.byNode[p.Node] = bucket
	}
	s.size--
}

// Has reports whether p is a member of the set.
func (s *PointSet) Has(p Point) bool {
	bucket, ok := s.byNode[p.Node]
	if !ok {
		return false
	}
	_, found := search(bucket, p.Args)
	return found
}

// PopMax removes and returns the point with the largest NodeId (ties
// broken by the smallest ArgTuple within that node), and reports whether
// the set was non-empty.
func (s *PointSet) PopMax() (Point, bool) {
	var best NodeId
	found := false
	for n, bucket := range s.byNode {
		if len(bucket) == 0 {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return Point{}, false
	}
	bucket := s.byNode[best]
	p := bucket[0]
	bucket = bucket[1:]
	if len(bucket) == 0 {
		delete(s.byNode, best)
	} else {
		s.byNode[best] = bucket
	}
	s.size--
	return p, true
}

// Points returns every member of the set in ascending (NodeId, ArgTuple)
// order. It is used by the CLI's --verbose dump and by tests; it is not on
// the hot path of the scheduler.
func (s *PointSet) Points() []Point {
	out := make([]Point, 0, s.size)
	nodes := make([]NodeId, 0, len(s.byNode))
	for n := range s.byNode {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	for _, n := range nodes {
		out = append(out, s.byNode[n]...)
	}
	return out
}
