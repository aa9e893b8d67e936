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

// Package graph implements the graph store: the per-point records
// (value, references, referrers, iteration count) the scheduler reads and
// writes through recompute and dependOn, in two interchangeable backends
// (dense array-indexed, sparse map-indexed) behind one contract.
package graph

import (
	"sort"

	"cuelabs.dev/go/dataflow/internal/core/adt"
)

// PointInfo is everything the store remembers about one point: its
// current approximation (absent only mid-cycle), the points it last
// consulted, the points that last consulted it, and how many times it has
// been assigned.
type PointInfo[V any] struct {
	Value      V
	HasValue   bool
	References []adt.Point
	Referrers  []adt.Point
	Iterations uint32
}

// entry is the unit of storage inside a node's argument table.
type entry[V any] struct {
	args adt.ArgTuple
	info PointInfo[V]
}

// Store is the graph store contract, shared verbatim by the dense and
// sparse backends: only the underlying nodeIndex differs between the two,
// exactly the "runtime dispatch behind an interface" calls for instead
// of monomorphising the whole scheduler per backend.
type Store[V any] struct {
	idx nodeIndex[V]
}

// NewSparse returns a graph store backed by a hash map from NodeId to
// per-node argument tables, for problems that do not declare an upper
// bound on NodeId.
func NewSparse[V any]() *Store[V] {
	return &Store[V]{idx: newSparseIndex[V]()}
}

// NewDense returns a graph store backed by a flat array indexed directly
// by NodeId, for problems that declare maxNode as an upper bound. Using a
// node id > maxNode is a usage error and panics.
func NewDense[V any](maxNode adt.NodeId) *Store[V] {
	return &Store[V]{idx: newDenseIndex[V](maxNode)}
}

func (s *Store[V]) find(node adt.NodeId, args adt.ArgTuple) (bucket []entry[V], idx int, ok bool) {
	bucket = s.idx.get(node)
	idx = sort.Search(len(bucket), func(i int) bool {
		return !bucket[i].args.Less(args)
	})
	ok = idx < len(bucket) && bucket[idx].args.Equal(args)
	return bucket, idx, ok
}

// Lookup returns the current PointInfo for p, if any point has ever been
// recorded there (including a placeholder created only to record a
// referrer edge, in which case HasValue is false).
func (s *Store[V]) Lookup(p adt.Point) (PointInfo[V], bool) {
	bucket, idx, ok := s.find(p.Node, p.Args)
	if !ok {
		return PointInfo[V]{}, false
	}
	return bucket[idx].info, true
}

// LookupLT returns the PointInfo of every already-known point at node
// whose ArgTuple is strictly less than args and that has a value, in
// ascending ArgTuple order. It backs the optimistic approximation.
func (s *Store[V]) LookupLT(node adt.NodeId, args adt.ArgTuple) []PointInfo[V] {
	bucket := s.idx.get(node)
	idx := sort.Search(len(bucket), func(i int) bool {
		return !bucket[i].args.Less(args)
	})
	out := make([]PointInfo[V], 0, idx)
	for i := 0; i < idx; i++ {
		if bucket[i].info.HasValue {
			out = append(out, bucket[i].info)
		}
	}
	return out
}

// getOrCreate returns the index of the entry for (node, args), creating an
// empty placeholder (HasValue false) if none exists yet. This is what lets
// a referrer edge be recorded onto a point that is InProgress (on the call
// stack, no value assigned yet): invariant 1 must hold even for points
// that have not completed their first recompute.
func (s *Store[V]) getOrCreate(node adt.NodeId, args adt.ArgTuple) (bucket []entry[V], idx int) {
	bucket = s.idx.get(node)
	idx = sort.Search(len(bucket), func(i int) bool {
		return !bucket[i].args.Less(args)
	})
	if idx < len(bucket) && bucket[idx].args.Equal(args) {
		return bucket, idx
	}
	bucket = append(bucket, entry[V]{})
	copy(bucket[idx+1:], bucket[idx:])
	bucket[idx] = entry[V]{args: args}
	s.idx.set(node, bucket)
	return bucket, idx
}

// UpdatePoint installs value and refs at p, returns the PointInfo that was
// there before the update, and restores invariant 1 (reference/referrer
// symmetry) by diffing the old and new reference sets and patching the
// referrers list of every point that was gained or lost.
func (s *Store[V]) UpdatePoint(p adt.Point, value V, refs []adt.Point) PointInfo[V] {
	bucket, idx := s.getOrCreate(p.Node, p.Args)
	old := bucket[idx].info

	bucket[idx].info = PointInfo[V]{
		Value:      value,
		HasValue:   true,
		References: append([]adt.Point(nil), refs...),
		Referrers:  old.Referrers,
		Iterations: old.Iterations + 1,
	}
	s.idx.set(p.Node, bucket)

	oldSet := make(map[string]bool, len(old.References))
	for _, q := range old.References {
		oldSet[q.Key()] = true
	}
	newSet := make(map[string]bool, len(refs))
	for _, q := range refs {
		newSet[q.Key()] = true
	}

	for _, q := range refs {
		if !oldSet[q.Key()] {
			s.addReferrer(q, p)
		}
	}
	for _, q := range old.References {
		if !newSet[q.Key()] {
			s.removeReferrer(q, p)
		}
	}

	return old
}

func (s *Store[V]) addReferrer(q, referrer adt.Point) {
	bucket, idx := s.getOrCreate(q.Node, q.Args)
	info := bucket[idx].info
	for _, r := range info.Referrers {
		if r.Equal(referrer) {
			return
		}
	}
	info.Referrers = append(info.Referrers, referrer)
	bucket[idx].info = info
	s.idx.set(q.Node, bucket)
}

func (s *Store[V]) removeReferrer(q, referrer adt.Point) {
	bucket, idx, ok := s.find(q.Node, q.Args)
	if !ok {
		return
	}
	info := bucket[idx].info
	out := info.Referrers[:0]
	for _, r := range info.Referrers {
		if !r.Equal(referrer) {
			out = append(out, r)
		}
	}
	info.Referrers = out
	bucket[idx].info = info
	s.idx.set(q.Node, bucket)
}

// Points returns every point the store has ever recorded (with or without
// a value), in ascending (NodeId, ArgTuple) order. Used by the CLI's
// --verbose dump and by tests; not on the scheduler's hot path.
func (s *Store[V]) Points() []adt.Point {
	var out []adt.Point
	for _, node := range s.idx.nodes() {
		for _, e := range s.idx.get(node) {
			out = append(out, adt.Point{Node: node, Args: e.args})
		}
	}
	return out
}
