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

package graph

import (
	"sort"

	"golang.org/x/exp/maps"

	"cuelabs.dev/go/dataflow/internal/core/adt"
)

// nodeIndex is the one seam between the dense and sparse backends: a map
// from NodeId to that node's (sorted-by-Args) entry table. Everything else
// in Store is shared.
type nodeIndex[V any] interface {
	get(n adt.NodeId) []entry[V]
	set(n adt.NodeId, es []entry[V])
	nodes() []adt.NodeId
}

// sparseIndex is a hash map from NodeId to its entry table, for problems
// with no declared bound on NodeId.
type sparseIndex[V any] struct {
	m map[adt.NodeId][]entry[V]
}

func newSparseIndex[V any]() *sparseIndex[V] {
	return &sparseIndex[V]{m: make(map[adt.NodeId][]entry[V])}
}

func (s *sparseIndex[V]) get(n adt.NodeId) []entry[V] { return s.m[n] }

func (s *sparseIndex[V]) set(n adt.NodeId, es []entry[V]) { s.m[n] = es }

func (s *sparseIndex[V]) nodes() []adt.NodeId {
	ns := maps.Keys(s.m)
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// denseIndex is a growable array indexed directly by NodeId, for problems
// that declare an upper bound on NodeId. Indexing past the declared bound
// is a usage error and panics rather than silently growing, since the
// client asserted the bound when choosing Density.Dense.
type denseIndex[V any] struct {
	slots []([]entry[V])
	used  []bool
}

func newDenseIndex[V any](maxNode adt.NodeId) *denseIndex[V] {
	return &denseIndex[V]{
		slots: make([][]entry[V], maxNode+1),
		used:  make([]bool, maxNode+1),
	}
}

func (d *denseIndex[V]) get(n adt.NodeId) []entry[V] {
	d.checkBounds(n)
	return d.slots[n]
}

func (d *denseIndex[V]) set(n adt.NodeId, es []entry[V]) {
	d.checkBounds(n)
	d.slots[n] = es
	d.used[n] = true
}

func (d *denseIndex[V]) checkBounds(n adt.NodeId) {
	if int(n) >= len(d.slots) {
		adt.Panicf(adt.InvariantViolation, n,
			"node id %d exceeds the declared Dense bound %d", n, len(d.slots)-1)
	}
}

func (d *denseIndex[V]) nodes() []adt.NodeId {
	var out []adt.NodeId
	for n, u := range d.used {
		if u && len(d.slots[n]) > 0 {
			out = append(out, adt.NodeId(n))
		}
	}
	return out
}
