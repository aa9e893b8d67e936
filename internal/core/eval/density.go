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

package eval

import (
	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/graph"
)

// Density selects the graph-store backend: Sparse for problems
// with no declared bound on NodeId, Dense(max) for problems that declare
// one up front.
type Density struct {
	dense   bool
	maxNode adt.NodeId
}

// SparseDensity selects the hash-map-backed graph store.
func SparseDensity() Density {
	return Density{}
}

// DenseDensity selects the array-backed graph store, sized for node ids
// in [0, maxNode].
func DenseDensity(maxNode adt.NodeId) Density {
	return Density{dense: true, maxNode: maxNode}
}

func newStore[V any](d Density) *graph.Store[V] {
	if d.dense {
		return graph.NewDense[V](d.maxNode)
	}
	return graph.NewSparse[V]()
}
