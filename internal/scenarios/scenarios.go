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

package scenarios

import (
	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/eval"
)

// Scenario is a complete, runnable known-answer problem: a builder that
// populates a fresh Problem, the point to solve for, and the value the
// solver must return.
type Scenario struct {
	Name  string
	Root  adt.Point
	Want  int
	Bound eval.IterationBound[int]
	Build func() *eval.Problem[int]
}

// All lists every registered scenario in a stable, display order.
func All() []Scenario {
	return []Scenario{S1(), S2(), S3(), S4(), S5(), S6()}
}

// Lookup finds a scenario by name (case-sensitive, e.g. "S1"), for the CLI's
// "run <name>" subcommand.
func Lookup(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

func unit(node adt.NodeId) adt.Point { return adt.Point{Node: node} }

// S1 is a single node whose transfer depends on itself, saturating at 10.
func S1() Scenario {
	return Scenario{
		Name:  "S1",
		Root:  unit(0),
		Want:  10,
		Bound: eval.NeverAbort[int](),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](NaturalMax{})
			p.AllocateNode(eval.NotEqual[int](), func(self adt.NodeId) eval.TransferFunc[int] {
				return func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
					return min(env.DependOn(self, adt.Unit())+1, 10)
				}
			})
			return p
		},
	}
}

// S2 is two nodes: node 1 self-loops and saturates at 2, node 0 reads it
// twice. The second read inside a single transfer call must observe the
// value node 1 stabilises at, not the value from the first recompute pass.
func S2() Scenario {
	return Scenario{
		Name:  "S2",
		Root:  unit(0),
		Want:  4,
		Bound: eval.NeverAbort[int](),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](NaturalMax{})
			const n1 = adt.NodeId(1)
			p.Register(n1, eval.NotEqual[int](), func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
				return min(env.DependOn(n1, adt.Unit())+1, 2)
			})
			p.Register(0, eval.NotEqual[int](), func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
				return env.DependOn(n1, adt.Unit()) + env.DependOn(n1, adt.Unit())
			})
			return p
		},
	}
}

// fibNodeCount is the node count used for S3: comfortably larger than the
// 0..10 range the root actually reaches, so most of the registered nodes
// are never discovered and never enter the graph.
const fibNodeCount = 43

// S3 is fibonacci laid out as one node per index, each depending on its
// two predecessors: a purely acyclic graph.
func S3() Scenario {
	return Scenario{
		Name:  "S3",
		Root:  unit(10),
		Want:  55,
		Bound: eval.NeverAbort[int](),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](NaturalMax{})
			for n := 0; n < fibNodeCount; n++ {
				n := n
				p.Register(adt.NodeId(n), eval.NotEqual[int](), func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
					switch n {
					case 0:
						return 0
					case 1:
						return 1
					default:
						return env.DependOn(adt.NodeId(n-1), adt.Unit()) + env.DependOn(adt.NodeId(n-2), adt.Unit())
					}
				})
			}
			return p
		},
	}
}

// s4NodeCount bounds the node range used by S4's recurrence; large enough
// to cover every n the cyclic n+1/n-even-halving path can reach from the
// root.
const s4NodeCount = 16

// S4 is a cyclic recurrence over signed integers: Node(n) is 2*dependOn(n/2)
// for even n > 0, dependOn(n+1)-1 for odd n, and node 0 is fixed at 0
// (it is not reachable from the root). The n=1/n=2 pair forms a genuine
// mutual cycle, broken by the optimistic approximation.
func S4() Scenario {
	return Scenario{
		Name:  "S4",
		Root:  unit(5),
		Want:  5,
		Bound: eval.NeverAbort[int](),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](SignedMax{})
			for n := 0; n < s4NodeCount; n++ {
				n := n
				p.Register(adt.NodeId(n), eval.NotEqual[int](), func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
					if n == 0 {
						return 0
					}
					if n%2 == 0 {
						return 2 * env.DependOn(adt.NodeId(n/2), adt.Unit())
					}
					return env.DependOn(adt.NodeId(n+1), adt.Unit()) - 1
				})
			}
			return p
		},
	}
}

// S5 is an acyclic running sum: Node(n) is n + dependOn(n-1).
func S5() Scenario {
	const top = 100
	return Scenario{
		Name:  "S5",
		Root:  unit(top),
		Want:  5050,
		Bound: eval.NeverAbort[int](),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](NaturalMax{})
			for n := 0; n <= top; n++ {
				n := n
				p.Register(adt.NodeId(n), eval.NotEqual[int](), func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
					if n == 0 {
						return 0
					}
					return n + env.DependOn(adt.NodeId(n-1), adt.Unit())
				})
			}
			return p
		},
	}
}

// S6 is a single node with an unbounded self-dependent increment, relying
// on AbortAfter(5, identity) to force termination. The point takes the
// values 1,2,3,4,5 over its first five updates; the sixth update hits the
// bound and the identity widen freezes it at 5.
func S6() Scenario {
	return Scenario{
		Name:  "S6",
		Root:  unit(0),
		Want:  5,
		Bound: eval.AbortAfter[int](5, func(_ adt.ArgTuple, current int) int {
			return current
		}),
		Build: func() *eval.Problem[int] {
			p := eval.NewProblem[int](NaturalMax{})
			p.AllocateNode(eval.NotEqual[int](), func(self adt.NodeId) eval.TransferFunc[int] {
				return func(env *eval.Env[int], node adt.NodeId, args adt.ArgTuple) int {
					return env.DependOn(self, adt.Unit()) + 1
				}
			})
			return p
		},
	}
}
