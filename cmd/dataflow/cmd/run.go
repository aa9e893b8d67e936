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

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"cuelabs.dev/go/dataflow/internal/core/adt"
	"cuelabs.dev/go/dataflow/internal/core/eval"
	"cuelabs.dev/go/dataflow/internal/core/graph"
	"cuelabs.dev/go/dataflow/internal/scenarios"
	"cuelabs.dev/go/dataflow/internal/xlog"
)

func newRunCmd(c *Command) *cobra.Command {
	var (
		density string
		bound   string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "solve one built-in scenario and report whether it matches its known answer",
		Args:  cobra.ExactArgs(1),
		RunE: mkRunE(c, func(c *Command, args []string) error {
			s, ok := scenarios.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q (see 'dataflow list')", args[0])
			}

			b, err := resolveBound(bound, s.Bound)
			if err != nil {
				return err
			}

			var log xlog.Logger
			if verbose {
				log = xlog.New(slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			problem := s.Build()
			d := resolveDensity(density, s.Root.Node)

			g, runID, got := eval.SolveProblemDebug(problem, d, b, s.Root, log)

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%s: got %d, want %d\n", s.Name, got, s.Want)

			if verbose {
				fmt.Fprintf(c.ErrOrStderr(), "run %s final graph:\n", runID)
				dumpGraph(c.ErrOrStderr(), g, s.Want, got)
			}

			if got != s.Want {
				return fmt.Errorf("%s: mismatch", s.Name)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&density, "density", "sparse", `graph-store backend: "sparse" or "dense"`)
	cmd.Flags().StringVar(&bound, "bound", "scenario", `iteration bound: "scenario" (the scenario's own), "never", or "abort:N" for identity widening after N updates`)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every recompute and cycle break to stderr, then dump the final graph")

	return cmd
}

func resolveDensity(name string, root adt.NodeId) eval.Density {
	switch name {
	case "dense":
		return eval.DenseDensity(root + 1)
	default:
		return eval.SparseDensity()
	}
}

// resolveBound overrides a scenario's own iteration bound from the
// --bound flag, defaulting to the scenario's own choice so "run S6"
// without flags still exercises S6's built-in AbortAfter(5, identity).
func resolveBound(name string, scenarioBound eval.IterationBound[int]) (eval.IterationBound[int], error) {
	switch {
	case name == "scenario":
		return scenarioBound, nil
	case name == "never":
		return eval.NeverAbort[int](), nil
	case strings.HasPrefix(name, "abort:"):
		n, err := strconv.ParseUint(strings.TrimPrefix(name, "abort:"), 10, 32)
		if err != nil {
			return eval.IterationBound[int]{}, fmt.Errorf("invalid --bound %q: %w", name, err)
		}
		return eval.AbortAfter[int](uint32(n), func(_ adt.ArgTuple, current int) int { return current }), nil
	default:
		return eval.IterationBound[int]{}, fmt.Errorf(`invalid --bound %q: want "scenario", "never", or "abort:N"`, name)
	}
}

// dumpGraph writes the final PointInfo of every point the store recorded.
// When the root's value diverges from the scenario's known answer, a
// go-cmp diff of want against got leads the output so the mismatch is
// the first thing a reader sees; the full pretty.Formatter dump of every
// point follows regardless, since go-cmp alone collapses slice-of-struct
// detail that's worth a human's attention here.
func dumpGraph[V any](w io.Writer, g *graph.Store[V], want, got V) {
	if diff := cmp.Diff(want, got); diff != "" {
		fmt.Fprintf(w, "root value diff (-want +got):\n%s\n", diff)
	}
	for _, p := range g.Points() {
		info, ok := g.Lookup(p)
		if !ok {
			continue
		}
		state := adt.DerivePointState(info.HasValue, false, false)
		fmt.Fprintf(w, "%s [%s]: %# v\n", p.String(), state, pretty.Formatter(info))
	}
}
