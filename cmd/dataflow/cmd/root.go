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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command wraps the active cobra.Command the way the root command does
// for every subcommand: a single struct threaded through mkRunE so
// subcommands see a stable handle to stdout/stderr.
type Command struct {
	*cobra.Command

	root *cobra.Command
}

type runFunction func(c *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// ErrPrintedError indicates an error has already been written to stderr,
// so Main should exit non-zero without printing it again.
var ErrPrintedError = errors.New("terminating because of errors")

func newRootCmd() *Command {
	root := &cobra.Command{
		Use:           "dataflow",
		Short:         "run and inspect the built-in monotone data-flow scenarios",
		Long:          `dataflow runs the fixed-point solver over its built-in scenario library, for manual inspection of the scheduler's behavior.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: root, root: root}

	root.AddCommand(newListCmd(c))
	root.AddCommand(newRunCmd(c))

	return c
}

// Main runs the dataflow CLI and returns the code to pass to os.Exit.
func Main() int {
	if err := mainErr(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, ErrPrintedError) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	c := newRootCmd()
	c.root.SetArgs(args)
	return c.root.ExecuteContext(ctx)
}
