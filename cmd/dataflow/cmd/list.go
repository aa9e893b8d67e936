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

	"github.com/spf13/cobra"

	"cuelabs.dev/go/dataflow/internal/scenarios"
)

func newListCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the built-in scenarios",
		RunE: mkRunE(c, func(c *Command, args []string) error {
			w := c.OutOrStdout()
			for _, s := range scenarios.All() {
				fmt.Fprintf(w, "%-4s root=%s want=%d\n", s.Name, s.Root, s.Want)
			}
			return nil
		}),
	}
}
