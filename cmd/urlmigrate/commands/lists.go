// Copyright 2025 walteh LLC
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

package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/urlmigrate/cmd/urlmigrate/opts"
	"github.com/walteh/urlmigrate/pkg/operation"
)

// listArg is the URL list named on the command line, or the configured one
func listArg(o *opts.RootOpts, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.Config.URLListPath()
}

// NewDedupeCmd creates the dedupe command
func NewDedupeCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dedupe [url-list.csv]",
		Short: "Drop repeated rows from a URL list",
		Long: `Dedupe keeps the first occurrence of every row and its order.
The list is rewritten in place unless --output is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Require(); err != nil {
				return err
			}
			return o.Runner().Run(cmd.Context(), &operation.DedupeOperation{
				Input:  listArg(o, args),
				Output: output,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of in place")

	return cmd
}

// NewCleanCmd creates the clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean [url-list.csv]",
		Short: "Strip trailing delimiter noise from every URL in a list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Require(); err != nil {
				return err
			}
			return o.Runner().Run(cmd.Context(), &operation.CleanOperation{
				Input:  listArg(o, args),
				Output: output,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of in place")

	return cmd
}
