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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/walteh/urlmigrate/cmd/urlmigrate/opts"
	"github.com/walteh/urlmigrate/pkg/operation"
)

// Default names of the two compare outputs, inside the output dir
const (
	DefaultUnmatchedSmaller = "unmatched-smaller.csv"
	DefaultUnmatchedBigger  = "unmatched-bigger.csv"
)

// NewCompareCmd creates the compare command
func NewCompareCmd(o *opts.RootOpts) *cobra.Command {
	var smallerOut, biggerOut string

	cmd := &cobra.Command{
		Use:   "compare <first.csv> <second.csv>",
		Short: "Report URLs present in one list but not the other",
		Long: `Compare reads the first column of both lists as sets. The list with fewer
distinct URLs is the smaller one; on a tie the first list is. URLs of each list
missing from the other are written, sorted, to their own CSV.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Require(); err != nil {
				return err
			}
			if smallerOut == "" {
				smallerOut = filepath.Join(o.Config.OutputDir, DefaultUnmatchedSmaller)
			}
			if biggerOut == "" {
				biggerOut = filepath.Join(o.Config.OutputDir, DefaultUnmatchedBigger)
			}

			return o.Runner().Run(cmd.Context(), &operation.CompareOperation{
				First:      args[0],
				Second:     args[1],
				OutSmaller: smallerOut,
				OutBigger:  biggerOut,
			})
		},
	}

	cmd.Flags().StringVar(&smallerOut, "smaller-out", "", "unmatched URLs of the smaller list (default: <output dir>/"+DefaultUnmatchedSmaller+")")
	cmd.Flags().StringVar(&biggerOut, "bigger-out", "", "unmatched URLs of the bigger list (default: <output dir>/"+DefaultUnmatchedBigger+")")

	return cmd
}
