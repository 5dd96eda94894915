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
	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/operation"
)

// NewReplaceCmd creates the replace command
func NewReplaceCmd(o *opts.RootOpts) *cobra.Command {
	var (
		input       string
		mappingPath string
		skipFailed  bool
		dryRun      bool
		diff        bool
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Rewrite documents to point at the migrated files",
		Long: `Replace swaps every source URL found in the mapping file for its new URL.
Matching is literal. Each document is written to <output dir>/<stem>-updated<ext>
and the original is left alone.

URLs whose transfer failed are replaced by their failure marker, and a warning
says how many. Pass --skip-failed to leave them as they are instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input != "" {
				o.Config.InputFile = input
				o.Config.InputGlob = ""
			}
			if err := o.Require(config.RequireDocument); err != nil {
				return err
			}
			if mappingPath == "" {
				mappingPath = o.Config.MappingPath()
			}

			docs, err := o.Config.Documents()
			if err != nil {
				return err
			}

			op := &operation.ReplaceOperation{
				MappingPath: mappingPath,
				Documents:   docs,
				OutputFor:   o.Config.UpdatedPath,
				SkipFailed:  skipFailed,
				DryRun:      dryRun,
			}
			if diff {
				op.DiffOut = cmd.OutOrStdout()
			}

			o.Console.Header("rewriting " + describeDocs(docs))

			return o.Runner().Run(cmd.Context(), op)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "document name in the input dir (overrides INPUT_FILE and INPUT_GLOB)")
	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "mapping file to read (default: <output dir>/urls-map.csv)")
	cmd.Flags().BoolVar(&skipFailed, "skip-failed", false, "leave URLs whose transfer failed unchanged")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the rewrites without writing")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a diff of each rewrite; implies --dry-run")

	return cmd
}
