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

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var skipFailed bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, transfer and rewrite in one go",
		Long: `Run chains the stages: extract (deduplicated), transfer, replace.
It stops at the first stage that fails. Every stage leaves its file behind, so
running it again resumes the transfer instead of starting over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.Require(config.RequireDocument, config.RequireDestination); err != nil {
				return err
			}

			engine, err := o.Engine(ctx)
			if err != nil {
				return err
			}

			ops, err := operation.Pipeline(o.Config, engine, nil)
			if err != nil {
				return err
			}
			for _, op := range ops {
				if r, ok := op.(*operation.ReplaceOperation); ok {
					r.SkipFailed = skipFailed
				}
			}

			o.Console.Header("migrating to " + o.Config.Destination.Bucket)

			if err := o.Runner().Run(ctx, ops...); err != nil {
				return err
			}

			o.Console.Success("migration complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipFailed, "skip-failed", false, "leave URLs whose transfer failed unchanged in the rewritten documents")

	return cmd
}
