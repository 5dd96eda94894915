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

// NewTransferCmd creates the transfer command
func NewTransferCmd(o *opts.RootOpts) *cobra.Command {
	var list, mappingPath string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy every listed file to the destination store and record where it went",
		Long: `Transfer downloads each URL of the list and uploads it to the destination
bucket. It will:
1. Skip every URL the mapping file already has an entry for
2. Retry 5xx responses and network errors with exponential backoff
3. Record the public URL, or a failure marker, for each URL
4. Save the mapping file after every URL

Interrupt it at any point; the next run picks up where it stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := o.Require(config.RequireDestination); err != nil {
				return err
			}
			if list == "" {
				list = o.Config.URLListPath()
			}
			if mappingPath == "" {
				mappingPath = o.Config.MappingPath()
			}

			engine, err := o.Engine(ctx)
			if err != nil {
				return err
			}

			o.Console.Header("transferring to " + o.Config.Destination.Bucket)

			return o.Runner().Run(ctx, &operation.TransferOperation{
				Engine:      engine,
				ListPath:    list,
				MappingPath: mappingPath,
			})
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", "", "URL list to migrate (default: <output dir>/<input stem>.csv)")
	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "mapping file to resume from and write to (default: <output dir>/urls-map.csv)")

	return cmd
}
