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
	"strings"

	"github.com/spf13/cobra"

	"github.com/walteh/urlmigrate/cmd/urlmigrate/opts"
	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/operation"
)

// NewExtractCmd creates the extract command
func NewExtractCmd(o *opts.RootOpts) *cobra.Command {
	var (
		input  string
		output string
		dedupe bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Gather source URLs from documents into a URL list",
		Long: `Extract scans each selected document for URLs matching the source pattern.
It will:
1. Split URLs that markdown glued together
2. Strip trailing } \ and %7D left over from the surrounding text
3. Write them in encounter order to a one-column CSV

Documents come from INPUT_FILE, or every match of INPUT_GLOB in the input dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input != "" {
				o.Config.InputFile = input
				o.Config.InputGlob = ""
			}
			if err := o.Require(config.RequireDocument); err != nil {
				return err
			}

			docs, err := o.Config.Documents()
			if err != nil {
				return err
			}
			if output == "" {
				output = o.Config.URLListPath()
			}

			o.Console.Header("extracting from " + describeDocs(docs))

			return o.Runner().Run(cmd.Context(), &operation.ExtractOperation{
				Pattern:   o.Config.SourcePattern,
				Documents: docs,
				Output:    output,
				Dedupe:    dedupe,
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "document name in the input dir (overrides INPUT_FILE and INPUT_GLOB)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "URL list to write (default: <output dir>/<input stem>.csv)")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "drop repeated URLs after extracting")

	return cmd
}

func describeDocs(docs []string) string {
	if len(docs) == 1 {
		return filepath.Base(docs[0])
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, filepath.Base(d))
	}
	return strings.Join(names, ", ")
}
