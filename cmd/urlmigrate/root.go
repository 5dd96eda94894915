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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/cmd/urlmigrate/commands"
	"github.com/walteh/urlmigrate/cmd/urlmigrate/opts"
	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/log"
)

// configCandidates are tried in order when --config is not given
var configCandidates = []string{
	".urlmigrate.yaml",
	".urlmigrate.yml",
	".urlmigrate.hcl",
	".urlmigrate.json",
	".urlmigrate",
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: first .urlmigrate[.yaml|.yml|.hcl|.json] in the working directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&o.EnvFiles, "env-file", []string{".env"}, "env files to load; variables already set win")
}

// setupLogging puts a zerolog logger in ctx at the level the flags ask for
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// discoverConfig returns the first config candidate present in dir, or "" for none
func discoverConfig(dir string) string {
	for _, name := range configCandidates {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// loadConfig builds the config: defaults, then the config file, then the environment
func loadConfig(ctx context.Context, o *opts.RootOpts, lookup func(string) (string, bool)) error {
	if err := config.LoadDotEnv(ctx, o.EnvFiles...); err != nil {
		return err
	}

	path := o.ConfigFile
	if path == "" {
		path = discoverConfig(".")
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	cfg.ApplyEnv(lookup)
	cfg.Normalize()

	zerolog.Ctx(ctx).Debug().
		Str("config_file", path).
		Str("input_dir", cfg.InputDir).
		Str("output_dir", cfg.OutputDir).
		Msg("configuration loaded")

	o.Config = cfg
	return nil
}

// newRootCmd builds the command tree around o
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlmigrate",
		Short: "Move files referenced by URL from one object store to another and rewrite the documents",
		Long: `urlmigrate moves every file a set of documents links to from a source object
store to an S3-compatible destination, then rewrites the documents to point at the
new location. Each stage writes a file the next one reads, so any stage can be
rerun on its own:

  extract   documents      → URL list
  transfer  URL list       → mapping file (resumable)
  replace   mapping file   → rewritten documents
  run       all of the above`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), o.Debug)
			cmd.SetContext(ctx)

			mirror := zerolog.Disabled
			if o.Debug {
				mirror = zerolog.DebugLevel
			}
			o.Console = log.New(cmd.OutOrStdout(), mirror)

			return loadConfig(ctx, o, os.LookupEnv)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewExtractCmd(o),
		commands.NewDedupeCmd(o),
		commands.NewCleanCmd(o),
		commands.NewTransferCmd(o),
		commands.NewReplaceCmd(o),
		commands.NewCompareCmd(o),
		commands.NewRunCmd(o),
		newVersionCmd(),
	)

	return cmd
}
