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

package opts

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/operation"
	"github.com/walteh/urlmigrate/pkg/remote"
	"github.com/walteh/urlmigrate/pkg/status"
	"github.com/walteh/urlmigrate/pkg/store"
	"github.com/walteh/urlmigrate/pkg/transfer"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	EnvFiles   []string
	Debug      bool

	// Config is set once flags are parsed, before any command runs
	Config  *config.Config
	Console *log.Logger
}

// Require checks the loaded config has what a command needs.
func (o *RootOpts) Require(reqs ...config.Requirement) error {
	if o.Config == nil {
		return errors.New("configuration not loaded")
	}
	if err := o.Config.Validate(reqs...); err != nil {
		return errors.Errorf("invalid configuration: %w", err)
	}
	if err := o.Config.EnsureDirs(); err != nil {
		return err
	}
	return nil
}

// Runner returns a runner that reports to the console.
func (o *RootOpts) Runner() *operation.OperationRunner {
	return operation.NewRunner(o.Console)
}

// Engine wires the HTTP downloader and the destination store into a transfer engine.
func (o *RootOpts) Engine(ctx context.Context) (*transfer.Engine, error) {
	uploader, err := store.New(ctx, o.Config.Destination)
	if err != nil {
		return nil, err
	}
	downloader := remote.NewHTTPDownloader(o.Config.Transfer)
	return transfer.New(downloader, uploader, status.New(os.Stdout), transfer.OptionsFromConfig(o.Config)), nil
}
