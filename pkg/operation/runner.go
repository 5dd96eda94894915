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

package operation

import (
	"context"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/log"
)

// 🏃 OperationRunner executes operations one after another
type OperationRunner struct {
	logger *log.Logger
	now    func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *log.Logger) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		now:    time.Now,
	}
}

// 🏃 Run executes ops in order and stops at the first error.
// The runner's logger is placed in the context each operation receives.
func (r *OperationRunner) Run(ctx context.Context, ops ...Operation) error {
	ctx = log.NewContext(ctx, r.logger)

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("%s not started: %w", op.Name(), err)
		}

		stage := log.StageOperation{Name: op.Name()}
		if d, ok := op.(Describer); ok {
			stage.Input, stage.Output = d.Paths()
		}

		r.logger.StartStage(ctx, stage)
		start := r.now()
		err := op.Execute(ctx)
		r.logger.EndStage(ctx)

		if err != nil {
			return errors.Errorf("%s: %w", op.Name(), err)
		}

		r.logger.Successf("%s finished in %s", op.Name(), r.now().Sub(start).Round(time.Millisecond))
		r.logger.LogNewline()
	}

	return nil
}
