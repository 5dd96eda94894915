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
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/transfer"
)

// 🎯 Operation is one batch stage of the migration
type Operation interface {
	// Name is the short stage name shown in headers
	Name() string
	// Execute runs the stage to completion
	Execute(ctx context.Context) error
}

// 📋 Describer is implemented by operations that can say what they read and write
type Describer interface {
	Paths() (input string, output string)
}

// 🏭 Pipeline builds the full migration from cfg: extract and dedupe, transfer, then
// rewrite every selected document. The list of documents is resolved once, up front.
func Pipeline(cfg *config.Config, engine *transfer.Engine, diffOut io.Writer) ([]Operation, error) {
	if engine == nil {
		return nil, errors.New("transfer engine is required")
	}

	docs, err := cfg.Documents()
	if err != nil {
		return nil, errors.Errorf("selecting documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, errors.Errorf("no documents match %s in %s", cfg.InputGlob, cfg.InputDir)
	}

	listPath := cfg.URLListPath()

	return []Operation{
		&ExtractOperation{
			Pattern:   cfg.SourcePattern,
			Documents: docs,
			Output:    listPath,
			Dedupe:    true,
		},
		&TransferOperation{
			Engine:      engine,
			ListPath:    listPath,
			MappingPath: cfg.MappingPath(),
		},
		&ReplaceOperation{
			MappingPath: cfg.MappingPath(),
			Documents:   docs,
			OutputFor:   cfg.UpdatedPath,
			DiffOut:     diffOut,
		},
	}, nil
}
