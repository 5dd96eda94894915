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
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/extract"
	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/urllist"
)

// 🔍 ExtractOperation gathers every source URL from the documents into one URL list
type ExtractOperation struct {
	Pattern   string
	Documents []string
	Output    string

	// Dedupe rewrites the list without repeated URLs once it is written
	Dedupe bool
}

func (o *ExtractOperation) Name() string { return "extract" }

func (o *ExtractOperation) Paths() (string, string) {
	return strings.Join(o.Documents, ", "), o.Output
}

func (o *ExtractOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)

	if len(o.Documents) == 0 {
		return errors.New("no documents to extract from")
	}

	ext, err := extract.New(o.Pattern)
	if err != nil {
		return err
	}

	existed := fileExists(o.Output)

	found, err := ext.ToFile(ctx, o.Output, o.Documents...)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int("urls", found).Int("documents", len(o.Documents)).Msg("extracted urls")

	count := found
	if o.Dedupe {
		stats, err := urllist.DedupeFile(ctx, o.Output, o.Output)
		if err != nil {
			return err
		}
		count = stats.Unique
		console.Infof("found %d urls, %d unique", stats.Original, stats.Unique)
	} else {
		console.Infof("found %d urls", found)
	}

	console.LogFileOperation(ctx, log.FileOperation{
		Path:       o.Output,
		Kind:       log.KindURLList,
		Status:     fmt.Sprintf("%d urls", count),
		IsNew:      !existed,
		IsModified: existed,
		Count:      count,
	})

	if found == 0 {
		console.Warning("no urls matched the source pattern")
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
