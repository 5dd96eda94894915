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
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/mapping"
	"github.com/walteh/urlmigrate/pkg/text"
)

// ✏️ ReplaceOperation rewrites documents, swapping every mapped source URL for its destination.
// Each rewrite goes to a new file; the source documents are never touched.
type ReplaceOperation struct {
	MappingPath string
	Documents   []string
	// OutputFor names the rewritten copy of a document
	OutputFor func(doc string) string

	// SkipFailed leaves URLs whose transfer failed as they are
	SkipFailed bool
	// DryRun computes every rewrite without writing
	DryRun bool
	// DiffOut, when set, receives a diff of each rewrite. Implies DryRun.
	DiffOut io.Writer

	// Results holds the outcome per document once Execute succeeds
	Results map[string]*text.ReplacementResult
}

func (o *ReplaceOperation) Name() string { return "replace" }

func (o *ReplaceOperation) Paths() (string, string) {
	outs := make([]string, 0, len(o.Documents))
	for _, d := range o.Documents {
		if o.OutputFor != nil {
			outs = append(outs, o.OutputFor(d))
		}
	}
	return strings.Join(o.Documents, ", "), strings.Join(outs, ", ")
}

func (o *ReplaceOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)
	logger := zerolog.Ctx(ctx)

	if len(o.Documents) == 0 {
		return errors.New("no documents to rewrite")
	}
	if o.OutputFor == nil {
		return errors.New("no output naming for rewritten documents")
	}
	if !fileExists(o.MappingPath) {
		return errors.Errorf("mapping file %s does not exist; run transfer first", o.MappingPath)
	}

	mlog, err := mapping.Load(ctx, o.MappingPath)
	if err != nil {
		return err
	}
	if mlog.Skipped > 0 {
		console.Warningf("ignored %d malformed rows in %s", mlog.Skipped, o.MappingPath)
	}

	rules := text.RulesFromMapping(mlog.Entries())
	replacer := text.NewSimpleTextReplacer().WithSkipFailed(o.SkipFailed)
	if err := replacer.ValidateRules(rules); err != nil {
		return errors.Errorf("invalid mapping: %w", err)
	}
	console.Infof("loaded %d mappings from %s", len(rules), o.MappingPath)

	dryRun := o.DryRun || o.DiffOut != nil
	o.Results = make(map[string]*text.ReplacementResult, len(o.Documents))

	for _, doc := range o.Documents {
		out := o.OutputFor(doc)
		existed := fileExists(out)

		result, err := text.ReplaceFile(ctx, replacer, doc, out, rules, dryRun)
		if err != nil {
			return err
		}
		o.Results[doc] = result

		logger.Debug().
			Str("document", doc).
			Int("replacements", result.ReplacementCount).
			Int("sentinels", result.SentinelCount).
			Msg("rewrote document")

		if o.DiffOut != nil && result.WasModified {
			fmt.Fprintf(o.DiffOut, "--- %s\n+++ %s\n", doc, out)
			fmt.Fprintln(o.DiffOut, text.Diff(string(result.OriginalContent), string(result.ModifiedContent)))
		}

		st := fmt.Sprintf("%d replaced", result.ReplacementCount)
		switch {
		case dryRun:
			st = "dry run"
		case !result.WasModified:
			st = "no change"
		}
		console.LogFileOperation(ctx, log.FileOperation{
			Path:       out,
			Kind:       log.KindDocument,
			Status:     st,
			IsNew:      !existed,
			IsModified: existed && result.WasModified,
			IsDryRun:   dryRun,
			Count:      result.ReplacementCount,
		})

		if result.SentinelCount > 0 {
			console.Warningf("%d failure markers written into %s", result.SentinelCount, out)
		}
		if result.SkippedFailed > 0 {
			console.Infof("%d urls with failed transfers left unchanged in %s", result.SkippedFailed, out)
		}
	}

	return nil
}
