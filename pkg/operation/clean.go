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

	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/urllist"
)

// 🧹 DedupeOperation drops repeated rows from a URL list, keeping first occurrences
type DedupeOperation struct {
	Input string
	// Output defaults to Input
	Output string
}

func (o *DedupeOperation) Name() string { return "dedupe" }

func (o *DedupeOperation) Paths() (string, string) { return o.Input, o.output() }

func (o *DedupeOperation) output() string {
	if o.Output == "" {
		return o.Input
	}
	return o.Output
}

func (o *DedupeOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)
	out := o.output()
	existed := fileExists(out)

	stats, err := urllist.DedupeFile(ctx, o.Input, out)
	if err != nil {
		return err
	}

	console.Infof("%d rows, %d unique, %d duplicates removed", stats.Original, stats.Unique, stats.Original-stats.Unique)
	console.LogFileOperation(ctx, log.FileOperation{
		Path:       out,
		Kind:       log.KindURLList,
		Status:     fmt.Sprintf("%d urls", stats.Unique),
		IsNew:      !existed,
		IsModified: existed,
		Count:      stats.Unique,
	})
	return nil
}

// 🧽 CleanOperation strips trailing delimiter noise from every URL in a list
type CleanOperation struct {
	Input string
	// Output defaults to Input
	Output string
}

func (o *CleanOperation) Name() string { return "clean" }

func (o *CleanOperation) Paths() (string, string) { return o.Input, o.output() }

func (o *CleanOperation) output() string {
	if o.Output == "" {
		return o.Input
	}
	return o.Output
}

func (o *CleanOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)
	out := o.output()
	existed := fileExists(out)

	changed, err := urllist.CleanFile(ctx, o.Input, out)
	if err != nil {
		return err
	}

	console.Infof("%d urls cleaned", changed)
	console.LogFileOperation(ctx, log.FileOperation{
		Path:       out,
		Kind:       log.KindURLList,
		Status:     fmt.Sprintf("%d changed", changed),
		IsNew:      !existed,
		IsModified: existed,
		Count:      changed,
	})
	return nil
}

// ⚖️ CompareOperation reports the set difference between two URL lists
type CompareOperation struct {
	First  string
	Second string

	OutSmaller string
	OutBigger  string

	// Result holds the comparison once Execute succeeds
	Result *urllist.CompareResult
}

func (o *CompareOperation) Name() string { return "compare" }

func (o *CompareOperation) Paths() (string, string) {
	return o.First + ", " + o.Second, o.OutSmaller + ", " + o.OutBigger
}

func (o *CompareOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)

	res, err := urllist.CompareFiles(ctx, o.First, o.Second, o.OutSmaller, o.OutBigger)
	if err != nil {
		return err
	}
	o.Result = res

	console.Infof("%s: %d unique urls", res.FirstName, res.FirstUnique)
	console.Infof("%s: %d unique urls", res.SecondName, res.SecondUnique)
	console.Infof("difference in unique urls: %d", res.CountDifference())
	console.Infof("%d urls of %s missing from %s", len(res.UnmatchedInSmaller), res.SmallerName, res.BiggerName)
	console.Infof("%d urls of %s missing from %s", len(res.UnmatchedInBigger), res.BiggerName, res.SmallerName)

	for _, report := range []struct {
		path string
		n    int
	}{
		{o.OutSmaller, len(res.UnmatchedInSmaller)},
		{o.OutBigger, len(res.UnmatchedInBigger)},
	} {
		console.LogFileOperation(ctx, log.FileOperation{
			Path:   report.path,
			Kind:   log.KindReport,
			Status: fmt.Sprintf("%d unmatched", report.n),
			IsNew:  true,
			Count:  report.n,
		})
	}
	return nil
}
