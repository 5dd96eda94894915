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

package urllist

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Headers written on the two compare outputs.
const (
	UnmatchedSmallerHeader = "Unmatched URLs in Smaller CSV"
	UnmatchedBiggerHeader  = "Unmatched URLs in Bigger CSV"
)

// trailingNoise is stripped from the end of URLs, in this order, until none remain.
var trailingNoise = []string{"}", `\`, "%7D"}

// 🧹 CleanURL trims whitespace and the trailing `}`, `\` and `%7D` sequences
// that leak into matches from surrounding JSON and markdown.
func CleanURL(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		before := s
		for _, suffix := range trailingNoise {
			s = strings.TrimSuffix(s, suffix)
		}
		s = strings.TrimSpace(s)
		if s == before {
			return s
		}
	}
}

// DedupeStats reports a deduplication pass.
type DedupeStats struct {
	Original int
	Unique   int
}

// Dedupe drops rows equal in every column to an earlier row. First occurrences keep their order.
func Dedupe(l *List) (*List, DedupeStats) {
	seen := make(map[string]bool, len(l.Rows))
	out := &List{Header: l.Header, Rows: make([][]string, 0, len(l.Rows))}
	for _, row := range l.Rows {
		key := strings.Join(row, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, row)
	}
	return out, DedupeStats{Original: len(l.Rows), Unique: len(out.Rows)}
}

// DedupeFile deduplicates the list at in and writes it to out. in and out may be the same path.
func DedupeFile(ctx context.Context, in, out string) (DedupeStats, error) {
	list, err := Read(in)
	if err != nil {
		return DedupeStats{}, errors.Errorf("reading url list: %w", err)
	}

	deduped, stats := Dedupe(list)
	if err := Write(out, deduped); err != nil {
		return DedupeStats{}, errors.Errorf("writing deduplicated list: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", out).
		Int("original", stats.Original).
		Int("unique", stats.Unique).
		Msg("deduplicated url list")
	return stats, nil
}

// Clean applies CleanURL to the first column of every row. It returns the number of rows changed.
func Clean(l *List) (*List, int) {
	out := &List{Header: l.Header, Rows: make([][]string, 0, len(l.Rows))}
	changed := 0
	for _, row := range l.Rows {
		if len(row) == 0 {
			out.Rows = append(out.Rows, row)
			continue
		}
		cleaned := append([]string{CleanURL(row[0])}, row[1:]...)
		if cleaned[0] != row[0] {
			changed++
		}
		out.Rows = append(out.Rows, cleaned)
	}
	return out, changed
}

// CleanFile cleans the list at in and writes it to out, header untouched.
func CleanFile(ctx context.Context, in, out string) (int, error) {
	list, err := Read(in)
	if err != nil {
		return 0, errors.Errorf("reading url list: %w", err)
	}
	cleaned, changed := Clean(list)
	if err := Write(out, cleaned); err != nil {
		return 0, errors.Errorf("writing cleaned list: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", out).Int("changed", changed).Msg("cleaned url list")
	return changed, nil
}

// 🔍 CompareResult describes how two URL lists differ.
type CompareResult struct {
	FirstName  string
	SecondName string

	// FirstUnique and SecondUnique count distinct URLs per list
	FirstUnique  int
	SecondUnique int

	// SmallerName is the list with fewer distinct URLs. Ties go to the first list.
	SmallerName string
	BiggerName  string

	// UnmatchedInSmaller are URLs of the smaller list missing from the bigger one, sorted
	UnmatchedInSmaller []string
	// UnmatchedInBigger are URLs of the bigger list missing from the smaller one, sorted
	UnmatchedInBigger []string
}

// CountDifference is the absolute difference in distinct URL counts.
func (r *CompareResult) CountDifference() int {
	if r.FirstUnique > r.SecondUnique {
		return r.FirstUnique - r.SecondUnique
	}
	return r.SecondUnique - r.FirstUnique
}

func toSet(urls []string) map[string]bool {
	set := make(map[string]bool, len(urls))
	for _, u := range urls {
		set[u] = true
	}
	return set
}

func minus(a, b map[string]bool) []string {
	out := []string{}
	for u := range a {
		if !b[u] {
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}

// Compare computes the set differences between two URL lists.
func Compare(firstName string, first []string, secondName string, second []string) *CompareResult {
	a, b := toSet(first), toSet(second)

	res := &CompareResult{
		FirstName:    firstName,
		SecondName:   secondName,
		FirstUnique:  len(a),
		SecondUnique: len(b),
	}

	smaller, bigger := a, b
	res.SmallerName, res.BiggerName = firstName, secondName
	if len(a) > len(b) {
		smaller, bigger = b, a
		res.SmallerName, res.BiggerName = secondName, firstName
	}

	res.UnmatchedInSmaller = minus(smaller, bigger)
	res.UnmatchedInBigger = minus(bigger, smaller)
	return res
}

// CompareFiles compares the first columns of two CSVs and writes each difference to its own file.
func CompareFiles(ctx context.Context, first, second, outSmaller, outBigger string) (*CompareResult, error) {
	firstList, err := Read(first)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", first, err)
	}
	secondList, err := Read(second)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", second, err)
	}

	res := Compare(first, firstList.URLs(ctx), second, secondList.URLs(ctx))

	if err := WriteURLs(outSmaller, UnmatchedSmallerHeader, res.UnmatchedInSmaller); err != nil {
		return nil, errors.Errorf("writing unmatched urls of smaller list: %w", err)
	}
	if err := WriteURLs(outBigger, UnmatchedBiggerHeader, res.UnmatchedInBigger); err != nil {
		return nil, errors.Errorf("writing unmatched urls of bigger list: %w", err)
	}

	return res, nil
}
