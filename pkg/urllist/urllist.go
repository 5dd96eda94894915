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

// Package urllist reads and writes the single-column URL list CSVs passed between stages.
package urllist

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Header labels the URL column. The name is kept from the original artifact format.
const Header = "Firebase URLs"

// ErrHeaderMismatch is returned when a CSV's header is not the one a stage expects.
var ErrHeaderMismatch = errors.Base("unexpected csv header")

// 📄 List is a CSV file held in memory: a header row and its data rows.
type List struct {
	Header []string
	Rows   [][]string
}

// NewList builds a single-column list.
func NewList(header string, urls []string) *List {
	rows := make([][]string, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, []string{u})
	}
	return &List{Header: []string{header}, Rows: rows}
}

// Read loads the CSV at path. Rows may have any number of columns.
func Read(path string) (*List, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.Errorf("%s is empty, expected a header row", path)
	}
	if err != nil {
		return nil, errors.Errorf("reading header of %s: %w", path, err)
	}

	list := &List{Header: header}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", path, err)
		}
		list.Rows = append(list.Rows, row)
	}
	return list, nil
}

// Expect checks the header matches want, column for column.
func (l *List) Expect(want ...string) error {
	if len(l.Header) != len(want) {
		return errors.Errorf("%w: got %q, want %q", ErrHeaderMismatch, l.Header, want)
	}
	for i := range want {
		if strings.TrimSpace(l.Header[i]) != want[i] {
			return errors.Errorf("%w: got %q, want %q", ErrHeaderMismatch, l.Header, want)
		}
	}
	return nil
}

// URLs returns the trimmed first column. Rows whose first column is empty are
// skipped with a warning.
func (l *List) URLs(ctx context.Context) []string {
	urls := make([]string, 0, len(l.Rows))
	for i, row := range l.Rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			zerolog.Ctx(ctx).Warn().Int("row", i+2).Msg("skipping url list row with an empty first column")
			continue
		}
		urls = append(urls, strings.TrimSpace(row[0]))
	}
	return urls
}

// Write stores the list at path, creating parent directories.
func Write(path string, l *List) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	fh, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	if err := w.Write(l.Header); err != nil {
		return errors.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(l.Rows); err != nil {
		return errors.Errorf("writing rows: %w", err)
	}
	if err := fh.Close(); err != nil {
		return errors.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// WriteURLs writes a single-column list with the given header.
func WriteURLs(path, header string, urls []string) error {
	return Write(path, NewList(header, urls))
}
