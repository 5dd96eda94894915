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

package mapping

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookgo/atomicfile"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/urllist"
)

// Column names of the mapping file. The names are kept from the original artifact format.
const (
	SourceHeader      = "Firebase URL"
	DestinationHeader = "R2 URL"
)

// Serialized forms of the failure outcomes.
const (
	DownloadFailedSentinel = "Failed to download"
	UploadFailedSentinel   = "Failed to upload"
)

// Outcome is the result of migrating one source URL.
type Outcome int

const (
	Success Outcome = iota
	DownloadFailed
	UploadFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case DownloadFailed:
		return "download failed"
	case UploadFailed:
		return "upload failed"
	default:
		return "unknown"
	}
}

// 📌 Entry pairs a source URL with what became of it
type Entry struct {
	Source  string
	Outcome Outcome
	// Destination is the public URL. Only set when Outcome is Success.
	Destination string
}

// Succeeded builds a successful entry.
func Succeeded(source, destination string) Entry {
	return Entry{Source: source, Outcome: Success, Destination: destination}
}

// Failed builds an entry for a failed migration.
func Failed(source string, outcome Outcome) Entry {
	return Entry{Source: source, Outcome: outcome}
}

// Value is the destination column as written to disk.
func (e Entry) Value() string {
	switch e.Outcome {
	case DownloadFailed:
		return DownloadFailedSentinel
	case UploadFailed:
		return UploadFailedSentinel
	default:
		return e.Destination
	}
}

// ParseEntry reverses Value.
func ParseEntry(source, value string) Entry {
	switch value {
	case DownloadFailedSentinel:
		return Failed(source, DownloadFailed)
	case UploadFailedSentinel:
		return Failed(source, UploadFailed)
	default:
		return Succeeded(source, value)
	}
}

// 📒 Log is the in-memory mapping file: entries in append order plus the set of sources seen
type Log struct {
	path    string
	entries []Entry
	seen    map[string]bool

	// Skipped counts malformed rows dropped while loading.
	Skipped int
}

// New returns an empty log that persists to path.
func New(path string) *Log {
	return &Log{path: path, seen: map[string]bool{}}
}

// Load reads the mapping file at path. A missing file yields an empty log.
// Rows without exactly two columns, or with an empty source or destination, are
// skipped with a warning and counted in Skipped. Their sources count as not yet
// migrated, and the next Save drops them from the file.
// A file whose header is not the mapping header is an error.
func Load(ctx context.Context, path string) (*Log, error) {
	l := New(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no mapping file yet, starting empty")
		return l, nil
	}

	list, err := urllist.Read(path)
	if err != nil {
		return nil, errors.Errorf("reading mapping file: %w", err)
	}
	if err := list.Expect(SourceHeader, DestinationHeader); err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}

	for i, row := range list.Rows {
		if len(row) != 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			zerolog.Ctx(ctx).Warn().Str("path", path).Int("row", i+2).Int("columns", len(row)).Msg("skipping malformed mapping row")
			l.Skipped++
			continue
		}
		l.Append(ParseEntry(strings.TrimSpace(row[0]), strings.TrimSpace(row[1])))
	}

	return l, nil
}

// Path is where Save writes.
func (l *Log) Path() string { return l.path }

// Append records an entry. It does not persist.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
	l.seen[e.Source] = true
}

// Completed reports whether source already has an entry.
func (l *Log) Completed(source string) bool {
	return l.seen[source]
}

// Entries returns the entries in append order.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Len is the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Table returns source → entry. Later entries for the same source win.
func (l *Log) Table() map[string]Entry {
	table := make(map[string]Entry, len(l.entries))
	for _, e := range l.entries {
		table[e.Source] = e
	}
	return table
}

// 💾 Save rewrites the whole mapping file. The previous file is only replaced once
// the new one is fully written, so an interrupted save leaves the last checkpoint intact.
func (l *Log) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	f, err := atomicfile.New(l.path, 0o644)
	if err != nil {
		return errors.Errorf("opening mapping file for write: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{SourceHeader, DestinationHeader}); err != nil {
		_ = f.Abort()
		return errors.Errorf("writing header: %w", err)
	}
	for _, e := range l.entries {
		if err := w.Write([]string{e.Source, e.Value()}); err != nil {
			_ = f.Abort()
			return errors.Errorf("writing entry for %s: %w", e.Source, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Abort()
		return errors.Errorf("flushing mapping file: %w", err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("committing mapping file: %w", err)
	}
	return nil
}

// Counts tallies entries by outcome.
func (l *Log) Counts() map[Outcome]int {
	counts := map[Outcome]int{}
	for _, e := range l.entries {
		counts[e.Outcome]++
	}
	return counts
}
