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

package status

import (
	"context"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📊 URLStatus is what happened to one source URL during a transfer
type URLStatus int

const (
	StatusUnknown        URLStatus = iota
	StatusMigrated                 // downloaded and uploaded
	StatusResumed                  // already in the mapping file
	StatusDuplicate                // seen earlier in the same input
	StatusDownloadFailed           // recorded as "Failed to download"
	StatusUploadFailed             // recorded as "Failed to upload"
)

// String returns a string representation of URLStatus
func (s URLStatus) String() string {
	switch s {
	case StatusMigrated:
		return "migrated"
	case StatusResumed:
		return "resumed"
	case StatusDuplicate:
		return "duplicate"
	case StatusDownloadFailed:
		return "download failed"
	case StatusUploadFailed:
		return "upload failed"
	default:
		return "unknown"
	}
}

// Failed reports whether the status is one of the failure outcomes.
func (s URLStatus) Failed() bool {
	return s == StatusDownloadFailed || s == StatusUploadFailed
}

// 📄 URLInfo describes one processed URL
type URLInfo struct {
	URL         string    // source URL
	Key         string    // destination object key, when derived
	Destination string    // public destination URL on success
	Status      URLStatus // outcome
	Bytes       int64     // staged size
	Attempts    int       // download requests made
	Error       error     // cause of a failure
}

// 📈 Reporter tracks per-URL outcomes and reports progress
type Reporter interface {
	StartOperation(ctx context.Context, name string, total int)
	TrackURL(ctx context.Context, info URLInfo)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements Reporter, printing to a console and mirroring to zerolog
type Manager struct {
	console   io.Writer
	formatter Formatter

	mu        sync.Mutex
	name      string
	total     int
	processed int
	counts    map[URLStatus]int
	bytes     int64
}

var _ Reporter = (*Manager)(nil)

// 🏭 New creates a new status manager writing to console
func New(console io.Writer) *Manager {
	return &Manager{
		console:   console,
		formatter: NewDefaultFormatter(),
		counts:    make(map[URLStatus]int),
	}
}

// WithFormatter replaces the default formatter.
func (m *Manager) WithFormatter(f Formatter) *Manager {
	m.formatter = f
	return m
}

func (m *Manager) printer(s URLStatus) *pterm.PrefixPrinter {
	var p pterm.PrefixPrinter
	switch s {
	case StatusMigrated:
		p = pterm.Success
	case StatusResumed, StatusDuplicate:
		p = pterm.Description
	case StatusDownloadFailed, StatusUploadFailed:
		p = pterm.Warning
	default:
		p = pterm.Info
	}
	return p.WithWriter(m.console)
}

func (m *Manager) StartOperation(ctx context.Context, name string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.name = name
	m.total = total
	m.processed = 0
	m.bytes = 0
	m.counts = make(map[URLStatus]int)

	msg := m.formatter.FormatProgress(0, total)
	pterm.Info.WithWriter(m.console).Println(name + " " + msg)
	zerolog.Ctx(ctx).Info().Str("operation", name).Int("total", total).Msg(msg)
}

func (m *Manager) TrackURL(ctx context.Context, info URLInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	m.counts[info.Status]++
	m.bytes += info.Bytes

	msg := m.formatter.FormatURL(info)
	progress := m.formatter.FormatProgress(m.processed, m.total)
	m.printer(info.Status).Println(FormatURLLine(info) + "  " + progress)

	evt := zerolog.Ctx(ctx).Info()
	if info.Status.Failed() {
		evt = zerolog.Ctx(ctx).Warn().Err(info.Error)
	}
	evt.Str("url", info.URL).
		Str("key", info.Key).
		Str("status", info.Status.String()).
		Int64("bytes", info.Bytes).
		Int("attempts", info.Attempts).
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatSummary(m.name, m.counts, m.bytes)
	p := pterm.Success
	if m.counts[StatusDownloadFailed]+m.counts[StatusUploadFailed] > 0 {
		p = pterm.Warning
	}
	p.WithWriter(m.console).Println(msg)

	zerolog.Ctx(ctx).Info().
		Str("operation", m.name).
		Int("processed", m.processed).
		Int("total", m.total).
		Int("migrated", m.counts[StatusMigrated]).
		Int("download_failed", m.counts[StatusDownloadFailed]).
		Int("upload_failed", m.counts[StatusUploadFailed]).
		Int64("bytes", m.bytes).
		Msg(msg)
}

// Counts returns how many URLs ended in each status during the current operation.
func (m *Manager) Counts() map[URLStatus]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[URLStatus]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}
