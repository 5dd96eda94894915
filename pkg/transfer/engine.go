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

package transfer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/mapping"
	"github.com/walteh/urlmigrate/pkg/remote"
	"github.com/walteh/urlmigrate/pkg/status"
	"github.com/walteh/urlmigrate/pkg/store"
	"github.com/walteh/urlmigrate/pkg/urllist"
)

// Options are the settings the engine reads from the config.
type Options struct {
	DownloadDir string
	PublicURL   string
	Delay       time.Duration
	Keys        *Keys
}

// OptionsFromConfig picks the engine settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DownloadDir: cfg.DownloadDir,
		PublicURL:   cfg.Destination.PublicURL,
		Delay:       cfg.Transfer.Delay.Std(),
		Keys:        NewKeys(cfg.KeyEscapes, cfg.StagingSeparator),
	}
}

// Summary counts what a run did.
type Summary struct {
	Total          int
	Migrated       int
	Resumed        int
	Duplicates     int
	DownloadFailed int
	UploadFailed   int
	Bytes          int64
}

// Processed is the number of URLs that produced a new mapping entry.
func (s *Summary) Processed() int {
	return s.Migrated + s.DownloadFailed + s.UploadFailed
}

// 🚚 Engine moves each source URL to the destination store, once
type Engine struct {
	downloader remote.Downloader
	uploader   store.Uploader
	reporter   status.Reporter
	opts       Options

	// wait pauses between URLs. Replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// New builds an engine.
func New(downloader remote.Downloader, uploader store.Uploader, reporter status.Reporter, opts Options) *Engine {
	if opts.Keys == nil {
		opts.Keys = NewKeys(config.DefaultKeyEscapes(), config.DefaultStagingSeparator)
	}
	return &Engine{
		downloader: downloader,
		uploader:   uploader,
		reporter:   reporter,
		opts:       opts,
		wait:       sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RunFile migrates every URL in the list at listPath, checkpointing into the mapping file at mappingPath.
func (e *Engine) RunFile(ctx context.Context, listPath, mappingPath string) (*Summary, error) {
	list, err := urllist.Read(listPath)
	if err != nil {
		return nil, errors.Errorf("reading url list: %w", err)
	}
	if err := list.Expect(urllist.Header); err != nil {
		return nil, errors.Errorf("loading %s: %w", listPath, err)
	}

	log, err := mapping.Load(ctx, mappingPath)
	if err != nil {
		return nil, err
	}
	if log.Skipped > 0 {
		zerolog.Ctx(ctx).Warn().Int("rows", log.Skipped).Str("path", mappingPath).Msg("ignored malformed mapping rows")
	}

	return e.Run(ctx, list.URLs(ctx), log)
}

// 🔄 Run migrates urls not yet in log. Per-URL failures are recorded in log, never returned.
// The log is saved after every new entry. An error means the checkpoint could not be
// written or ctx was cancelled; entries saved before that point are durable.
func (e *Engine) Run(ctx context.Context, urls []string, log *mapping.Log) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	sum := &Summary{Total: len(urls)}

	if err := os.MkdirAll(e.opts.DownloadDir, 0755); err != nil {
		return nil, errors.Errorf("creating download directory: %w", err)
	}

	e.reporter.StartOperation(ctx, "transfer", len(urls))
	defer e.reporter.FinishOperation(ctx)

	// entries from earlier runs; anything completed later in this run is a duplicate
	resumed := make(map[string]bool, len(urls))
	for _, u := range urls {
		if log.Completed(u) {
			resumed[u] = true
		}
	}
	logger.Info().Int("urls", len(urls)).Int("resuming", len(resumed)).Int("mapped", log.Len()).Msg("starting transfer")

	attempted := 0
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return sum, errors.Errorf("transfer interrupted: %w", err)
		}

		if log.Completed(u) {
			st := status.StatusResumed
			if !resumed[u] {
				st = status.StatusDuplicate
				sum.Duplicates++
			} else {
				sum.Resumed++
			}
			e.reporter.TrackURL(ctx, status.URLInfo{URL: u, Status: st})
			continue
		}

		if attempted > 0 {
			if err := e.wait(ctx, e.opts.Delay); err != nil {
				return sum, errors.Errorf("transfer interrupted: %w", err)
			}
		}
		attempted++

		entry, info, err := e.migrate(ctx, u)
		if err != nil {
			return sum, err
		}

		log.Append(entry)
		if err := log.Save(); err != nil {
			return sum, errors.Errorf("saving checkpoint after %s: %w", u, err)
		}

		switch info.Status {
		case status.StatusMigrated:
			sum.Migrated++
			sum.Bytes += info.Bytes
		case status.StatusDownloadFailed:
			sum.DownloadFailed++
		case status.StatusUploadFailed:
			sum.UploadFailed++
		}
		e.reporter.TrackURL(ctx, info)
	}

	return sum, nil
}

// migrate runs the per-URL steps. It only returns an error when ctx is done, so the
// interrupted URL is retried on the next run instead of being recorded as failed.
func (e *Engine) migrate(ctx context.Context, source string) (mapping.Entry, status.URLInfo, error) {
	logger := zerolog.Ctx(ctx).With().Str("url", source).Logger()
	info := status.URLInfo{URL: source}

	key, err := e.opts.Keys.ObjectKey(source)
	if err != nil {
		info.Status, info.Error = status.StatusDownloadFailed, err
		return mapping.Failed(source, mapping.DownloadFailed), info, nil
	}
	info.Key = key

	staging := filepath.Join(e.opts.DownloadDir, e.opts.Keys.StagingName(key))
	defer e.cleanup(&logger, staging)

	res, err := e.downloader.Download(ctx, source, staging)
	if res != nil {
		info.Attempts = res.Attempts
	}
	if err != nil {
		if ctx.Err() != nil {
			return mapping.Entry{}, info, errors.Errorf("transfer interrupted: %w", ctx.Err())
		}
		info.Status, info.Error = status.StatusDownloadFailed, err
		return mapping.Failed(source, mapping.DownloadFailed), info, nil
	}
	info.Bytes = res.Bytes

	if err := e.uploader.Upload(ctx, staging, key); err != nil {
		if ctx.Err() != nil {
			return mapping.Entry{}, info, errors.Errorf("transfer interrupted: %w", ctx.Err())
		}
		info.Status, info.Error = status.StatusUploadFailed, err
		return mapping.Failed(source, mapping.UploadFailed), info, nil
	}

	info.Status = status.StatusMigrated
	info.Destination = e.opts.Keys.PublicURL(e.opts.PublicURL, key)
	return mapping.Succeeded(source, info.Destination), info, nil
}

func (e *Engine) cleanup(logger *zerolog.Logger, staging string) {
	if err := os.Remove(staging); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", staging).Msg("could not delete staged file")
	}
}
