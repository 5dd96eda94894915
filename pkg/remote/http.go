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

package remote

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/config"
)

// 🌐 HTTPDownloader fetches objects with a bounded timeout and exponential backoff
type HTTPDownloader struct {
	client       *http.Client
	maxAttempts  int
	buildBackoff func() backoff.BackOff
}

var _ Downloader = (*HTTPDownloader)(nil)

// NewHTTPDownloader builds a downloader from the transfer settings.
// Every request gets cfg.Timeout. Server errors and network failures are retried up to
// cfg.MaxAttempts requests in total, waiting cfg.BackoffBase and doubling after each failure.
func NewHTTPDownloader(cfg config.Transfer) *HTTPDownloader {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &HTTPDownloader{
		client:      &http.Client{Timeout: cfg.Timeout.Std()},
		maxAttempts: attempts,
		buildBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = cfg.BackoffBase.Std()
			b.Multiplier = 2
			b.RandomizationFactor = 0
			b.MaxInterval = time.Hour
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

// WithClient swaps the HTTP client, keeping the retry policy.
func (d *HTTPDownloader) WithClient(client *http.Client) *HTTPDownloader {
	d.client = client
	return d
}

// 🔍 Download implements Downloader
func (d *HTTPDownloader) Download(ctx context.Context, url string, dest string) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("url", url).Logger()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, errors.Errorf("creating staging directory: %w", err)
	}

	res := &Result{}
	op := func() error {
		res.Attempts++
		n, err := d.fetch(ctx, url, dest)
		if err != nil {
			var status *StatusError
			if errors.As(err, &status) && !status.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		res.Bytes = n
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Debug().Err(err).Int("attempt", res.Attempts).Dur("wait", wait).Msg("download failed, retrying")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(d.buildBackoff(), uint64(d.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return res, errors.Errorf("downloading %s after %d attempt(s): %w", url, res.Attempts, err)
	}

	logger.Debug().Int64("bytes", res.Bytes).Int("attempts", res.Attempts).Msg("downloaded")
	return res, nil
}

func (d *HTTPDownloader) fetch(ctx context.Context, url string, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, backoff.Permanent(errors.Errorf("creating request: %w", err))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, errors.Errorf("requesting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, errors.WithStack(&StatusError{URL: url, Code: resp.StatusCode})
	}

	fh, err := os.Create(dest)
	if err != nil {
		return 0, backoff.Permanent(errors.Errorf("creating staging file: %w", err))
	}

	n, err := io.Copy(fh, resp.Body)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, errors.Errorf("writing staging file: %w", err)
	}
	return n, nil
}
