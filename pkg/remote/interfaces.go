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

// Package remote fetches objects from the source store over HTTPS.
package remote

import (
	"context"
	"fmt"
	"net/http"
)

// Downloader is the primary interface for fetching source objects
type Downloader interface {
	// Download fetches url into the file at dest and returns what happened.
	// dest is created, or truncated, on every attempt.
	Download(ctx context.Context, url string, dest string) (*Result, error)
}

// Result describes a finished download
type Result struct {
	// Bytes is the size of the staged file
	Bytes int64
	// Attempts is how many requests were made, including the successful one
	Attempts int
}

// StatusError is returned when the source answers with a non-2xx status
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Retryable reports whether the status is a transient server error.
func (e *StatusError) Retryable() bool {
	switch e.Code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
