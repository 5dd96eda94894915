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

// Package extract pulls source-store URLs out of text and JSON documents.
package extract

import (
	"context"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/urllist"
)

// concatDelimiters separates URLs that a document embeds back to back,
// as in markdown image links: "...token=1)![](https://...".
var concatDelimiters = regexp.MustCompile(`[!()\[\]]+`)

// 🔎 Extractor finds every URL matching a source pattern
type Extractor struct {
	pattern *regexp.Regexp
}

// New compiles pattern into an Extractor.
func New(pattern string) (*Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling source pattern: %w", err)
	}
	return &Extractor{pattern: re}, nil
}

// Find returns the cleaned URLs in content, in encounter order. Duplicates are kept.
func (e *Extractor) Find(content string) []string {
	var urls []string
	for _, match := range e.pattern.FindAllString(content, -1) {
		for _, part := range concatDelimiters.Split(match, -1) {
			if u := urllist.CleanURL(part); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// FindInFiles reads each document whole and concatenates their URLs in the order given.
func (e *Extractor) FindInFiles(ctx context.Context, paths ...string) ([]string, error) {
	var urls []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading document %s: %w", path, err)
		}
		found := e.Find(string(data))
		zerolog.Ctx(ctx).Debug().Str("document", path).Int("urls", len(found)).Msg("scanned document")
		urls = append(urls, found...)
	}
	return urls, nil
}

// ToFile extracts from the documents and writes a URL list to out. It returns the number of URLs written.
// A document without matches still produces a header-only list.
func (e *Extractor) ToFile(ctx context.Context, out string, paths ...string) (int, error) {
	urls, err := e.FindInFiles(ctx, paths...)
	if err != nil {
		return 0, err
	}
	if err := urllist.WriteURLs(out, urllist.Header, urls); err != nil {
		return 0, errors.Errorf("writing url list: %w", err)
	}
	return len(urls), nil
}
