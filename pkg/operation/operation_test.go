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
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/gen/mockery"
	"github.com/walteh/urlmigrate/pkg/config"
	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/mapping"
	"github.com/walteh/urlmigrate/pkg/remote"
	"github.com/walteh/urlmigrate/pkg/status"
	"github.com/walteh/urlmigrate/pkg/transfer"
	"github.com/walteh/urlmigrate/pkg/urllist"
)

const (
	srcA = "https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/images%2Fa.png?alt=media&token=1"
	srcB = "https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/b.png?alt=media&token=2"
)

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	return log.NewContext(ctx, log.New(buf, zerolog.Disabled)), buf
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExtractOperation(t *testing.T) {
	tests := []struct {
		name   string
		docs   map[string]string
		dedupe bool
		want   string
	}{
		{
			name:   "extract_and_dedupe",
			docs:   map[string]string{"a.json": `{"x":"![](` + srcA + `)","y":"` + srcA + `","z":"` + srcB + `"}`},
			dedupe: true,
			want:   "Firebase URLs\n" + srcA + "\n" + srcB + "\n",
		},
		{
			name: "extract_keeps_repeats",
			docs: map[string]string{"a.json": `{"x":"` + srcA + `","y":"` + srcA + `"}`},
			want: "Firebase URLs\n" + srcA + "\n" + srcA + "\n",
		},
		{
			name: "documents_concatenate_in_order",
			docs: map[string]string{
				"a.json": `"` + srcB + `"`,
				"b.json": `"` + srcA + `"`,
			},
			want: "Firebase URLs\n" + srcB + "\n" + srcA + "\n",
		},
		{
			name: "no_matches_writes_header",
			docs: map[string]string{"a.json": `{"x":"https://example.com/a.png"}`},
			want: "Firebase URLs\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			dir := t.TempDir()

			docs := []string{}
			for _, name := range []string{"a.json", "b.json"} {
				content, ok := tt.docs[name]
				if !ok {
					continue
				}
				p := filepath.Join(dir, "input", name)
				writeFile(t, p, content)
				docs = append(docs, p)
			}

			out := filepath.Join(dir, "output", "urls.csv")
			op := &ExtractOperation{
				Pattern:   config.DefaultSourcePattern,
				Documents: docs,
				Output:    out,
				Dedupe:    tt.dedupe,
			}

			require.NoError(t, op.Execute(ctx))
			assert.Equal(t, tt.want, readFile(t, out))
		})
	}
}

func TestExtractOperation_Errors(t *testing.T) {
	ctx, _ := testContext(t)
	dir := t.TempDir()

	err := (&ExtractOperation{Pattern: config.DefaultSourcePattern, Output: filepath.Join(dir, "out.csv")}).Execute(ctx)
	require.Error(t, err, "no documents")

	err = (&ExtractOperation{Pattern: "(", Documents: []string{"x"}, Output: filepath.Join(dir, "out.csv")}).Execute(ctx)
	require.Error(t, err, "bad pattern")

	err = (&ExtractOperation{Pattern: config.DefaultSourcePattern, Documents: []string{filepath.Join(dir, "missing.json")}, Output: filepath.Join(dir, "out.csv")}).Execute(ctx)
	require.Error(t, err, "missing document")
}

func TestDedupeOperation(t *testing.T) {
	ctx, buf := testContext(t)
	color.NoColor = true
	defer func() { color.NoColor = false }()

	in := filepath.Join(t.TempDir(), "urls.csv")
	writeFile(t, in, "Firebase URLs\nu1\nu2\nu1\nu3\n")

	require.NoError(t, (&DedupeOperation{Input: in}).Execute(ctx))

	assert.Equal(t, "Firebase URLs\nu1\nu2\nu3\n", readFile(t, in))
	assert.Contains(t, buf.String(), "4 rows, 3 unique, 1 duplicates removed")
}

func TestCleanOperation(t *testing.T) {
	ctx, _ := testContext(t)
	dir := t.TempDir()

	in := filepath.Join(dir, "urls.csv")
	out := filepath.Join(dir, "clean.csv")
	writeFile(t, in, "Firebase URLs\nhttps://a/x}\\\nhttps://a/y%7D\nhttps://a/z\n")

	require.NoError(t, (&CleanOperation{Input: in, Output: out}).Execute(ctx))

	assert.Equal(t, "Firebase URLs\nhttps://a/x\nhttps://a/y\nhttps://a/z\n", readFile(t, out))
	assert.Equal(t, "Firebase URLs\nhttps://a/x}\\\nhttps://a/y%7D\nhttps://a/z\n", readFile(t, in), "input untouched when output differs")
}

func TestCompareOperation(t *testing.T) {
	ctx, buf := testContext(t)
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	writeFile(t, first, "Firebase URLs\nu1\nu2\nu3\n")
	writeFile(t, second, "Firebase URLs\nu2\nu3\nu4\nu5\n")

	op := &CompareOperation{
		First:      first,
		Second:     second,
		OutSmaller: filepath.Join(dir, "unmatched-smaller.csv"),
		OutBigger:  filepath.Join(dir, "unmatched-bigger.csv"),
	}
	require.NoError(t, op.Execute(ctx))

	require.NotNil(t, op.Result)
	assert.Equal(t, first, op.Result.SmallerName)
	assert.Equal(t, 1, op.Result.CountDifference())
	assert.Equal(t, urllist.UnmatchedSmallerHeader+"\nu1\n", readFile(t, op.OutSmaller))
	assert.Equal(t, urllist.UnmatchedBiggerHeader+"\nu4\nu5\n", readFile(t, op.OutBigger))
	assert.Contains(t, buf.String(), "difference in unique urls: 1")
}

func TestReplaceOperation(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	const doc = `{"a":"https://a/x","b":"https://a/y","c":"https://a/z"}`

	tests := []struct {
		name       string
		skipFailed bool
		dryRun     bool
		diff       bool
		want       string
		wantCount  int
		wantLog    string
	}{
		{
			name:      "rewrites_with_sentinels",
			want:      `{"a":"https://b/x","b":"Failed to download","c":"https://a/z"}`,
			wantCount: 2,
			wantLog:   "1 failure markers written",
		},
		{
			name:       "skip_failed_keeps_source",
			skipFailed: true,
			want:       `{"a":"https://b/x","b":"https://a/y","c":"https://a/z"}`,
			wantCount:  1,
			wantLog:    "1 urls with failed transfers left unchanged",
		},
		{
			name:      "dry_run_writes_nothing",
			dryRun:    true,
			wantCount: 2,
			wantLog:   "dry run",
		},
		{
			name:      "diff_implies_dry_run",
			diff:      true,
			wantCount: 2,
			wantLog:   "dry run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := testContext(t)
			dir := t.TempDir()

			in := filepath.Join(dir, "input", "Roam.json")
			writeFile(t, in, doc)

			mlog := mapping.New(filepath.Join(dir, "output", "urls-map.csv"))
			mlog.Append(mapping.Succeeded("https://a/x", "https://b/x"))
			mlog.Append(mapping.Failed("https://a/y", mapping.DownloadFailed))
			require.NoError(t, mlog.Save())

			out := filepath.Join(dir, "output", "Roam-updated.json")
			diff := &bytes.Buffer{}
			op := &ReplaceOperation{
				MappingPath: mlog.Path(),
				Documents:   []string{in},
				OutputFor:   func(string) string { return out },
				SkipFailed:  tt.skipFailed,
				DryRun:      tt.dryRun,
			}
			if tt.diff {
				op.DiffOut = diff
			}

			require.NoError(t, op.Execute(ctx))

			assert.Equal(t, doc, readFile(t, in), "source document untouched")
			if tt.want == "" {
				assert.NoFileExists(t, out)
			} else {
				assert.Equal(t, tt.want, readFile(t, out))
			}
			assert.Contains(t, buf.String(), tt.wantLog)

			if tt.diff {
				assert.Contains(t, diff.String(), "--- "+in)
				assert.Contains(t, diff.String(), "+++ "+out)
			}
			require.Contains(t, op.Results, in)
			assert.Equal(t, tt.wantCount, op.Results[in].ReplacementCount)
		})
	}
}

func TestReplaceOperation_RowWithoutDestination(t *testing.T) {
	ctx, buf := testContext(t)
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	writeFile(t, in, `{"a":"https://a/x","b":"https://a/y"}`)
	mappingPath := filepath.Join(dir, "urls-map.csv")
	writeFile(t, mappingPath, "Firebase URL,R2 URL\nhttps://a/x,https://b/x\nhttps://a/y,\n")

	out := filepath.Join(dir, "doc-updated.json")
	op := &ReplaceOperation{
		MappingPath: mappingPath,
		Documents:   []string{in},
		OutputFor:   func(string) string { return out },
	}

	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, `{"a":"https://b/x","b":"https://a/y"}`, readFile(t, out))
	assert.Contains(t, buf.String(), "ignored 1 malformed rows")
}

func TestReplaceOperation_MissingMapping(t *testing.T) {
	ctx, _ := testContext(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.json")
	writeFile(t, in, "{}")

	err := (&ReplaceOperation{
		MappingPath: filepath.Join(dir, "urls-map.csv"),
		Documents:   []string{in},
		OutputFor:   func(string) string { return filepath.Join(dir, "doc-updated.json") },
	}).Execute(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run transfer first")
}

func TestTransferOperation_RequiresEngine(t *testing.T) {
	ctx, _ := testContext(t)
	require.Error(t, (&TransferOperation{}).Execute(ctx))
}

type pipelineEnv struct {
	cfg        *config.Config
	downloader *mockery.MockDownloader_remote
	uploader   *mockery.MockUploader_store
}

func newPipelineEnv(t *testing.T, doc string) *pipelineEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(dir, "input")
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.DownloadDir = filepath.Join(dir, "downloads")
	cfg.InputFile = "Roam.json"
	cfg.Destination.PublicURL = "https://cdn.example.com/"
	cfg.Transfer.Delay = 0
	cfg.Normalize()

	writeFile(t, filepath.Join(cfg.InputDir, cfg.InputFile), doc)

	return &pipelineEnv{
		cfg:        cfg,
		downloader: mockery.NewMockDownloader_remote(t),
		uploader:   mockery.NewMockUploader_store(t),
	}
}

func (env *pipelineEnv) run(t *testing.T) error {
	t.Helper()
	ctx, _ := testContext(t)
	engine := transfer.New(env.downloader, env.uploader, status.New(io.Discard), transfer.OptionsFromConfig(env.cfg))
	ops, err := Pipeline(env.cfg, engine, nil)
	require.NoError(t, err)
	return NewRunner(log.FromContext(ctx)).Run(ctx, ops...)
}

func (env *pipelineEnv) expectDownload(url string) *mockery.MockDownloader_remote_Download_Call {
	return env.downloader.EXPECT().Download(mock.Anything, url, mock.Anything).
		RunAndReturn(func(ctx context.Context, url string, dest string) (*remote.Result, error) {
			if err := os.WriteFile(dest, []byte("image"), 0644); err != nil {
				return nil, err
			}
			return &remote.Result{Bytes: 5, Attempts: 1}, nil
		})
}

func TestPipeline(t *testing.T) {
	doc := `{"a":"![](` + srcA + `)","b":"` + srcA + `","c":"` + srcB + `"}`
	env := newPipelineEnv(t, doc)

	env.expectDownload(srcA).Once()
	env.expectDownload(srcB).Once()
	env.uploader.EXPECT().Upload(mock.Anything, mock.Anything, "images/a.png").Return(nil).Once()
	env.uploader.EXPECT().Upload(mock.Anything, mock.Anything, "b.png").Return(errors.New("access denied")).Once()

	require.NoError(t, env.run(t))

	cfg := env.cfg
	assert.Equal(t, "Firebase URLs\n"+srcA+"\n"+srcB+"\n", readFile(t, cfg.URLListPath()))
	assert.Equal(t,
		"Firebase URL,R2 URL\n"+srcA+",https://cdn.example.com/images%2Fa.png\n"+srcB+",Failed to upload\n",
		readFile(t, cfg.MappingPath()))
	assert.Equal(t,
		`{"a":"![](https://cdn.example.com/images%2Fa.png)","b":"https://cdn.example.com/images%2Fa.png","c":"Failed to upload"}`,
		readFile(t, filepath.Join(cfg.OutputDir, "Roam-updated.json")))
	assert.Equal(t, doc, readFile(t, filepath.Join(cfg.InputDir, "Roam.json")))

	staged, err := os.ReadDir(cfg.DownloadDir)
	require.NoError(t, err)
	assert.Empty(t, staged, "staged files are removed")

	// a second run resumes from the mapping file and transfers nothing
	require.NoError(t, env.run(t))
}

func TestPipeline_Glob(t *testing.T) {
	env := newPipelineEnv(t, `"`+srcA+`"`)
	env.cfg.InputGlob = "**/*.json"
	writeFile(t, filepath.Join(env.cfg.InputDir, "nested", "Other.json"), `"`+srcA+`" "`+srcB+`"`)

	env.expectDownload(srcA).Once()
	env.expectDownload(srcB).Once()
	env.uploader.EXPECT().Upload(mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	require.NoError(t, env.run(t))

	assert.Equal(t, `"https://cdn.example.com/images%2Fa.png"`, readFile(t, filepath.Join(env.cfg.OutputDir, "Roam-updated.json")))
	assert.Equal(t, `"https://cdn.example.com/images%2Fa.png" "https://cdn.example.com/b.png"`, readFile(t, filepath.Join(env.cfg.OutputDir, "Other-updated.json")))
}

func TestPipeline_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.InputDir = t.TempDir()
	cfg.InputGlob = "*.json"

	_, err := Pipeline(cfg, nil, nil)
	require.Error(t, err, "engine required")

	engine := transfer.New(nil, nil, status.New(io.Discard), transfer.OptionsFromConfig(cfg))
	_, err = Pipeline(cfg, engine, nil)
	require.Error(t, err, "glob matching nothing")

	cfg.InputGlob = ""
	_, err = Pipeline(cfg, engine, nil)
	require.Error(t, err, "no document configured")
	assert.ErrorIs(t, err, config.ErrMissingSetting)
}
