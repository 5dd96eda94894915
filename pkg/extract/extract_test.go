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

package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/urlmigrate/pkg/config"
)

const base = "https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/"

func TestExtractor_Find(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "clean_input_is_kept_in_order",
			content: "first " + base + "b.png?alt=media&token=2 then " + base + "a.png?alt=media&token=1\n",
			want: []string{
				base + "b.png?alt=media&token=2",
				base + "a.png?alt=media&token=1",
			},
		},
		{
			name:    "concatenated_markdown_images",
			content: "![](" + base + "a.png?alt=media&token=1)![](" + base + "b.png?alt=media&token=2)",
			want: []string{
				base + "a.png?alt=media&token=1",
				base + "b.png?alt=media&token=2",
			},
		},
		{
			name:    "swallowed_concatenation_is_split",
			content: "[" + base + "a.png?alt=media&token=1![](" + base + "b.png?alt=media&token=2]",
			want: []string{
				base + "a.png?alt=media&token=1",
				base + "b.png?alt=media&token=2",
			},
		},
		{
			name:    "trailing_brace_noise",
			content: `{"src":"x ` + base + `a.png?token=1}} ` + base + `b.png?token=2%7D%7D"}`,
			want: []string{
				base + "a.png?token=1",
				base + "b.png?token=2",
			},
		},
		{
			name:    "escaped_json_backslash",
			content: `"` + base + `a.png?token=1\"`,
			want:    []string{base + "a.png?token=1"},
		},
		{
			name:    "duplicates_are_kept",
			content: base + "a.png?token=1 " + base + "a.png?token=1",
			want:    []string{base + "a.png?token=1", base + "a.png?token=1"},
		},
		{
			name:    "url_without_token_is_ignored",
			content: base + "a.png?alt=media and https://example.com/x?token=1",
			want:    nil,
		},
		{
			name:    "no_matches",
			content: "nothing to see",
			want:    nil,
		},
	}

	ext, err := New(config.DefaultSourcePattern)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ext.Find(tt.content))
		})
	}
}

func TestExtractor_FindIsIdempotentOnCleanOutput(t *testing.T) {
	ext, err := New(config.DefaultSourcePattern)
	require.NoError(t, err)

	first := ext.Find("![](" + base + "a.png?token=1)![](" + base + "b.png?token=2%7D)")
	joined := ""
	for _, u := range first {
		joined += u + "\n"
	}
	assert.Equal(t, first, ext.Find(joined))
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New("(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling source pattern")
}

func TestExtractor_ToFile(t *testing.T) {
	dir := t.TempDir()
	roam := filepath.Join(dir, "Roam.json")
	reflect := filepath.Join(dir, "Reflect.json")
	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(roam, []byte(`{"a":"`+base+`a.png?token=1"}`), 0644))
	require.NoError(t, os.WriteFile(reflect, []byte(`{"b":"`+base+`b.png?token=2"}`), 0644))
	require.NoError(t, os.WriteFile(empty, []byte("no urls"), 0644))

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	ext, err := New(config.DefaultSourcePattern)
	require.NoError(t, err)

	t.Run("concatenates_documents", func(t *testing.T) {
		out := filepath.Join(dir, "out", "urls.csv")
		count, err := ext.ToFile(ctx, out, roam, reflect)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Firebase URLs\n"+base+"a.png?token=1\n"+base+"b.png?token=2\n", string(data))
	})

	t.Run("no_matches_writes_header_only", func(t *testing.T) {
		out := filepath.Join(dir, "out", "empty.csv")
		count, err := ext.ToFile(ctx, out, empty)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Firebase URLs\n", string(data))
	})

	t.Run("missing_document", func(t *testing.T) {
		_, err := ext.ToFile(ctx, filepath.Join(dir, "out", "x.csv"), filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading document")
	})
}
