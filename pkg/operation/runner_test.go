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
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/log"
)

type fakeOperation struct {
	name   string
	input  string
	output string
	err    error
	calls  *[]string
}

func (f *fakeOperation) Name() string { return f.name }

func (f *fakeOperation) Execute(ctx context.Context) error {
	// the runner's logger must be reachable from inside an operation
	log.FromContext(ctx)
	*f.calls = append(*f.calls, f.name)
	return f.err
}

type describedOperation struct {
	fakeOperation
}

func (d *describedOperation) Paths() (string, string) { return d.input, d.output }

func newTestRunner(buf *bytes.Buffer) *OperationRunner {
	r := NewRunner(log.New(buf, zerolog.Disabled))
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	return r
}

func consoleLines(buf *bytes.Buffer) []string {
	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func TestOperationRunner(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	boom := errors.New("boom")

	tests := []struct {
		name      string
		build     func(calls *[]string) []Operation
		wantCalls []string
		wantErr   error
		wantLines []string
	}{
		{
			name: "runs_in_order",
			build: func(calls *[]string) []Operation {
				return []Operation{
					&fakeOperation{name: "first", calls: calls},
					&fakeOperation{name: "second", calls: calls},
				}
			},
			wantCalls: []string{"first", "second"},
			wantLines: []string{
				"[first]",
				"✅ first finished in 0s",
				"",
				"[second]",
				"✅ second finished in 0s",
			},
		},
		{
			name: "stops_at_first_error",
			build: func(calls *[]string) []Operation {
				return []Operation{
					&fakeOperation{name: "first", calls: calls, err: boom},
					&fakeOperation{name: "second", calls: calls},
				}
			},
			wantCalls: []string{"first"},
			wantErr:   boom,
			wantLines: []string{
				"[first]",
			},
		},
		{
			name: "describes_paths",
			build: func(calls *[]string) []Operation {
				return []Operation{
					&describedOperation{fakeOperation{name: "extract", input: "in.json", output: "out.csv", calls: calls}},
				}
			},
			wantCalls: []string{"extract"},
			wantLines: []string{
				"[extract]",
				"◆ in.json → out.csv",
				"✅ extract finished in 0s",
			},
		},
		{
			name: "nothing_to_run",
			build: func(calls *[]string) []Operation {
				return nil
			},
			wantCalls: []string{},
			wantLines: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			calls := []string{}

			err := newTestRunner(buf).Run(context.Background(), tt.build(&calls)...)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantLines, consoleLines(buf))
		})
	}
}

func TestOperationRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := []string{}
	err := newTestRunner(&bytes.Buffer{}).Run(ctx, &fakeOperation{name: "first", calls: &calls})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls, "no operation starts after cancellation")
}
