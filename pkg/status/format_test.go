package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestDefaultFormatter_FormatURL tests the per-URL messages
func TestDefaultFormatter_FormatURL(t *testing.T) {
	tests := []struct {
		name string
		info URLInfo
		want string
	}{
		{
			name: "migrated",
			info: URLInfo{URL: "https://a/x", Key: "images/x.png", Status: StatusMigrated, Bytes: 1500},
			want: "✨ Migrated images/x.png (1.5 kB)",
		},
		{
			name: "resumed",
			info: URLInfo{URL: "https://a/x", Status: StatusResumed},
			want: "⏭️  Already migrated https://a/x",
		},
		{
			name: "duplicate",
			info: URLInfo{URL: "https://a/x", Status: StatusDuplicate},
			want: "⏭️  Duplicate https://a/x",
		},
		{
			name: "download_failed",
			info: URLInfo{URL: "https://a/x", Status: StatusDownloadFailed},
			want: "❌ Failed to download https://a/x",
		},
		{
			name: "upload_failed",
			info: URLInfo{URL: "https://a/x", Key: "x.png", Status: StatusUploadFailed},
			want: "❌ Failed to upload x.png",
		},
		{
			name: "unknown",
			info: URLInfo{URL: "https://a/x"},
			want: "❔ https://a/x",
		},
	}

	formatter := NewDefaultFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatURL(tt.info))
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
		{name: "zero_total_with_current", current: 5, total: 0, expected: "✅ Progress: 5/0 (100%)"},
		{name: "current_exceeds_total", current: 15, total: 10, expected: "✅ Progress: 15/10 (100%)"},
		{name: "negative_values", current: -1, total: -1, expected: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewDefaultFormatter()
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	formatter := NewDefaultFormatter()

	got := formatter.FormatSummary("transfer", map[URLStatus]int{
		StatusUploadFailed:   1,
		StatusMigrated:       3,
		StatusResumed:        2,
		StatusDownloadFailed: 0,
	}, 2048)
	assert.Equal(t, "📦 transfer: 3 migrated, 2 resumed, 1 upload failed, 2.0 kB transferred", got)

	assert.Equal(t, "📦 transfer: nothing to do, 0 B transferred", formatter.FormatSummary("transfer", nil, 0))
}

// 🧪 TestErrorFormatting tests error message formatting
func TestErrorFormatting(t *testing.T) {
	formatter := NewDefaultFormatter()
	assert.Equal(t, "❌ Error: assert.AnError general error for testing", formatter.FormatError(assert.AnError))
	assert.Equal(t, "", formatter.FormatError(nil))
}

func TestFormatURLLine(t *testing.T) {
	line := FormatURLLine(URLInfo{URL: "https://a/x", Key: "images/x.png", Status: StatusMigrated, Bytes: 42})
	assert.Contains(t, line, "images/x.png")
	assert.Contains(t, line, "migrated")
	assert.Contains(t, line, "42 B")

	line = FormatURLLine(URLInfo{URL: "https://a/y", Status: StatusDownloadFailed})
	assert.Contains(t, line, "https://a/y", "falls back to the url without a key")
	assert.Contains(t, line, "download failed")
}
