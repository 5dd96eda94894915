package status

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter defines how URL outcomes and progress should be formatted
type Formatter interface {
	// FormatURL formats the outcome of one URL
	FormatURL(info URLInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the end of an operation
	FormatSummary(name string, counts map[URLStatus]int, bytes int64) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatURL formats a URL outcome with emojis
func (f *DefaultFormatter) FormatURL(info URLInfo) string {
	switch info.Status {
	case StatusMigrated:
		return fmt.Sprintf("✨ Migrated %s (%s)", info.Key, humanize.Bytes(uint64(info.Bytes)))
	case StatusResumed:
		return fmt.Sprintf("⏭️  Already migrated %s", info.URL)
	case StatusDuplicate:
		return fmt.Sprintf("⏭️  Duplicate %s", info.URL)
	case StatusDownloadFailed:
		return fmt.Sprintf("❌ Failed to download %s", info.URL)
	case StatusUploadFailed:
		return fmt.Sprintf("❌ Failed to upload %s", info.Key)
	default:
		return fmt.Sprintf("❔ %s", info.URL)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	current, total = max(current, 0), max(total, 0)

	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = min(float64(current)/float64(total)*100, 100)
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary lists every non-zero status count in a stable order
func (f *DefaultFormatter) FormatSummary(name string, counts map[URLStatus]int, bytes int64) string {
	statuses := make([]URLStatus, 0, len(counts))
	for s, n := range counts {
		if n > 0 {
			statuses = append(statuses, s)
		}
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}
	return fmt.Sprintf("📦 %s: %s, %s transferred", name, strings.Join(parts, ", "), humanize.Bytes(uint64(bytes)))
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
