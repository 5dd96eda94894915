package text

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer using literal string replacement
type SimpleTextReplacer struct {
	skipFailed bool
}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// WithSkipFailed leaves occurrences of failed sources untouched instead of writing the sentinel.
func (r *SimpleTextReplacer) WithSkipFailed(skip bool) *SimpleTextReplacer {
	r.skipFailed = skip
	return r
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	// longest first, so a source that is a prefix of another cannot split it
	ordered := append([]ReplacementRule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].FromText) > len(ordered[j].FromText)
	})

	currentContent := string(originalContent)
	for _, rule := range ordered {
		if rule.FromText == "" {
			continue
		}

		count := strings.Count(currentContent, rule.FromText)
		if count == 0 {
			continue
		}

		if rule.Failed && r.skipFailed {
			result.SkippedFailed += count
			continue
		}

		currentContent = strings.ReplaceAll(currentContent, rule.FromText, rule.ToText)
		result.WasModified = true
		result.ReplacementCount += count

		if rule.Failed {
			result.SentinelCount += count
			zerolog.Ctx(ctx).Warn().Str("url", rule.FromText).Str("value", rule.ToText).Int("occurrences", count).Msg("writing failure sentinel into document")
		}
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if !rule.Failed && rule.ToText == "" {
			return errors.Errorf("rule %d: to_text is required for %s", i, rule.FromText)
		}
	}
	return nil
}
