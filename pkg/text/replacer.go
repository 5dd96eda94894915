package text

import (
	"context"
	"io"

	"github.com/walteh/urlmigrate/pkg/mapping"
)

// ReplacementRule defines a single literal replacement
type ReplacementRule struct {
	// FromText is the text to replace, matched literally
	FromText string

	// ToText is the replacement text
	ToText string

	// Failed marks a rule whose ToText is a failure sentinel
	Failed bool
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// SentinelCount is how many of those wrote a failure sentinel into the content
	SentinelCount int

	// SkippedFailed is how many occurrences were left alone because their rule failed
	SkippedFailed int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}

// RulesFromMapping turns mapping entries into rules, one per distinct source.
// The last entry for a source wins.
func RulesFromMapping(entries []mapping.Entry) []ReplacementRule {
	index := make(map[string]int, len(entries))
	rules := make([]ReplacementRule, 0, len(entries))
	for _, e := range entries {
		rule := ReplacementRule{
			FromText: e.Source,
			ToText:   e.Value(),
			Failed:   e.Outcome != mapping.Success,
		}
		if i, ok := index[e.Source]; ok {
			rules[i] = rule
			continue
		}
		index[e.Source] = len(rules)
		rules = append(rules, rule)
	}
	return rules
}
