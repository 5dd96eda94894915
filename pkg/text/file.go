package text

import (
	"context"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// ReplaceFile applies rules to the document at in and writes the result to out.
// The document at in is never modified. With dryRun nothing is written.
func ReplaceFile(ctx context.Context, r TextReplacer, in, out string, rules []ReplacementRule, dryRun bool) (*ReplacementResult, error) {
	if filepath.Clean(in) == filepath.Clean(out) {
		return nil, errors.Errorf("refusing to overwrite source document %s", in)
	}

	fh, err := os.Open(in)
	if err != nil {
		return nil, errors.Errorf("opening document: %w", err)
	}
	defer fh.Close()

	result, err := r.ReplaceText(ctx, fh, rules)
	if err != nil {
		return nil, errors.Errorf("replacing text in %s: %w", in, err)
	}

	if dryRun {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, errors.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, result.ModifiedContent, 0644); err != nil {
		return nil, errors.Errorf("writing updated document: %w", err)
	}
	return result, nil
}
