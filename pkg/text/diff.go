package text

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the changes between original and modified for a terminal.
func Diff(original, modified string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, modified, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// Patch returns the changes as patch text, for logs and files.
func Patch(original, modified string) string {
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(original, modified))
}
