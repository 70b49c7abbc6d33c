package suggestion

import (
	"strings"

	"contractpad/internal/domain/models/editing"
)

// ApplyChanges runs every change in order against the running content.
// Each change replaces only the first occurrence of its OldText. A change
// whose OldText is missing, or empty, leaves the content untouched.
func ApplyChanges(content string, changes []editing.Change) string {
	for _, change := range changes {
		content, _ = applyChange(content, change)
	}
	return content
}

// applyChange reports whether the change matched.
func applyChange(content string, change editing.Change) (string, bool) {
	if change.OldText == "" {
		return content, false
	}
	idx := strings.Index(content, change.OldText)
	if idx < 0 {
		return content, false
	}
	return content[:idx] + change.NewText + content[idx+len(change.OldText):], true
}

// CountApplicable returns how many changes would match when applied in
// order to content. Used for logging only.
func CountApplicable(content string, changes []editing.Change) int {
	matched := 0
	for _, change := range changes {
		var ok bool
		content, ok = applyChange(content, change)
		if ok {
			matched++
		}
	}
	return matched
}
