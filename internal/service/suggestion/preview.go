package suggestion

import (
	"github.com/pmezard/go-difflib/difflib"

	"contractpad/internal/domain/models/editing"
)

// BuildPreview renders each change as an old/new pair with a unified diff.
// It reads nothing but the suggestion.
func BuildPreview(s *editing.Suggestion) *editing.Preview {
	if s == nil {
		return nil
	}

	preview := &editing.Preview{
		SuggestionID: s.ID,
		Title:        s.Title,
		Category:     s.Category,
		Impact:       s.Impact,
		Confidence:   s.Confidence,
		Changes:      make([]editing.ChangePreview, 0, len(s.Changes)),
	}

	for i, change := range s.Changes {
		preview.Changes = append(preview.Changes, editing.ChangePreview{
			Index:       i,
			DocumentID:  change.DocumentID,
			Description: change.Description,
			OldText:     change.OldText,
			NewText:     change.NewText,
			Diff:        unifiedDiff(change.OldText, change.NewText),
		})
	}

	return preview
}

func unifiedDiff(oldText, newText string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: "current",
		ToFile:   "suggested",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// Only returned on writer failure; a string builder never fails.
		return ""
	}
	return text
}
