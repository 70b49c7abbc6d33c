package assist

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
)

// SuggestionService exposes the preview/apply/dismiss protocol for pending
// suggestions.
type SuggestionService interface {
	Preview(ctx context.Context, suggestionID string) (*editing.Preview, error)

	// Apply confirms the suggestion against a document and removes it from
	// every pending context. documentID may be empty to use the first
	// change's target.
	Apply(ctx context.Context, suggestionID, documentID string) (*docsystem.Document, error)

	// Dismiss removes the suggestion everywhere; returns how many contexts held it
	Dismiss(ctx context.Context, suggestionID string) (int, error)
}
