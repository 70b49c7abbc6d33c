package assist

import (
	"context"

	"contractpad/internal/domain/models/editing"
)

// Generator proposes suggestions for a document. Implementations may be
// slow; callers decide whether a failure becomes an empty list.
type Generator interface {
	Generate(ctx context.Context, content, documentName string) ([]editing.Suggestion, error)
}
