package assist

import (
	"context"

	"contractpad/internal/domain/models/assist"
	"contractpad/internal/domain/models/docsystem"
)

// Compiler is the opaque compilation/test collaborator.
type Compiler interface {
	Compile(ctx context.Context, doc *docsystem.Document) (*assist.CompileResult, error)
	RunTests(ctx context.Context, doc *docsystem.Document) (*assist.TestResult, error)
}
