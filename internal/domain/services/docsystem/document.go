package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
	"contractpad/internal/domain/models/editing"
)

// DocumentService owns the live documents and drives manual edits,
// saving and undo/redo through the edit history.
type DocumentService interface {
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)
	GetDocument(ctx context.Context, id string) (*docsystem.Document, error)
	ListDocuments(ctx context.Context, projectID string) ([]docsystem.Document, error)

	// RenameDocument changes display metadata only
	RenameDocument(ctx context.Context, id string, req *RenameDocumentRequest) (*docsystem.Document, error)

	// EditDocument records a manual edit (called on the shell's debounce boundary)
	EditDocument(ctx context.Context, id string, req *EditDocumentRequest) (*docsystem.Document, error)

	// SaveDocument clears the modified flag
	SaveDocument(ctx context.Context, id string) (*docsystem.Document, error)

	// DeleteDocument removes the document and its history
	DeleteDocument(ctx context.Context, id string) error

	Undo(ctx context.Context, id string) (*HistoryStepResult, error)
	Redo(ctx context.Context, id string) (*HistoryStepResult, error)
	GetHistory(ctx context.Context, id string) (*editing.HistoryView, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	ProjectID string         `json:"project_id"`
	Name      string         `json:"name"`
	Path      string         `json:"path,omitempty"`    // Defaults to "/" + name
	Kind      docsystem.Kind `json:"kind,omitempty"`    // Inferred from name when empty
	Content   *string        `json:"content,omitempty"` // nil = kind template
}

// RenameDocumentRequest represents a document rename/move
type RenameDocumentRequest struct {
	Name *string `json:"name,omitempty"`
	Path *string `json:"path,omitempty"`
}

// EditDocumentRequest carries a manual edit batch
type EditDocumentRequest struct {
	Content     string `json:"content"`
	Description string `json:"description,omitempty"` // Defaults to "Manual edit"
}

// HistoryStepResult is returned by undo/redo. Entry is nil when the step
// was not available and nothing changed.
type HistoryStepResult struct {
	Document *docsystem.Document   `json:"document"`
	Entry    *editing.HistoryEntry `json:"entry"`
	CanUndo  bool                  `json:"can_undo"`
	CanRedo  bool                  `json:"can_redo"`
}
