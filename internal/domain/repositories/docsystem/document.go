package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
)

// DocumentRepository is the keyed record store for documents
type DocumentRepository interface {
	// Create inserts a new document; doc.ID must already be set
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID loads a document, returning domain.ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// Save overwrites content, metadata and the modified flag of an existing document
	Save(ctx context.Context, doc *docsystem.Document) error

	// Delete removes a document
	Delete(ctx context.Context, id string) error

	// ListByProject lists a project's documents ordered by path
	ListByProject(ctx context.Context, projectID string) ([]docsystem.Document, error)

	// DeleteAllByProject removes every document in a project and returns their ids
	DeleteAllByProject(ctx context.Context, projectID string) ([]string, error)
}
