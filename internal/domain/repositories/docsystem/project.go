package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	Create(ctx context.Context, project *docsystem.Project) error
	GetByID(ctx context.Context, id string) (*docsystem.Project, error)
	List(ctx context.Context) ([]docsystem.Project, error)
	Update(ctx context.Context, project *docsystem.Project) error
	Delete(ctx context.Context, id string) error
}
