package docsystem

import (
	"context"

	"contractpad/internal/domain/models/docsystem"
)

// ProjectService handles project business logic
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*docsystem.Project, error)
	GetProject(ctx context.Context, id string) (*docsystem.Project, error)
	ListProjects(ctx context.Context) ([]docsystem.Project, error)
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*docsystem.Project, error)

	// DeleteProject deletes the project, its documents and their histories
	DeleteProject(ctx context.Context, id string) error
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectRequest represents a project update request
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
