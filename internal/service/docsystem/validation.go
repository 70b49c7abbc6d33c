package docsystem

import (
	"context"
	"fmt"

	docsysRepo "contractpad/internal/domain/repositories/docsystem"
)

// ResourceValidator checks that parent resources exist before child
// resources are created under them
type ResourceValidator struct {
	projectRepo docsysRepo.ProjectRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(projectRepo docsysRepo.ProjectRepository) *ResourceValidator {
	return &ResourceValidator{projectRepo: projectRepo}
}

// ValidateProject ensures a project exists
// Returns domain.ErrNotFound if it doesn't
func (v *ResourceValidator) ValidateProject(ctx context.Context, projectID string) error {
	if _, err := v.projectRepo.GetByID(ctx, projectID); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	return nil
}
