package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"contractpad/internal/config"
	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo docsysRepo.ProjectRepository
	docRepo     docsysRepo.DocumentRepository
	history     HistoryStore
	locks       *DocumentLocks
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo docsysRepo.ProjectRepository,
	docRepo docsysRepo.DocumentRepository,
	history HistoryStore,
	locks *DocumentLocks,
	logger *slog.Logger,
) docsysSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		history:     history,
		locks:       locks,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *docsysSvc.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, domain.Invalid(err)
	}

	now := time.Now()
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves all projects
func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

// UpdateProject updates a project's name and/or description
func (s *projectService) UpdateProject(ctx context.Context, id string, req *docsysSvc.UpdateProjectRequest) (*models.Project, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, domain.Invalid(err)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// DeleteProject deletes the project and its documents, then drops the
// documents' histories
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	// Verify project exists first (provides better error message)
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	docIDs, err := s.docRepo.DeleteAllByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project documents: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, docID := range docIDs {
		unlock := s.locks.Lock(docID)
		s.history.Clear(docID)
		unlock()
	}

	s.logger.Info("project deleted",
		"id", id,
		"documents", len(docIDs),
	)

	return nil
}

// validateCreateRequest validates a create project request
func (s *projectService) validateCreateRequest(req *docsysSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(validateProjectName),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxProjectDescriptionLength)),
	)
}

// validateUpdateRequest validates an update project request
func (s *projectService) validateUpdateRequest(req *docsysSvc.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(validateProjectName),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxProjectDescriptionLength)),
	)
}

// validateProjectName validates a project name
func validateProjectName(value interface{}) error {
	if _, isNil := validation.Indirect(value); isNil {
		return nil
	}
	name, ok := stringValue(value)
	if !ok {
		return fmt.Errorf("name must be a string")
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	return nil
}
