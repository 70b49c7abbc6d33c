package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	"contractpad/internal/repository"
)

// ProjectRepository implements docsysRepo.ProjectRepository on SQLite
type ProjectRepository struct {
	db     *sql.DB
	tables *repository.TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) docsysRepo.ProjectRepository {
	return &ProjectRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.tables.Projects)

	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.conflict(ctx, project.Name)
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at FROM %s WHERE id = ?`, r.tables.Projects)

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("project", id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at FROM %s ORDER BY updated_at DESC`, r.tables.Projects)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`UPDATE %s SET name = ?, description = ?, updated_at = ? WHERE id = ?`, r.tables.Projects)

	res, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		formatTime(project.UpdatedAt),
		project.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.conflict(ctx, project.Name)
		}
		return fmt.Errorf("update project: %w", err)
	}
	return requireAffected(res, "project", project.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Projects), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *ProjectRepository) conflict(ctx context.Context, name string) error {
	var existingID string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, r.tables.Projects)
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&existingID); err != nil {
		return fmt.Errorf("project '%s' already exists: %w", name, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("project '%s' already exists", name),
		ResourceType: "project",
		ResourceID:   existingID,
	}
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project              models.Project
		createdAt, updatedAt string
	)
	if err := row.Scan(&project.ID, &project.Name, &project.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if project.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &project, nil
}
