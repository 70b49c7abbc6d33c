package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"contractpad/internal/domain"
	models "contractpad/internal/domain/models/docsystem"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	"contractpad/internal/repository"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) docsysRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Projects)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, project.Name)
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at FROM %s WHERE id = $1`, r.tables.Projects)

	var project models.Project
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("project", id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT id, name, description, created_at, updated_at FROM %s ORDER BY updated_at DESC`, r.tables.Projects)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $1, description = $2, updated_at = $3 WHERE id = $4`, r.tables.Projects)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		project.Name,
		project.Description,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, project.Name)
		}
		return fmt.Errorf("update project: %w", err)
	}
	return requireAffected(tag, "project", project.ID)
}

// Delete removes the project and its documents in one transaction
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	return ExecTx(ctx, r.pool, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		if _, err := executor.Exec(txCtx, fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Documents), id); err != nil {
			return fmt.Errorf("delete project documents: %w", err)
		}

		tag, err := executor.Exec(txCtx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects), id)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return requireAffected(tag, "project", id)
	})
}

func (r *PostgresProjectRepository) conflict(ctx context.Context, name string) error {
	var existingID string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, r.tables.Projects)
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, name).Scan(&existingID); err != nil {
		return fmt.Errorf("project '%s' already exists: %w", name, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("project '%s' already exists", name),
		ResourceType: "project",
		ResourceID:   existingID,
	}
}
