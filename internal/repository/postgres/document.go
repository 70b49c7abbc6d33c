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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *repository.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, project_id, name, path, kind, content, saved_content, is_modified, created_at, updated_at`

// Create inserts a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Documents, documentColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.Name,
		doc.Path,
		string(doc.Kind),
		doc.Content,
		doc.SavedContent,
		doc.IsModified,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.idByPath(ctx, doc.ProjectID, doc.Path)
			if queryErr != nil {
				return fmt.Errorf("document '%s' already exists: %w", doc.Path, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document '%s' already exists in this project", doc.Path),
				ResourceType: "document",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// GetByID loads a document
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	var doc models.Document
	var kind string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.Name,
		&doc.Path,
		&kind,
		&doc.Content,
		&doc.SavedContent,
		&doc.IsModified,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("document", id)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	doc.Kind = models.Kind(kind)

	return &doc, nil
}

// Save overwrites an existing document
func (r *PostgresDocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, path = $2, kind = $3, content = $4, saved_content = $5, is_modified = $6, updated_at = $7
		WHERE id = $8
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		doc.Name,
		doc.Path,
		string(doc.Kind),
		doc.Content,
		doc.SavedContent,
		doc.IsModified,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document '%s' already exists: %w", doc.Path, domain.ErrConflict)
		}
		return fmt.Errorf("save document: %w", err)
	}
	return requireAffected(tag, "document", doc.ID)
}

// Delete removes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireAffected(tag, "document", id)
}

// ListByProject lists a project's documents ordered by path
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 ORDER BY path`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		var kind string
		if err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&doc.Name,
			&doc.Path,
			&kind,
			&doc.Content,
			&doc.SavedContent,
			&doc.IsModified,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.Kind = models.Kind(kind)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteAllByProject removes every document in the project and returns their ids
func (r *PostgresDocumentRepository) DeleteAllByProject(ctx context.Context, projectID string) ([]string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1 RETURNING id`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("delete documents: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresDocumentRepository) idByPath(ctx context.Context, projectID, path string) (string, error) {
	var id string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE project_id = $1 AND path = $2`, r.tables.Documents)
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, projectID, path).Scan(&id)
	return id, err
}
