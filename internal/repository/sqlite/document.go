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

// DocumentRepository implements docsysRepo.DocumentRepository on SQLite
type DocumentRepository struct {
	db     *sql.DB
	tables *repository.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) docsysRepo.DocumentRepository {
	return &DocumentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, project_id, name, path, kind, content, saved_content, is_modified, created_at, updated_at`

// Create inserts a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, r.tables.Documents, documentColumns)

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.Name,
		doc.Path,
		string(doc.Kind),
		doc.Content,
		doc.SavedContent,
		doc.IsModified,
		formatTime(doc.CreatedAt),
		formatTime(doc.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			existingID, lookupErr := r.idByPath(ctx, doc.ProjectID, doc.Path)
			if lookupErr != nil {
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
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("document", id)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Save overwrites an existing document
func (r *DocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = ?, path = ?, kind = ?, content = ?, saved_content = ?, is_modified = ?, updated_at = ?
		WHERE id = ?
	`, r.tables.Documents)

	res, err := r.db.ExecContext(ctx, query,
		doc.Name,
		doc.Path,
		string(doc.Kind),
		doc.Content,
		doc.SavedContent,
		doc.IsModified,
		formatTime(doc.UpdatedAt),
		doc.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document '%s' already exists: %w", doc.Path, domain.ErrConflict)
		}
		return fmt.Errorf("save document: %w", err)
	}
	return requireAffected(res, "document", doc.ID)
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Documents)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireAffected(res, "document", id)
}

// ListByProject lists a project's documents ordered by path
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = ? ORDER BY path`, documentColumns, r.tables.Documents)

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// DeleteAllByProject removes every document in the project in one transaction
func (r *DocumentRepository) DeleteAllByProject(ctx context.Context, projectID string) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE project_id = ?`, r.tables.Documents), projectID)
	if err != nil {
		return nil, fmt.Errorf("list document ids: %w", err)
	}
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE project_id = ?`, r.tables.Documents), projectID); err != nil {
		return nil, fmt.Errorf("delete documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return ids, nil
}

func (r *DocumentRepository) idByPath(ctx context.Context, projectID, path string) (string, error) {
	var id string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE project_id = ? AND path = ?`, r.tables.Documents)
	err := r.db.QueryRowContext(ctx, query, projectID, path).Scan(&id)
	return id, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc                  models.Document
		kind                 string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.Name,
		&doc.Path,
		&kind,
		&doc.Content,
		&doc.SavedContent,
		&doc.IsModified,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Kind = models.Kind(kind)
	if doc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if doc.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &doc, nil
}

func requireAffected(res sql.Result, resourceType, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFound(resourceType, id)
	}
	return nil
}
