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
	"contractpad/internal/domain/models/editing"
	docsysRepo "contractpad/internal/domain/repositories/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/service/suggestion"
)

const defaultEditDescription = "Manual edit"

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   docsysRepo.DocumentRepository
	history   HistoryStore
	applier   *suggestion.Applier
	locks     *DocumentLocks
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	history HistoryStore,
	applier *suggestion.Applier,
	locks *DocumentLocks,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		history:   history,
		applier:   applier,
		locks:     locks,
		validator: validator,
		logger:    logger,
	}
}

// CreateDocument creates a document, filling an empty body from the kind's
// template, and records the initial history entry
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, domain.Invalid(err)
	}

	if err := s.validator.ValidateProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	kind := req.Kind
	if kind == "" {
		kind = models.KindFromName(name)
	}

	content := kind.Template(name)
	if req.Content != nil {
		content = *req.Content
	}

	now := time.Now()
	doc := &models.Document{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		Name:      name,
		Path:      BuildPath(req.Path, name),
		Kind:      kind,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc.SavedContent = doc.Content

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.history.AddEntry(doc, "Created "+doc.Name, editing.OriginManual)

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"kind", doc.Kind,
		"project_id", doc.ProjectID,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// ListDocuments lists a project's documents
func (s *documentService) ListDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	if err := s.validator.ValidateProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByProject(ctx, projectID)
}

// RenameDocument updates name and/or path. Content and history are untouched.
func (s *documentService) RenameDocument(ctx context.Context, id string, req *docsysSvc.RenameDocumentRequest) (*models.Document, error) {
	if err := s.validateRenameRequest(req); err != nil {
		return nil, domain.Invalid(err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := doc.Clone()
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Path != nil {
		updated.Path = BuildPath(*req.Path, updated.Name)
	}
	updated.UpdatedAt = time.Now()

	if err := s.docRepo.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("document renamed",
		"id", id,
		"name", updated.Name,
		"path", updated.Path,
	)

	return updated, nil
}

// EditDocument records a manual edit. A document with no history gets an
// "Opened" snapshot of its current content first so the edit can be undone.
// Submitting unchanged content is a no-op.
func (s *documentService) EditDocument(ctx context.Context, id string, req *docsysSvc.EditDocumentRequest) (*models.Document, error) {
	if err := s.validateEditRequest(req); err != nil {
		return nil, domain.Invalid(err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.Content == req.Content {
		return doc, nil
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultEditDescription
	}

	updated := doc.WithContent(req.Content)
	if err := s.docRepo.Save(ctx, updated); err != nil {
		return nil, err
	}

	if s.history.CurrentEntry(doc.ID) == nil {
		s.history.AddEntry(doc, "Opened "+doc.Name, editing.OriginManual)
	}
	s.history.AddEntry(updated, description, editing.OriginManual)

	s.logger.Debug("document edited",
		"id", id,
		"description", description,
		"bytes", len(updated.Content),
	)

	return updated, nil
}

// SaveDocument clears the modified flag
func (s *documentService) SaveDocument(ctx context.Context, id string) (*models.Document, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.IsModified {
		return doc, nil
	}

	saved := doc.MarkSaved()

	if err := s.docRepo.Save(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info("document saved", "id", id)

	return saved, nil
}

// DeleteDocument removes the document and clears its history
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.history.Clear(id)

	s.logger.Info("document deleted", "id", id)

	return nil
}

// Undo restores the previous snapshot into the live document
func (s *documentService) Undo(ctx context.Context, id string) (*docsysSvc.HistoryStepResult, error) {
	return s.step(ctx, id, "undo", s.applier.UndoLast, s.applier.RedoLast)
}

// Redo restores the next snapshot into the live document
func (s *documentService) Redo(ctx context.Context, id string) (*docsysSvc.HistoryStepResult, error) {
	return s.step(ctx, id, "redo", s.applier.RedoLast, s.applier.UndoLast)
}

// step moves the history position and persists the restored content. If
// the save fails, revert moves the position back.
func (s *documentService) step(
	ctx context.Context,
	id, direction string,
	move, revert func(*models.Document) *editing.HistoryEntry,
) (*docsysSvc.HistoryStepResult, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := move(doc)
	if entry == nil {
		return s.stepResult(doc, nil), nil
	}

	restored := doc.WithContent(entry.Content)
	if err := s.docRepo.Save(ctx, restored); err != nil {
		revert(doc)
		return nil, fmt.Errorf("failed to persist %s: %w", direction, err)
	}

	s.logger.Debug("history step",
		"id", id,
		"direction", direction,
		"entry_id", entry.ID,
		"description", entry.Description,
	)

	return s.stepResult(restored, entry), nil
}

func (s *documentService) stepResult(doc *models.Document, entry *editing.HistoryEntry) *docsysSvc.HistoryStepResult {
	return &docsysSvc.HistoryStepResult{
		Document: doc,
		Entry:    entry,
		CanUndo:  s.history.CanUndo(doc.ID),
		CanRedo:  s.history.CanRedo(doc.ID),
	}
}

// GetHistory returns the document's timeline
func (s *documentService) GetHistory(ctx context.Context, id string) (*editing.HistoryView, error) {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.history.View(id), nil
}

// validateCreateRequest validates a create document request
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
			validation.By(validateSimpleName),
		),
		validation.Field(&req.Path,
			validation.Length(0, config.MaxDocumentPathLength),
			validation.By(ValidatePath),
		),
		validation.Field(&req.Kind, validation.By(validateKind)),
		validation.Field(&req.Content, validation.By(validateContentSize)),
	)
}

// validateRenameRequest validates a rename request; at least one field is required
func (s *documentService) validateRenameRequest(req *docsysSvc.RenameDocumentRequest) error {
	if req.Name == nil && req.Path == nil {
		return fmt.Errorf("name or path is required")
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxDocumentNameLength),
			validation.By(validateSimpleName),
		),
		validation.Field(&req.Path,
			validation.Length(0, config.MaxDocumentPathLength),
			validation.By(ValidatePath),
		),
	)
}

// validateEditRequest validates a manual edit
func (s *documentService) validateEditRequest(req *docsysSvc.EditDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.By(validateContentSize)),
		validation.Field(&req.Description, validation.Length(0, config.MaxEditDescriptionLength)),
	)
}

func validateKind(value interface{}) error {
	kind, _ := value.(models.Kind)
	if kind == "" || kind.Valid() {
		return nil
	}
	return fmt.Errorf("unsupported kind %q", kind)
}

func validateContentSize(value interface{}) error {
	content, _ := stringValue(value)
	if len(content) > config.MaxDocumentSize {
		return fmt.Errorf("content exceeds %d bytes", config.MaxDocumentSize)
	}
	return nil
}
