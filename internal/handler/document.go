package handler

import (
	"log/slog"
	"net/http"
	"time"

	models "contractpad/internal/domain/models/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/httputil"
)

// DocumentHandler handles document HTTP requests, including manual edits
// and undo/redo
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// CreateDocument creates a new document
// POST /api/documents
// POST /api/projects/{id}/documents (project ID from path)
// Returns 201 if created, 409 with the existing document if the path is taken
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}
	if projectID := r.PathValue("id"); projectID != "" {
		req.ProjectID = projectID
	}

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func(id string) (*models.Document, error) {
			return h.docService.GetDocument(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments lists a project's documents
// GET /api/projects/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListDocuments(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	if docs == nil {
		docs = []models.Document{}
	}
	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docService.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RenameDocument changes a document's name and/or path
// PATCH /api/documents/{id}
func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.RenameDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}

	doc, err := h.docService.RenameDocument(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// EditDocument records a manual edit
// PUT /api/documents/{id}/content
func (h *DocumentHandler) EditDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.EditDocumentRequest
	if !parseBody(w, r, &req) {
		return
	}

	doc, err := h.docService.EditDocument(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SaveDocument clears the modified flag
// POST /api/documents/{id}/save
func (h *DocumentHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docService.SaveDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document and its history
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.docService.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Undo steps the document back one history entry
// POST /api/documents/{id}/undo
func (h *DocumentHandler) Undo(w http.ResponseWriter, r *http.Request) {
	result, err := h.docService.Undo(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Redo steps the document forward one history entry
// POST /api/documents/{id}/redo
func (h *DocumentHandler) Redo(w http.ResponseWriter, r *http.Request) {
	result, err := h.docService.Redo(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetHistory returns the document's undo/redo timeline
// GET /api/documents/{id}/history
func (h *DocumentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	view, err := h.docService.GetHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
