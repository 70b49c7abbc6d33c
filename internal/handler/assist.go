package handler

import (
	"log/slog"
	"net/http"

	"contractpad/internal/domain/models/assist"
	assistSvc "contractpad/internal/domain/services/assist"
	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/httputil"
)

// ChatHandler handles chat sessions with the assistant
type ChatHandler struct {
	chatService assistSvc.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService assistSvc.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// CreateSession starts a chat session
// POST /api/chats
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req assistSvc.CreateSessionRequest
	if !parseBody(w, r, &req) {
		return
	}

	session, err := h.chatService.CreateSession(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// ListMessages returns a session's messages with their pending suggestions
// GET /api/chats/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.ListMessages(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	if messages == nil {
		messages = []assist.Message{}
	}
	httputil.RespondJSON(w, http.StatusOK, messages)
}

// SendMessage posts a user message and returns the assistant's reply
// POST /api/chats/{id}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req assistSvc.SendMessageRequest
	if !parseBody(w, r, &req) {
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, reply)
}

// SuggestionHandler exposes preview/apply/dismiss for pending suggestions
type SuggestionHandler struct {
	suggestionService assistSvc.SuggestionService
	logger            *slog.Logger
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestionService assistSvc.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// Preview renders a pending suggestion
// GET /api/suggestions/{id}/preview
func (h *SuggestionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.suggestionService.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, preview)
}

type applySuggestionBody struct {
	DocumentID string `json:"document_id"`
}

// Apply confirms a pending suggestion. The body is optional; without a
// document_id the first change's target is used.
// POST /api/suggestions/{id}/apply
func (h *SuggestionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var body applySuggestionBody
	if r.ContentLength != 0 {
		if !parseBody(w, r, &body) {
			return
		}
	}

	doc, err := h.suggestionService.Apply(r.Context(), r.PathValue("id"), body.DocumentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Dismiss removes a pending suggestion everywhere
// POST /api/suggestions/{id}/dismiss
func (h *SuggestionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	removed, err := h.suggestionService.Dismiss(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// CompileHandler runs the (mocked) compiler against stored documents
type CompileHandler struct {
	docService docsysSvc.DocumentService
	compiler   assistSvc.Compiler
	logger     *slog.Logger
}

// NewCompileHandler creates a new compile handler
func NewCompileHandler(docService docsysSvc.DocumentService, compiler assistSvc.Compiler, logger *slog.Logger) *CompileHandler {
	return &CompileHandler{
		docService: docService,
		compiler:   compiler,
		logger:     logger,
	}
}

// Compile compiles a document's current content
// POST /api/documents/{id}/compile
func (h *CompileHandler) Compile(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docService.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.compiler.Compile(r.Context(), doc)
	if err != nil {
		h.logger.Error("compile failed", "document_id", doc.ID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// RunTests runs the document's tests
// POST /api/documents/{id}/test
func (h *CompileHandler) RunTests(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docService.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.compiler.RunTests(r.Context(), doc)
	if err != nil {
		h.logger.Error("test run failed", "document_id", doc.ID, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
