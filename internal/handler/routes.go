package handler

import "net/http"

// Handlers groups every HTTP handler the server exposes
type Handlers struct {
	Projects    *ProjectHandler
	Documents   *DocumentHandler
	Chat        *ChatHandler
	Suggestions *SuggestionHandler
	Compile     *CompileHandler
	Preferences *PreferencesHandler
}

// RegisterRoutes mounts the API on mux (Go 1.22+ enhanced patterns)
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	// Health check
	mux.HandleFunc("GET /health", h.Documents.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST /api/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", h.Projects.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", h.Projects.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Projects.DeleteProject)

	// Project-scoped document listing and creation alias
	mux.HandleFunc("GET /api/projects/{id}/documents", h.Documents.ListDocuments)
	mux.HandleFunc("POST /api/projects/{id}/documents", h.Documents.CreateDocument)

	// Document routes
	mux.HandleFunc("POST /api/documents", h.Documents.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", h.Documents.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", h.Documents.RenameDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Documents.DeleteDocument)
	mux.HandleFunc("PUT /api/documents/{id}/content", h.Documents.EditDocument)
	mux.HandleFunc("POST /api/documents/{id}/save", h.Documents.SaveDocument)

	// Edit history
	mux.HandleFunc("POST /api/documents/{id}/undo", h.Documents.Undo)
	mux.HandleFunc("POST /api/documents/{id}/redo", h.Documents.Redo)
	mux.HandleFunc("GET /api/documents/{id}/history", h.Documents.GetHistory)

	// Mocked toolchain
	mux.HandleFunc("POST /api/documents/{id}/compile", h.Compile.Compile)
	mux.HandleFunc("POST /api/documents/{id}/test", h.Compile.RunTests)

	// Chat routes
	mux.HandleFunc("POST /api/chats", h.Chat.CreateSession)
	mux.HandleFunc("GET /api/chats/{id}/messages", h.Chat.ListMessages)
	mux.HandleFunc("POST /api/chats/{id}/messages", h.Chat.SendMessage)

	// Suggestion protocol
	mux.HandleFunc("GET /api/suggestions/{id}/preview", h.Suggestions.Preview)
	mux.HandleFunc("POST /api/suggestions/{id}/apply", h.Suggestions.Apply)
	mux.HandleFunc("POST /api/suggestions/{id}/dismiss", h.Suggestions.Dismiss)

	// Preferences
	mux.HandleFunc("GET /api/preferences", h.Preferences.GetPreferences)
	mux.HandleFunc("PUT /api/preferences", h.Preferences.UpdatePreferences)
}
