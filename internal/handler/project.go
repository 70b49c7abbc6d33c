package handler

import (
	"log/slog"
	"net/http"

	models "contractpad/internal/domain/models/docsystem"
	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService docsysSvc.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService docsysSvc.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects retrieves all projects
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}
	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/projects
// Returns 201 if created, 409 with the existing project if the name is taken
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateProjectRequest
	if !parseBody(w, r, &req) {
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, err, func(id string) (*models.Project, error) {
			return h.projectService.GetProject(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// updateProjectBody accepts an explicit null description to clear it
type updateProjectBody struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
}

// UpdateProject updates a project
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var body updateProjectBody
	if !parseBody(w, r, &body) {
		return
	}

	req := &docsysSvc.UpdateProjectRequest{
		Name:        body.Name,
		Description: body.Description.Patch(),
	}

	project, err := h.projectService.UpdateProject(r.Context(), r.PathValue("id"), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project with its documents and their histories
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
