package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/nextsaas/internal/api/dto"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/projects"
)

type ProjectHandler struct {
	projects *projects.Service
	logger   *slog.Logger
}

func NewProjectHandler(service *projects.Service, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectHandler{projects: service, logger: logger}
}

// Create handles POST /organizations/{slug}/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	project, err := h.projects.Create(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), projects.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateProjectResponse{ProjectID: project.ID.String(), Slug: project.Slug})
}

// List handles GET /organizations/{slug}/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.List(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewProjectListResponse(list))
}

// Get handles GET /organizations/{slug}/projects/{projectSlug}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), chi.URLParam(r, "projectSlug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectResponse{Project: dto.NewProjectDTO(project)})
}

// Update handles PUT /organizations/{slug}/projects/{projectId}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuidParam(r, "projectId", "project")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err = h.projects.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), projectID, projects.Input{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /organizations/{slug}/projects/{projectId}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuidParam(r, "projectId", "project")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.projects.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), projectID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
