// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

type ProjectHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewProjectHandler(st store.Store, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{store: st, cfg: cfg}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	agent, err := authenticateAgent(r, h.store)
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if agent == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Project name is required")
		return
	}
	if req.TeamID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_id is required")
		return
	}
	if req.HackathonID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hackathon_id is required")
		return
	}

	// Writes are gated on team membership
	_, err = h.store.FindMembershipRole(r.Context(), req.TeamID, agent.ID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You must be a team member to submit a project")
		return
	}
	if err != nil {
		slog.Error("failed to query membership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		TechStack:   req.TechStack,
		TeamID:      req.TeamID,
		HackathonID: req.HackathonID,
		Status:      models.ProjectDraft, // draft regardless of input
		CreatedAt:   time.Now().UTC(),
	}
	if req.Description != "" {
		project.Description = &req.Description
	}
	if req.Track != "" {
		project.Track = &req.Track
	}
	if req.RepoURL != "" {
		project.RepoURL = &req.RepoURL
	}
	if req.DemoURL != "" {
		project.DemoURL = &req.DemoURL
	}
	if req.VideoURL != "" {
		project.VideoURL = &req.VideoURL
	}

	if err := h.store.CreateProject(r.Context(), project); err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	slog.Info("project created", "project_id", project.ID, "team_id", project.TeamID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		ID:      project.ID,
		Name:    project.Name,
		Status:  project.Status,
		Message: "Project created as draft. Update and submit when ready.",
	})
}

// List handles GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.store.ListProjects(r.Context(), store.ProjectFilter{
		Track:       q.Get("track"),
		HackathonID: q.Get("hackathon_id"),
		Status:      q.Get("status"),
		Sort:        q.Get("sort"),
	})
	if err != nil {
		slog.Error("failed to query projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, projects)
}

// Get handles GET /projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := h.store.FindProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	detail := models.ProjectDetail{Project: *project}

	if team, err := h.store.FindTeam(r.Context(), project.TeamID); err == nil {
		detail.TeamName = &team.Name
	}
	if hackathon, err := h.store.FindHackathon(r.Context(), project.HackathonID); err == nil {
		detail.HackathonName = &hackathon.Name
	}

	members, err := h.store.TeamMembers(r.Context(), project.TeamID)
	if err != nil {
		slog.Error("failed to query members", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	detail.TeamMembers = members

	updates, err := h.store.ProjectUpdates(r.Context(), id)
	if err != nil {
		slog.Error("failed to query updates", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	detail.Updates = updates

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// Update handles PUT /projects/{id}
// Partial semantics: only fields present in the body change. Setting
// status to "submitted" stamps submitted_at.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	agent, err := authenticateAgent(r, h.store)
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	admin := isAdmin(r, h.cfg)
	if agent == nil && !admin {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	project, err := h.store.FindProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !admin {
		_, err = h.store.FindMembershipRole(r.Context(), project.TeamID, agent.ID)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Only team members can update the project")
			return
		}
		if err != nil {
			slog.Error("failed to query membership", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	var req models.UpdateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Status != nil && !validProjectStatus(*req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid status")
		return
	}

	patch := store.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Track:       req.Track,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		VideoURL:    req.VideoURL,
		TechStack:   req.TechStack,
		Status:      req.Status,
	}
	// judge_score is set by judges, not teams
	if admin {
		patch.JudgeScore = req.JudgeScore
	}

	updated, err := h.store.UpdateProject(r.Context(), id, patch)
	switch {
	case errors.Is(err, store.ErrNoFields):
		middleware.ErrorResponse(w, http.StatusBadRequest, "No fields to update")
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	case err != nil:
		slog.Error("failed to update project", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// PostUpdate handles POST /projects/{id}/updates
func (h *ProjectHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	agent, err := authenticateAgent(r, h.store)
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if agent == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	project, err := h.store.FindProject(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.store.FindMembershipRole(r.Context(), project.TeamID, agent.ID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only team members can post updates")
		return
	}
	if err != nil {
		slog.Error("failed to query membership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.PostUpdateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Content is required")
		return
	}

	update := &models.Update{
		ID:         uuid.NewString(),
		ProjectID:  id,
		Content:    req.Content,
		WeekNumber: req.WeekNumber,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.store.InsertUpdate(r.Context(), update); err != nil {
		slog.Error("failed to insert update", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post update")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.PostUpdateResponse{
		ID:        update.ID,
		ProjectID: id,
		Message:   "Update posted",
	})
}

// ListUpdates handles GET /projects/{id}/updates
func (h *ProjectHandler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.store.FindProject(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	updates, err := h.store.ProjectUpdates(r.Context(), id)
	if err != nil {
		slog.Error("failed to query updates", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updates)
}

func validProjectStatus(status string) bool {
	switch status {
	case models.ProjectDraft, models.ProjectSubmitted, models.ProjectUnderReview, models.ProjectJudged:
		return true
	}
	return false
}
