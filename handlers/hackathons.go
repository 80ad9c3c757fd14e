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

type HackathonHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewHackathonHandler(st store.Store, cfg cliparse.Config) *HackathonHandler {
	return &HackathonHandler{store: st, cfg: cfg}
}

// Create handles POST /hackathons (admin only)
func (h *HackathonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r, h.cfg) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req models.CreateHackathonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name is required")
		return
	}

	hackathon := &models.Hackathon{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Tracks:    req.Tracks,
		Prizes:    req.Prizes,
		Status:    models.HackathonUpcoming,
		CreatedAt: time.Now().UTC(),
	}
	if req.Description != "" {
		hackathon.Description = &req.Description
	}
	if req.StartDate != "" {
		hackathon.StartDate = &req.StartDate
	}
	if req.EndDate != "" {
		hackathon.EndDate = &req.EndDate
	}

	if err := h.store.CreateHackathon(r.Context(), hackathon); err != nil {
		slog.Error("failed to insert hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
		return
	}

	slog.Info("hackathon created", "hackathon_id", hackathon.ID, "name", hackathon.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateHackathonResponse{
		ID:      hackathon.ID,
		Name:    hackathon.Name,
		Status:  hackathon.Status,
		Message: "Hackathon created",
	})
}

// List handles GET /hackathons
func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	hackathons, err := h.store.ListHackathons(r.Context())
	if err != nil {
		slog.Error("failed to query hackathons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, hackathons)
}

// Get handles GET /hackathons/{id}
func (h *HackathonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	hackathon, err := h.store.FindHackathon(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	projects, err := h.store.ListProjects(r.Context(), store.ProjectFilter{HackathonID: id})
	if err != nil {
		slog.Error("failed to query projects", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	teams, err := h.store.ListTeams(r.Context(), id)
	if err != nil {
		slog.Error("failed to query teams", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HackathonDetail{
		Hackathon: *hackathon,
		Projects:  projects,
		Teams:     teams,
	})
}

// Leaderboard handles GET /hackathons/{id}/leaderboard
// Pure read: no auth, no mutation. Rank is assigned by total_score
// descending with votes as the tiebreaker; ties do not share a rank.
func (h *HackathonHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	track := r.URL.Query().Get("track")

	entries, err := h.store.Leaderboard(r.Context(), id, track)
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	trackLabel := track
	if trackLabel == "" {
		trackLabel = "all"
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		HackathonID: id,
		Track:       trackLabel,
		Leaderboard: entries,
	})
}
