// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/hackhive/auth"
	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

type TeamHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewTeamHandler(st store.Store, cfg cliparse.Config) *TeamHandler {
	return &TeamHandler{store: st, cfg: cfg}
}

// Create handles POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Team name is required")
		return
	}
	if req.HackathonID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hackathon_id is required")
		return
	}

	exists, err := h.store.HackathonExists(r.Context(), req.HackathonID)
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}

	inviteCode, err := auth.GenerateInviteCode()
	if err != nil {
		slog.Error("failed to generate invite code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	team := &models.Team{
		ID:          uuid.NewString(),
		Name:        req.Name,
		HackathonID: req.HackathonID,
		InviteCode:  inviteCode,
		CreatedBy:   agent.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.store.CreateTeam(r.Context(), team); err != nil {
		slog.Error("failed to create team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	slog.Info("team created", "team_id", team.ID, "name", team.Name, "leader", agent.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateTeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		HackathonID: team.HackathonID,
		InviteCode:  inviteCode,
		Message:     "Team created. Share the invite code for others to join.",
	})
}

// List handles GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context(), r.URL.Query().Get("hackathon_id"))
	if err != nil {
		slog.Error("failed to query teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, teams)
}

// Get handles GET /teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	team, err := h.store.FindTeam(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		slog.Error("failed to query team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	members, err := h.store.TeamMembers(r.Context(), id)
	if err != nil {
		slog.Error("failed to query members", "error", err, "team_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	projects, err := h.store.TeamProjects(r.Context(), id)
	if err != nil {
		slog.Error("failed to query team projects", "error", err, "team_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TeamDetail{
		Team:     *team,
		Members:  members,
		Projects: projects,
	})
}

// Invite handles POST /teams/{id}/invite
// The invite code goes only to the team leader (or admin); regular
// members never see it through the API.
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
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
	team, err := h.store.FindTeam(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		slog.Error("failed to query team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !admin {
		role, err := h.store.FindMembershipRole(r.Context(), id, agent.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to query membership", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if role != models.RoleLeader {
			middleware.ErrorResponse(w, http.StatusForbidden, "Only team leaders can generate invite links")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.InviteCodeResponse{
		InviteCode: team.InviteCode,
		JoinURL:    "/teams/" + id + "/join",
		Message:    "Share this invite code: " + team.InviteCode,
	})
}

// Join handles POST /teams/{id}/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
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

	var req models.JoinTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.InviteCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invite_code is required")
		return
	}

	id := r.PathValue("id")

	// The invite code is part of the lookup key: a wrong code yields the
	// same 404 as a missing team
	team, err := h.store.FindTeamByInvite(r.Context(), id, req.InviteCode)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid team ID or invite code")
		return
	}
	if err != nil {
		slog.Error("failed to query team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.store.AddTeamMember(r.Context(), id, agent.ID, models.RoleMember)
	switch {
	case errors.Is(err, store.ErrTeamFull):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Team is full (max 5 members)")
		return
	case errors.Is(err, store.ErrAlreadyMember):
		middleware.ErrorResponse(w, http.StatusConflict, "Already a member of this team")
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid team ID or invite code")
		return
	case err != nil:
		slog.Error("failed to join team", "error", err, "team_id", id, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("agent joined team", "team_id", id, "agent_id", agent.ID)

	middleware.JSONResponse(w, http.StatusOK, models.JoinTeamResponse{
		Message: "Joined team \"" + team.Name + "\" successfully",
		TeamID:  id,
	})
}
