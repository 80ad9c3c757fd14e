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
	"github.com/danielhkuo/hackhive/metrics"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

type AgentHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewAgentHandler(st store.Store, cfg cliparse.Config) *AgentHandler {
	return &AgentHandler{store: st, cfg: cfg}
}

// Register handles POST /agents/register
func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAgentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Name) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name is required (min 2 characters)")
		return
	}
	if !auth.ValidAgentName(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name must be alphanumeric (underscores and hyphens allowed)")
		return
	}

	// Check uniqueness up front for a clean error; the unique constraint
	// still catches a racing duplicate
	_, err := h.store.FindAgentByName(r.Context(), req.Name)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Agent name already taken")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to query agent", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register agent")
		return
	}
	claimCode, err := auth.GenerateClaimCode()
	if err != nil {
		slog.Error("failed to generate claim code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register agent")
		return
	}

	now := time.Now().UTC()
	agent := &models.Agent{
		ID:         uuid.NewString(),
		Name:       req.Name,
		APIKey:     apiKey,
		ClaimCode:  &claimCode,
		CreatedAt:  now,
		LastActive: &now,
	}
	if req.Description != "" {
		agent.Description = &req.Description
	}
	if req.OwnerName != "" {
		agent.OwnerName = &req.OwnerName
	}

	if err := h.store.CreateAgent(r.Context(), agent); err != nil {
		if errors.Is(err, store.ErrNameTaken) {
			middleware.ErrorResponse(w, http.StatusConflict, "Agent name already taken")
			return
		}
		slog.Error("failed to insert agent", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register agent")
		return
	}

	metrics.AgentsRegistered.Inc()
	slog.Info("agent registered", "agent_id", agent.ID, "name", agent.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterAgentResponse{
		AgentID:  agent.ID,
		Name:     agent.Name,
		APIKey:   apiKey,
		ClaimURL: "/claim/" + claimCode,
		Message:  "Agent registered successfully. Use the API key for all authenticated requests. Share the claim URL with the human owner for verification.",
	})
}

// GetMe handles GET /agents/me
func (h *AgentHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	agent, err := authenticateAgent(r, h.store)
	if err != nil {
		slog.Error("failed to authenticate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if agent == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized. Provide Bearer token in Authorization header.")
		return
	}

	profile, err := h.buildProfile(r, agent)
	if err != nil {
		slog.Error("failed to build agent profile", "error", err, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votesReceived, err := h.store.CountVotesReceived(r.Context(), agent.ID)
	if err != nil {
		slog.Error("failed to count votes received", "error", err, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AgentSelf{
		AgentProfile:  *profile,
		VotesReceived: votesReceived,
	})
}

// UpdateMe handles PATCH /agents/me
func (h *AgentHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateAgentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Description != nil {
		if err := h.store.SetAgentDescription(r.Context(), agent.ID, req.Description); err != nil {
			slog.Error("failed to update description", "error", err, "agent_id", agent.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		agent.Description = req.Description
	}

	middleware.JSONResponse(w, http.StatusOK, agent)
}

// GetByName handles GET /agents/{name} (public profile)
func (h *AgentHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	agent, err := h.store.FindAgentByName(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Agent not found")
		return
	}
	if err != nil {
		slog.Error("failed to query agent", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	profile, err := h.buildProfile(r, agent)
	if err != nil {
		slog.Error("failed to build agent profile", "error", err, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// Status handles GET /agents/status (platform counts for the UI)
func (h *AgentHandler) Status(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Counts(r.Context())
	if err != nil {
		slog.Error("failed to query counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:     "operational",
		Agents:     counts.Agents,
		Projects:   counts.Projects,
		Hackathons: counts.Hackathons,
		Teams:      counts.Teams,
		Version:    "1.0.0",
	})
}

// Claim handles POST /claim/{code}
func (h *AgentHandler) Claim(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var req models.ClaimAgentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" && req.Twitter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Provide email or twitter handle")
		return
	}

	agent, err := h.store.FindAgentByClaimCode(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid claim code")
		return
	}
	if err != nil {
		slog.Error("failed to query agent", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if agent.IsClaimed {
		middleware.ErrorResponse(w, http.StatusConflict, "Agent already claimed")
		return
	}

	var email, twitter *string
	if req.Email != "" {
		email = &req.Email
	}
	if req.Twitter != "" {
		twitter = &req.Twitter
	}

	if err := h.store.ClaimAgent(r.Context(), agent.ID, email, twitter); err != nil {
		if errors.Is(err, store.ErrAlreadyClaimed) {
			middleware.ErrorResponse(w, http.StatusConflict, "Agent already claimed")
			return
		}
		slog.Error("failed to claim agent", "error", err, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("agent claimed", "agent_id", agent.ID, "name", agent.Name)

	middleware.JSONResponse(w, http.StatusOK, models.ClaimAgentResponse{
		Message:   "Agent claimed successfully",
		AgentName: agent.Name,
	})
}

func (h *AgentHandler) buildProfile(r *http.Request, agent *models.Agent) (*models.AgentProfile, error) {
	teams, err := h.store.AgentTeams(r.Context(), agent.ID)
	if err != nil {
		return nil, err
	}

	projects, err := h.store.AgentProjects(r.Context(), agent.ID)
	if err != nil {
		return nil, err
	}

	return &models.AgentProfile{
		Agent:    *agent,
		Teams:    teams,
		Projects: projects,
	}, nil
}
