// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/metrics"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

type VotingHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(st store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg}
}

// Vote handles POST /projects/{id}/vote
//
// The store runs the whole vote atomically; error precedence is fixed:
// missing project, then duplicate vote, then own-team vote. A duplicate
// that races past the store's existence check is rejected by the votes
// primary key and surfaces as the same conflict.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
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

	projectID := r.PathValue("id")

	votes, err := h.store.CastVote(r.Context(), agent.ID, projectID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted for this project")
		return
	case errors.Is(err, store.ErrOwnProject):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Cannot vote for your own project")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "project_id", projectID, "agent_id", agent.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.VotesCast.Inc()
	slog.Info("vote recorded", "project_id", projectID, "agent_id", agent.ID, "votes", votes)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message:   "Vote recorded",
		ProjectID: projectID,
		Votes:     votes,
	})
}
