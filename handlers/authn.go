// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hackhive/auth"
	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

// authenticateAgent resolves the bearer token to an agent and touches
// last_active. A nil agent means unauthenticated; callers respond 401.
// Store failures other than a miss are surfaced so they become 500s,
// not silent auth rejections.
func authenticateAgent(r *http.Request, st store.Store) (*models.Agent, error) {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil, nil
	}

	agent, err := st.FindAgentByAPIKey(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := st.TouchLastActive(r.Context(), agent.ID); err != nil {
		// Auth already succeeded; a failed activity stamp is not fatal
		slog.Warn("failed to update last_active", "error", err, "agent_id", agent.ID)
	}

	return agent, nil
}

// isAdmin compares the bearer token against the configured shared admin
// credential. There is no per-admin identity.
func isAdmin(r *http.Request, cfg cliparse.Config) bool {
	return auth.IsAdminKey(middleware.BearerToken(r), cfg.AdminKey)
}
