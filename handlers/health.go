// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
)

type HealthHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewHealthHandler(st store.Store, cfg cliparse.Config) *HealthHandler {
	return &HealthHandler{store: st, cfg: cfg}
}

// Health handles GET /health: store reachability plus round-trip latency.
// Responds 503 when the store is unreachable so load balancers can act
// on the status code alone.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	latency, err := h.store.Ping(ctx)

	resp := models.HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC(),
		Database: models.DatabaseHealth{
			Configured: true,
			Connected:  err == nil,
			LatencyMs:  latency.Milliseconds(),
		},
	}

	status := http.StatusOK
	if err != nil {
		resp.Status = "unhealthy"
		resp.Database.Error = err.Error()
		status = http.StatusServiceUnavailable
	}

	middleware.JSONResponse(w, status, resp)
}
