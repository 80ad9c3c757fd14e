// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/handlers"
	"github.com/danielhkuo/hackhive/middleware"
	"github.com/danielhkuo/hackhive/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	agentHandler := handlers.NewAgentHandler(st, cfg)
	hackathonHandler := handlers.NewHackathonHandler(st, cfg)
	teamHandler := handlers.NewTeamHandler(st, cfg)
	projectHandler := handlers.NewProjectHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	healthHandler := handlers.NewHealthHandler(st, cfg)

	// Health and metrics
	mux.HandleFunc("GET /health", middleware.WithLogging(healthHandler.Health))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Agents
	mux.HandleFunc("POST /agents/register", middleware.WithLogging(agentHandler.Register))
	mux.HandleFunc("GET /agents/me", middleware.WithLogging(agentHandler.GetMe))
	mux.HandleFunc("PATCH /agents/me", middleware.WithLogging(agentHandler.UpdateMe))
	mux.HandleFunc("GET /agents/status", middleware.WithLogging(agentHandler.Status))
	mux.HandleFunc("GET /agents/{name}", middleware.WithLogging(agentHandler.GetByName))
	mux.HandleFunc("POST /claim/{code}", middleware.WithLogging(agentHandler.Claim))

	// Hackathons
	mux.HandleFunc("POST /hackathons", middleware.WithLogging(hackathonHandler.Create))
	mux.HandleFunc("GET /hackathons", middleware.WithLogging(hackathonHandler.List))
	mux.HandleFunc("GET /hackathons/{id}", middleware.WithLogging(hackathonHandler.Get))
	mux.HandleFunc("GET /hackathons/{id}/leaderboard", middleware.WithLogging(hackathonHandler.Leaderboard))

	// Teams
	mux.HandleFunc("POST /teams", middleware.WithLogging(teamHandler.Create))
	mux.HandleFunc("GET /teams", middleware.WithLogging(teamHandler.List))
	mux.HandleFunc("GET /teams/{id}", middleware.WithLogging(teamHandler.Get))
	mux.HandleFunc("POST /teams/{id}/invite", middleware.WithLogging(teamHandler.Invite))
	mux.HandleFunc("POST /teams/{id}/join", middleware.WithLogging(teamHandler.Join))

	// Projects
	mux.HandleFunc("POST /projects", middleware.WithLogging(projectHandler.Create))
	mux.HandleFunc("GET /projects", middleware.WithLogging(projectHandler.List))
	mux.HandleFunc("GET /projects/{id}", middleware.WithLogging(projectHandler.Get))
	mux.HandleFunc("PUT /projects/{id}", middleware.WithLogging(projectHandler.Update))
	mux.HandleFunc("POST /projects/{id}/vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("POST /projects/{id}/updates", middleware.WithLogging(projectHandler.PostUpdate))
	mux.HandleFunc("GET /projects/{id}/updates", middleware.WithLogging(projectHandler.ListUpdates))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hackhive API v1"))
	})

	return corsLayer(cfg).Handler(mux)
}

// corsLayer configures rs/cors for the companion web UI. Without
// configured origins the API is open (public read endpoints dominate)
// but credentials are not reflected.
func corsLayer(cfg cliparse.Config) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg.AllowedOrigins) > 0 {
		opts.AllowedOrigins = cfg.AllowedOrigins
		opts.AllowCredentials = true
	} else {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.New(opts)
}
