// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
and records the request-duration histogram labeled by method and the
matched route pattern.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Every error body has the shape {"error": "<message>"}.

Parse JSON request bodies:

	var req models.CreateTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Bearer Tokens

BearerToken pulls the API key out of the Authorization header,
tolerating a missing "Bearer " scheme prefix the way the original API
clients expect. An empty return means no credentials were presented;
handlers map that to 401.

CORS is not here: the router wraps the whole mux with rs/cors.
*/
package middleware
