// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires every API endpoint to its handler and wraps the
// mux with CORS and request logging. Routes use method-qualified
// patterns, so a POST to a GET-only route is rejected by the mux
// itself. The literal /agents/status route is matched ahead of the
// /agents/{name} wildcard by the mux's precedence rules.
package router
