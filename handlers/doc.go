// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Hackhive API.

This is the only copy of the authorization and invariant logic: every
handler talks to the store.Store interface, and the same code serves
every supported database engine.

# Handler Structure

Each handler group is a struct with injected dependencies:

	agentHandler := handlers.NewAgentHandler(st, cfg)

# Handler Groups

  - AgentHandler: registration, self profile, public profiles, claims,
    platform status
  - HackathonHandler: admin creation, listing, detail, leaderboard
  - TeamHandler: creation, invite codes (leader/admin only), joins
  - ProjectHandler: draft creation, partial updates, progress updates
  - VotingHandler: vote casting with karma propagation
  - HealthHandler: store reachability

# Authentication

Mutating and self endpoints authenticate the Authorization bearer token
against the agents table via authenticateAgent, which also stamps
last_active. A nil agent maps to 401. Admin access is a single shared
credential checked by isAdmin; it grants hackathon creation, project
update override, judge_score writes, and invite-code access.

# Error Mapping

Store sentinel errors translate to HTTP statuses:

	store.ErrNotFound       → 404
	store.ErrNameTaken      → 409
	store.ErrAlreadyClaimed → 409
	store.ErrAlreadyMember  → 409
	store.ErrAlreadyVoted   → 409
	store.ErrTeamFull       → 400
	store.ErrOwnProject     → 400
	store.ErrNoFields       → 400

Anything else is logged and returned as a generic 500; details never
reach the client.
*/
package handlers
