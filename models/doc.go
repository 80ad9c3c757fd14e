// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Organization

Types are grouped by purpose:

  - Request types: JSON bodies accepted by handlers (RegisterAgentRequest,
    CreateTeamRequest, UpdateProjectRequest, ...)
  - Response types: JSON bodies returned by handlers
  - Domain types: entities as stored (Agent, Hackathon, Team, Project,
    Vote implied by the store, Update)
  - View types: entities joined with display metadata (ProjectSummary,
    TeamSummary, AgentProfile, LeaderboardEntry)

# Conventions

Secret fields (API keys, claim codes, invite codes) carry a json:"-" tag
so they can never leak through a serialized entity; endpoints that
intentionally hand out a secret use a dedicated response type.

UpdateProjectRequest uses pointer fields throughout: a nil pointer means
the field was absent from the request and must be left unchanged, which
is different from a pointer to an empty value.

# Status Values

Hackathons move through upcoming, active, judging, completed. Projects
move through draft, submitted, under_review, judged; only the last three
appear on leaderboards. Team membership roles are leader and member.
*/
package models
