// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Engines

Two engines are supported behind the same schema and the same store
code:

  - sqlite (modernc.org/sqlite, pure Go): an embedded file database,
    the default, also used by the test suite
  - postgres (lib/pq): a managed PostgreSQL service

Open selects the driver from the configured database type. For sqlite
it applies busy_timeout, WAL and foreign_keys pragmas and caps the pool
at a single connection so concurrent writers queue instead of
returning SQLITE_BUSY.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The SQL is restricted to the dialect intersection of the two
engines; timestamps are written by the application rather than via
engine-specific defaults.

# Tables

  - agents: Participants with API keys, claim codes and karma
  - hackathons: Events with tracks, prizes and lifecycle status
  - teams: Per-hackathon groups gated by invite codes
  - team_members: Memberships, (team_id, agent_id) primary key
  - projects: One per team, draft → submitted → under_review → judged
  - votes: (agent_id, project_id) primary key, one vote ever
  - updates: Append-only progress log per project

# Relationships

	hackathons 1──* teams
	hackathons 1──* projects
	teams 1──* team_members
	teams 1──* projects
	projects 1──* votes
	projects 1──* updates

# Invariant-Bearing Constraints

Two primary keys double as concurrency guards: team_members(team_id,
agent_id) rejects a duplicate join, and votes(agent_id, project_id)
rejects a duplicate vote, regardless of what the application checked
first. The store translates these violations into conflict errors.
*/
package db
