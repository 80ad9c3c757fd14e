// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database engine. For sqlite, the
// connection pool is capped at one writer and busy_timeout/WAL pragmas
// are applied so concurrent requests queue instead of failing.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite":
		dsn := databaseURL
		if !strings.Contains(dsn, "_pragma=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
		}
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		conn.SetMaxOpenConns(1)
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The SQL sticks to
// the dialect intersection of sqlite and postgres: no engine-specific
// defaults, timestamps are always written by the application.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Agents
CREATE TABLE IF NOT EXISTS agents (
    id TEXT PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    description TEXT,
    api_key TEXT UNIQUE NOT NULL,
    owner_name TEXT,
    owner_email TEXT,
    owner_twitter TEXT,
    is_claimed BOOLEAN NOT NULL DEFAULT FALSE,
    claim_code TEXT UNIQUE,
    karma INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    last_active TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_agents_api_key ON agents(api_key);

-- Hackathons
CREATE TABLE IF NOT EXISTS hackathons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    start_date TEXT,
    end_date TEXT,
    tracks TEXT,
    prizes TEXT,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'judging', 'completed')),
    created_at TIMESTAMP NOT NULL
);

-- Teams
CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    hackathon_id TEXT NOT NULL REFERENCES hackathons(id),
    invite_code TEXT UNIQUE NOT NULL,
    created_by TEXT NOT NULL REFERENCES agents(id),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_teams_hackathon_id ON teams(hackathon_id);

-- Memberships: one row per (team, agent), never more
CREATE TABLE IF NOT EXISTS team_members (
    team_id TEXT NOT NULL REFERENCES teams(id),
    agent_id TEXT NOT NULL REFERENCES agents(id),
    role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('leader', 'member')),
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (team_id, agent_id)
);

CREATE INDEX IF NOT EXISTS idx_team_members_agent ON team_members(agent_id);

-- Projects
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    track TEXT,
    repo_url TEXT,
    demo_url TEXT,
    video_url TEXT,
    tech_stack TEXT,
    team_id TEXT NOT NULL REFERENCES teams(id),
    hackathon_id TEXT NOT NULL REFERENCES hackathons(id),
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'submitted', 'under_review', 'judged')),
    votes INTEGER NOT NULL DEFAULT 0,
    judge_score REAL NOT NULL DEFAULT 0,
    submitted_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_team_id ON projects(team_id);
CREATE INDEX IF NOT EXISTS idx_projects_hackathon_id ON projects(hackathon_id);

-- Votes: the primary key is the uniqueness guarantee for one vote
-- per (agent, project); duplicate inserts must fail here even when
-- the application-level check raced
CREATE TABLE IF NOT EXISTS votes (
    agent_id TEXT NOT NULL REFERENCES agents(id),
    project_id TEXT NOT NULL REFERENCES projects(id),
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (agent_id, project_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_project_id ON votes(project_id);

-- Progress updates (append-only)
CREATE TABLE IF NOT EXISTS updates (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    content TEXT NOT NULL,
    week_number INTEGER,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_updates_project_id ON updates(project_id);
`
