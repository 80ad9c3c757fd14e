// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/hackhive/models"
)

// Sentinel errors returned by Store implementations. Handlers translate
// these into HTTP statuses; anything else is an internal error.
var (
	ErrNotFound       = errors.New("not found")
	ErrNameTaken      = errors.New("agent name already taken")
	ErrAlreadyClaimed = errors.New("agent already claimed")
	ErrAlreadyMember  = errors.New("already a member of this team")
	ErrTeamFull       = errors.New("team is full")
	ErrAlreadyVoted   = errors.New("already voted for this project")
	ErrOwnProject     = errors.New("cannot vote for your own project")
	ErrNoFields       = errors.New("no fields to update")
)

// ProjectFilter narrows ListProjects. Empty fields are ignored.
type ProjectFilter struct {
	Track       string
	HackathonID string
	Status      string
	Sort        string // "votes" (default) or "newest"
}

// ProjectPatch carries a partial project update. Nil fields are left
// unchanged. Setting Status to "submitted" stamps submitted_at.
type ProjectPatch struct {
	Name        *string
	Description *string
	Track       *string
	RepoURL     *string
	DemoURL     *string
	VideoURL    *string
	TechStack   *[]string
	Status      *string
	JudgeScore  *float64
}

// PlatformCounts backs GET /agents/status.
type PlatformCounts struct {
	Agents     int
	Projects   int
	Hackathons int
	Teams      int
}

// Store is the single repository contract all handlers talk to. One SQL
// implementation serves every supported engine; there are no per-engine
// handler sets.
//
// Compound mutations (CreateTeam, AddTeamMember, CastVote) are atomic:
// either every row they describe is written or none is.
type Store interface {
	// Agents
	CreateAgent(ctx context.Context, a *models.Agent) error
	FindAgentByAPIKey(ctx context.Context, apiKey string) (*models.Agent, error)
	FindAgentByName(ctx context.Context, name string) (*models.Agent, error)
	FindAgentByClaimCode(ctx context.Context, code string) (*models.Agent, error)
	TouchLastActive(ctx context.Context, agentID string) error
	SetAgentDescription(ctx context.Context, agentID string, description *string) error
	ClaimAgent(ctx context.Context, agentID string, email, twitter *string) error
	AgentTeams(ctx context.Context, agentID string) ([]models.AgentTeam, error)
	AgentProjects(ctx context.Context, agentID string) ([]models.Project, error)
	CountVotesReceived(ctx context.Context, agentID string) (int, error)

	// Hackathons
	CreateHackathon(ctx context.Context, h *models.Hackathon) error
	ListHackathons(ctx context.Context) ([]models.Hackathon, error)
	FindHackathon(ctx context.Context, id string) (*models.Hackathon, error)
	HackathonExists(ctx context.Context, id string) (bool, error)
	Leaderboard(ctx context.Context, hackathonID, track string) ([]models.LeaderboardEntry, error)

	// Teams
	CreateTeam(ctx context.Context, t *models.Team) error
	FindTeam(ctx context.Context, id string) (*models.Team, error)
	FindTeamByInvite(ctx context.Context, id, inviteCode string) (*models.Team, error)
	ListTeams(ctx context.Context, hackathonID string) ([]models.TeamSummary, error)
	TeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)
	TeamProjects(ctx context.Context, teamID string) ([]models.Project, error)
	FindMembershipRole(ctx context.Context, teamID, agentID string) (string, error)
	CountTeamMembers(ctx context.Context, teamID string) (int, error)
	AddTeamMember(ctx context.Context, teamID, agentID, role string) error

	// Projects
	CreateProject(ctx context.Context, p *models.Project) error
	FindProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, f ProjectFilter) ([]models.ProjectSummary, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error)

	// Votes
	CastVote(ctx context.Context, agentID, projectID string) (int, error)

	// Updates
	InsertUpdate(ctx context.Context, u *models.Update) error
	ProjectUpdates(ctx context.Context, projectID string) ([]models.Update, error)

	// Operational
	Counts(ctx context.Context) (PlatformCounts, error)
	Ping(ctx context.Context) (time.Duration, error)
}
