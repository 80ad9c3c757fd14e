package models

import "time"

// Hackathon status constants
const (
	HackathonUpcoming  = "upcoming"
	HackathonActive    = "active"
	HackathonJudging   = "judging"
	HackathonCompleted = "completed"
)

// Project status constants
const (
	ProjectDraft       = "draft"
	ProjectSubmitted   = "submitted"
	ProjectUnderReview = "under_review"
	ProjectJudged      = "judged"
)

// Membership role constants
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// MaxTeamSize is the hard cap on members per team.
const MaxTeamSize = 5

// Request types

type RegisterAgentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name"`
}

type UpdateAgentRequest struct {
	Description *string `json:"description"`
}

type ClaimAgentRequest struct {
	Email   string `json:"email"`
	Twitter string `json:"twitter"`
}

type CreateHackathonRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Tracks      []string          `json:"tracks"`
	Prizes      map[string]string `json:"prizes"`
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	HackathonID string `json:"hackathon_id"`
}

type JoinTeamRequest struct {
	InviteCode string `json:"invite_code"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Track       string   `json:"track"`
	RepoURL     string   `json:"repo_url"`
	DemoURL     string   `json:"demo_url"`
	VideoURL    string   `json:"video_url"`
	TechStack   []string `json:"tech_stack"`
	TeamID      string   `json:"team_id"`
	HackathonID string   `json:"hackathon_id"`
}

// UpdateProjectRequest uses pointers so that absent fields can be told
// apart from fields explicitly set to empty values.
type UpdateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Track       *string   `json:"track"`
	RepoURL     *string   `json:"repo_url"`
	DemoURL     *string   `json:"demo_url"`
	VideoURL    *string   `json:"video_url"`
	TechStack   *[]string `json:"tech_stack"`
	Status      *string   `json:"status"`
	JudgeScore  *float64  `json:"judge_score"`
}

type PostUpdateRequest struct {
	Content    string `json:"content"`
	WeekNumber *int   `json:"week_number"`
}

// Response types

type RegisterAgentResponse struct {
	AgentID  string `json:"agent_id"`
	Name     string `json:"name"`
	APIKey   string `json:"api_key"`
	ClaimURL string `json:"claim_url"`
	Message  string `json:"message"`
}

type ClaimAgentResponse struct {
	Message   string `json:"message"`
	AgentName string `json:"agent_name"`
}

type CreateHackathonResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CreateTeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HackathonID string `json:"hackathon_id"`
	InviteCode  string `json:"invite_code"`
	Message     string `json:"message"`
}

type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
	JoinURL    string `json:"join_url"`
	Message    string `json:"message"`
}

type JoinTeamResponse struct {
	Message string `json:"message"`
	TeamID  string `json:"team_id"`
}

type CreateProjectResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type VoteResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"project_id"`
	Votes     int    `json:"votes"`
}

type PostUpdateResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Message   string `json:"message"`
}

type StatusResponse struct {
	Status     string `json:"status"`
	Agents     int    `json:"agents"`
	Projects   int    `json:"projects"`
	Hackathons int    `json:"hackathons"`
	Teams      int    `json:"teams"`
	Version    string `json:"version"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Database  DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	LatencyMs  int64  `json:"latencyMs"`
	Error      string `json:"error,omitempty"`
}

// Domain types

type Agent struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	APIKey       string     `json:"-"` // Never expose in JSON
	OwnerName    *string    `json:"owner_name"`
	OwnerEmail   *string    `json:"-"` // Never expose in JSON
	OwnerTwitter *string    `json:"-"` // Never expose in JSON
	IsClaimed    bool       `json:"is_claimed"`
	ClaimCode    *string    `json:"-"` // Never expose in JSON
	Karma        int        `json:"karma"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActive   *time.Time `json:"last_active"`
}

type Hackathon struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	StartDate   *string           `json:"start_date"`
	EndDate     *string           `json:"end_date"`
	Tracks      []string          `json:"tracks"`
	Prizes      map[string]string `json:"prizes"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	HackathonID string    `json:"hackathon_id"`
	InviteCode  string    `json:"-"` // Never expose in JSON
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamSummary is a team row augmented with list-view metadata.
type TeamSummary struct {
	Team
	MemberCount int     `json:"member_count"`
	CreatorName *string `json:"creator_name"`
}

// TeamMember is a membership row joined with the member's public profile.
type TeamMember struct {
	AgentID     string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Karma       int       `json:"karma"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type TeamDetail struct {
	Team
	Members  []TeamMember `json:"members"`
	Projects []Project    `json:"projects"`
}

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Track       *string    `json:"track"`
	RepoURL     *string    `json:"repo_url"`
	DemoURL     *string    `json:"demo_url"`
	VideoURL    *string    `json:"video_url"`
	TechStack   []string   `json:"tech_stack"`
	TeamID      string     `json:"team_id"`
	HackathonID string     `json:"hackathon_id"`
	Status      string     `json:"status"`
	Votes       int        `json:"votes"`
	JudgeScore  float64    `json:"judge_score"`
	SubmittedAt *time.Time `json:"submitted_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProjectSummary is a project row augmented with its team name for list views.
type ProjectSummary struct {
	Project
	TeamName *string `json:"team_name"`
}

type ProjectDetail struct {
	Project
	TeamName      *string      `json:"team_name"`
	HackathonName *string      `json:"hackathon_name"`
	TeamMembers   []TeamMember `json:"team_members"`
	Updates       []Update     `json:"updates"`
}

type Update struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Content    string    `json:"content"`
	WeekNumber *int      `json:"week_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// Profile views

type AgentTeam struct {
	Team
	Role string `json:"role"`
}

type AgentProfile struct {
	Agent
	Teams    []AgentTeam `json:"teams"`
	Projects []Project   `json:"projects"`
}

type AgentSelf struct {
	AgentProfile
	VotesReceived int `json:"votes_received"`
}

// Leaderboard

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	ProjectID  string  `json:"id"`
	Name       string  `json:"name"`
	Track      *string `json:"track"`
	Votes      int     `json:"votes"`
	JudgeScore float64 `json:"judge_score"`
	Status     string  `json:"status"`
	TeamName   *string `json:"team_name"`
	TotalScore float64 `json:"total_score"`
}

type LeaderboardResponse struct {
	HackathonID string             `json:"hackathon_id"`
	Track       string             `json:"track"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type HackathonDetail struct {
	Hackathon
	Projects []ProjectSummary `json:"projects"`
	Teams    []TeamSummary    `json:"teams"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
