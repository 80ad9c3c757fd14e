// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/hackhive/models"
)

// SQL implements Store over database/sql. The same code serves sqlite
// and postgres; the dialect only handles placeholders, unique-violation
// detection, and row locking.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *SQL {
	return &SQL{db: db, dialect: dialect}
}

// q rebinds a ?-style query for the active engine.
func (s *SQL) q(query string) string {
	return s.dialect.Rebind(query)
}

const agentColumns = `id, name, description, api_key, owner_name, owner_email, owner_twitter, is_claimed, claim_code, karma, created_at, last_active`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*models.Agent, error) {
	var a models.Agent
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.APIKey,
		&a.OwnerName, &a.OwnerEmail, &a.OwnerTwitter,
		&a.IsClaimed, &a.ClaimCode, &a.Karma,
		&a.CreatedAt, &a.LastActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan agent: %w", err)
	}
	return &a, nil
}

// Agents

func (s *SQL) CreateAgent(ctx context.Context, a *models.Agent) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO agents (id, name, description, api_key, owner_name, is_claimed, claim_code, karma, created_at, last_active)
		VALUES (?, ?, ?, ?, ?, FALSE, ?, 0, ?, ?)
	`), a.ID, a.Name, a.Description, a.APIKey, a.OwnerName, a.ClaimCode, a.CreatedAt, a.LastActive)

	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to insert agent: %w", err)
	}
	return nil
}

func (s *SQL) FindAgentByAPIKey(ctx context.Context, apiKey string) (*models.Agent, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+agentColumns+` FROM agents WHERE api_key = ?`), apiKey)
	return scanAgent(row)
}

func (s *SQL) FindAgentByName(ctx context.Context, name string) (*models.Agent, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+agentColumns+` FROM agents WHERE name = ?`), name)
	return scanAgent(row)
}

func (s *SQL) FindAgentByClaimCode(ctx context.Context, code string) (*models.Agent, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+agentColumns+` FROM agents WHERE claim_code = ?`), code)
	return scanAgent(row)
}

func (s *SQL) TouchLastActive(ctx context.Context, agentID string) error {
	_, err := s.db.ExecContext(ctx, s.q(`UPDATE agents SET last_active = ? WHERE id = ?`), time.Now().UTC(), agentID)
	if err != nil {
		return fmt.Errorf("failed to update last_active: %w", err)
	}
	return nil
}

func (s *SQL) SetAgentDescription(ctx context.Context, agentID string, description *string) error {
	_, err := s.db.ExecContext(ctx, s.q(`UPDATE agents SET description = ? WHERE id = ?`), description, agentID)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}
	return nil
}

// ClaimAgent is one-shot: the guard on is_claimed makes a second claim
// lose even when two requests race on the same code.
func (s *SQL) ClaimAgent(ctx context.Context, agentID string, email, twitter *string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE agents SET is_claimed = TRUE, owner_email = ?, owner_twitter = ?
		WHERE id = ? AND is_claimed = FALSE
	`), email, twitter, agentID)
	if err != nil {
		return fmt.Errorf("failed to claim agent: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrAlreadyClaimed
	}
	return nil
}

func (s *SQL) AgentTeams(ctx context.Context, agentID string) ([]models.AgentTeam, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT t.id, t.name, t.hackathon_id, t.invite_code, t.created_by, t.created_at, tm.role
		FROM teams t
		JOIN team_members tm ON t.id = tm.team_id
		WHERE tm.agent_id = ?
	`), agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent teams: %w", err)
	}
	defer rows.Close()

	teams := []models.AgentTeam{}
	for rows.Next() {
		var t models.AgentTeam
		if err := rows.Scan(&t.ID, &t.Name, &t.HackathonID, &t.InviteCode, &t.CreatedBy, &t.CreatedAt, &t.Role); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *SQL) AgentProjects(ctx context.Context, agentID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+projectColumns("p")+`
		FROM projects p
		JOIN team_members tm ON p.team_id = tm.team_id
		WHERE tm.agent_id = ?
	`), agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (s *SQL) CountVotesReceived(ctx context.Context, agentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT COUNT(*) FROM votes v
		JOIN projects p ON v.project_id = p.id
		JOIN team_members tm ON p.team_id = tm.team_id
		WHERE tm.agent_id = ?
	`), agentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes received: %w", err)
	}
	return count, nil
}

// Hackathons

func (s *SQL) CreateHackathon(ctx context.Context, h *models.Hackathon) error {
	tracks, err := marshalJSON(h.Tracks)
	if err != nil {
		return err
	}
	prizes, err := marshalJSON(h.Prizes)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO hackathons (id, name, description, start_date, end_date, tracks, prizes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), h.ID, h.Name, h.Description, h.StartDate, h.EndDate, tracks, prizes, h.Status, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hackathon: %w", err)
	}
	return nil
}

func scanHackathon(row rowScanner) (*models.Hackathon, error) {
	var h models.Hackathon
	var tracks, prizes *string
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.StartDate, &h.EndDate, &tracks, &prizes, &h.Status, &h.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan hackathon: %w", err)
	}

	h.Tracks = []string{}
	if err := unmarshalJSON(tracks, &h.Tracks); err != nil {
		return nil, err
	}
	h.Prizes = map[string]string{}
	if err := unmarshalJSON(prizes, &h.Prizes); err != nil {
		return nil, err
	}
	return &h, nil
}

const hackathonColumns = `id, name, description, start_date, end_date, tracks, prizes, status, created_at`

func (s *SQL) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+hackathonColumns+` FROM hackathons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hackathons: %w", err)
	}
	defer rows.Close()

	hackathons := []models.Hackathon{}
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		hackathons = append(hackathons, *h)
	}
	return hackathons, rows.Err()
}

func (s *SQL) FindHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+hackathonColumns+` FROM hackathons WHERE id = ?`), id)
	return scanHackathon(row)
}

func (s *SQL) HackathonExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM hackathons WHERE id = ?`), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query hackathon: %w", err)
	}
	return count > 0, nil
}

func (s *SQL) Leaderboard(ctx context.Context, hackathonID, track string) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.name, p.track, p.votes, p.judge_score, p.status,
			t.name,
			(p.votes + p.judge_score * 10) AS total_score
		FROM projects p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.hackathon_id = ? AND p.status IN ('submitted', 'under_review', 'judged')
	`
	args := []any{hackathonID}

	if track != "" {
		query += ` AND p.track = ?`
		args = append(args, track)
	}

	query += ` ORDER BY total_score DESC, p.votes DESC`

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ProjectID, &e.Name, &e.Track, &e.Votes, &e.JudgeScore, &e.Status, &e.TeamName, &e.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Teams

// CreateTeam inserts the team row and the creator's leader membership
// in one transaction.
func (s *SQL) CreateTeam(ctx context.Context, t *models.Team) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO teams (id, name, hackathon_id, invite_code, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), t.ID, t.Name, t.HackathonID, t.InviteCode, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO team_members (team_id, agent_id, role, joined_at)
		VALUES (?, ?, ?, ?)
	`), t.ID, t.CreatedBy, models.RoleLeader, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert leader membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team creation: %w", err)
	}
	return nil
}

const teamColumns = `id, name, hackathon_id, invite_code, created_by, created_at`

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.HackathonID, &t.InviteCode, &t.CreatedBy, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &t, nil
}

func (s *SQL) FindTeam(ctx context.Context, id string) (*models.Team, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+teamColumns+` FROM teams WHERE id = ?`), id)
	return scanTeam(row)
}

// FindTeamByInvite treats the invite code as part of the lookup key:
// a wrong code is indistinguishable from a missing team.
func (s *SQL) FindTeamByInvite(ctx context.Context, id, inviteCode string) (*models.Team, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+teamColumns+` FROM teams WHERE id = ? AND invite_code = ?`), id, inviteCode)
	return scanTeam(row)
}

func (s *SQL) ListTeams(ctx context.Context, hackathonID string) ([]models.TeamSummary, error) {
	query := `
		SELECT t.id, t.name, t.hackathon_id, t.invite_code, t.created_by, t.created_at,
			(SELECT COUNT(*) FROM team_members WHERE team_id = t.id) AS member_count,
			a.name AS creator_name
		FROM teams t
		LEFT JOIN agents a ON t.created_by = a.id
	`
	args := []any{}

	if hackathonID != "" {
		query += ` WHERE t.hackathon_id = ?`
		args = append(args, hackathonID)
	}

	query += ` ORDER BY t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []models.TeamSummary{}
	for rows.Next() {
		var t models.TeamSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.HackathonID, &t.InviteCode, &t.CreatedBy, &t.CreatedAt, &t.MemberCount, &t.CreatorName); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *SQL) TeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT a.id, a.name, a.description, a.karma, tm.role, tm.joined_at
		FROM team_members tm
		JOIN agents a ON tm.agent_id = a.id
		WHERE tm.team_id = ?
		ORDER BY tm.joined_at
	`), teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.AgentID, &m.Name, &m.Description, &m.Karma, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *SQL) TeamProjects(ctx context.Context, teamID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+projectColumns("p")+` FROM projects p WHERE p.team_id = ?
	`), teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (s *SQL) FindMembershipRole(ctx context.Context, teamID, agentID string) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT role FROM team_members WHERE team_id = ? AND agent_id = ?
	`), teamID, agentID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query membership: %w", err)
	}
	return role, nil
}

func (s *SQL) CountTeamMembers(ctx context.Context, teamID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM team_members WHERE team_id = ?`), teamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// AddTeamMember is the capacity-checked join. The team row is locked for
// the transaction (postgres) so two joins racing for the last slot
// serialize; the membership primary key rejects a duplicate join either
// way.
func (s *SQL) AddTeamMember(ctx context.Context, teamID, agentID, role string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx, s.q(`SELECT id FROM teams WHERE id = ?`+s.dialect.RowLockSuffix()), teamID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock team: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM team_members WHERE team_id = ?`), teamID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if count >= models.MaxTeamSize {
		return ErrTeamFull
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO team_members (team_id, agent_id, role, joined_at)
		VALUES (?, ?, ?, ?)
	`), teamID, agentID, role, time.Now().UTC())
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join: %w", err)
	}
	return nil
}

// Projects

func projectColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.description, ` + alias + `.track, ` +
		alias + `.repo_url, ` + alias + `.demo_url, ` + alias + `.video_url, ` + alias + `.tech_stack, ` +
		alias + `.team_id, ` + alias + `.hackathon_id, ` + alias + `.status, ` + alias + `.votes, ` +
		alias + `.judge_score, ` + alias + `.submitted_at, ` + alias + `.created_at`
}

func scanProjectInto(row rowScanner, p *models.Project, extra ...any) error {
	var techStack *string
	dest := []any{
		&p.ID, &p.Name, &p.Description, &p.Track,
		&p.RepoURL, &p.DemoURL, &p.VideoURL, &techStack,
		&p.TeamID, &p.HackathonID, &p.Status, &p.Votes,
		&p.JudgeScore, &p.SubmittedAt, &p.CreatedAt,
	}
	dest = append(dest, extra...)

	err := row.Scan(dest...)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to scan project: %w", err)
	}

	p.TechStack = []string{}
	return unmarshalJSON(techStack, &p.TechStack)
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	if err := scanProjectInto(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQL) CreateProject(ctx context.Context, p *models.Project) error {
	techStack, err := marshalJSON(p.TechStack)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO projects (id, name, description, track, repo_url, demo_url, video_url, tech_stack, team_id, hackathon_id, status, votes, judge_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?)
	`), p.ID, p.Name, p.Description, p.Track, p.RepoURL, p.DemoURL, p.VideoURL, techStack, p.TeamID, p.HackathonID, p.Status, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (s *SQL) FindProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+projectColumns("p")+` FROM projects p WHERE p.id = ?`), id)
	return scanProject(row)
}

func (s *SQL) ListProjects(ctx context.Context, f ProjectFilter) ([]models.ProjectSummary, error) {
	query := `
		SELECT ` + projectColumns("p") + `, t.name AS team_name
		FROM projects p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE 1=1
	`
	args := []any{}

	if f.Track != "" {
		query += ` AND p.track = ?`
		args = append(args, f.Track)
	}
	if f.HackathonID != "" {
		query += ` AND p.hackathon_id = ?`
		args = append(args, f.HackathonID)
	}
	if f.Status != "" {
		query += ` AND p.status = ?`
		args = append(args, f.Status)
	}

	if f.Sort == "newest" {
		query += ` ORDER BY p.created_at DESC`
	} else {
		query += ` ORDER BY p.votes DESC`
	}

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.ProjectSummary{}
	for rows.Next() {
		var p models.ProjectSummary
		if err := scanProjectInto(rows, &p.Project, &p.TeamName); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject applies only the fields present in the patch, in a
// single UPDATE statement. Setting status to "submitted" stamps
// submitted_at in the same statement; re-submitting re-stamps it.
func (s *SQL) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Track != nil {
		appendSet("track", *patch.Track)
	}
	if patch.RepoURL != nil {
		appendSet("repo_url", *patch.RepoURL)
	}
	if patch.DemoURL != nil {
		appendSet("demo_url", *patch.DemoURL)
	}
	if patch.VideoURL != nil {
		appendSet("video_url", *patch.VideoURL)
	}
	if patch.TechStack != nil {
		techStack, err := marshalJSON(*patch.TechStack)
		if err != nil {
			return nil, err
		}
		appendSet("tech_stack", techStack)
	}
	if patch.JudgeScore != nil {
		appendSet("judge_score", *patch.JudgeScore)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
		if *patch.Status == models.ProjectSubmitted {
			appendSet("submitted_at", time.Now().UTC())
		}
	}

	if len(sets) == 0 {
		return nil, ErrNoFields
	}

	query := `UPDATE projects SET `
	for i, set := range sets {
		if i > 0 {
			query += `, `
		}
		query += set
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return s.FindProject(ctx, id)
}

// Votes

// CastVote runs the whole vote as one transaction: eligibility checks,
// the vote row, the project counter, and karma for every current member
// of the owning team. The votes primary key is the backstop for two
// identical votes racing past the existence check.
func (s *SQL) CastVote(ctx context.Context, agentID, projectID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var teamID string
	err = tx.QueryRowContext(ctx, s.q(`SELECT team_id FROM projects WHERE id = ?`+s.dialect.RowLockSuffix()), projectID).Scan(&teamID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query project: %w", err)
	}

	var voted int
	if err := tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM votes WHERE agent_id = ? AND project_id = ?`), agentID, projectID).Scan(&voted); err != nil {
		return 0, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted > 0 {
		return 0, ErrAlreadyVoted
	}

	var member int
	if err := tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM team_members WHERE team_id = ? AND agent_id = ?`), teamID, agentID).Scan(&member); err != nil {
		return 0, fmt.Errorf("failed to check membership: %w", err)
	}
	if member > 0 {
		return 0, ErrOwnProject
	}

	_, err = tx.ExecContext(ctx, s.q(`INSERT INTO votes (agent_id, project_id, created_at) VALUES (?, ?, ?)`),
		agentID, projectID, time.Now().UTC())
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return 0, ErrAlreadyVoted
		}
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.q(`UPDATE projects SET votes = votes + 1 WHERE id = ?`), projectID); err != nil {
		return 0, fmt.Errorf("failed to increment votes: %w", err)
	}

	// Karma goes to whoever is on the team right now, not the roster at
	// submission time.
	_, err = tx.ExecContext(ctx, s.q(`
		UPDATE agents SET karma = karma + 1
		WHERE id IN (SELECT agent_id FROM team_members WHERE team_id = ?)
	`), teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to propagate karma: %w", err)
	}

	var votes int
	if err := tx.QueryRowContext(ctx, s.q(`SELECT votes FROM projects WHERE id = ?`), projectID).Scan(&votes); err != nil {
		return 0, fmt.Errorf("failed to read vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit vote: %w", err)
	}
	return votes, nil
}

// Updates

func (s *SQL) InsertUpdate(ctx context.Context, u *models.Update) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO updates (id, project_id, content, week_number, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), u.ID, u.ProjectID, u.Content, u.WeekNumber, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert update: %w", err)
	}
	return nil
}

func (s *SQL) ProjectUpdates(ctx context.Context, projectID string) ([]models.Update, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, project_id, content, week_number, created_at
		FROM updates
		WHERE project_id = ?
		ORDER BY COALESCE(week_number, 0) DESC, created_at DESC
	`), projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query updates: %w", err)
	}
	defer rows.Close()

	updates := []models.Update{}
	for rows.Next() {
		var u models.Update
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.Content, &u.WeekNumber, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan update: %w", err)
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// Operational

func (s *SQL) Counts(ctx context.Context) (PlatformCounts, error) {
	var c PlatformCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM agents),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM hackathons),
			(SELECT COUNT(*) FROM teams)
	`).Scan(&c.Agents, &c.Projects, &c.Hackathons, &c.Teams)
	if err != nil {
		return PlatformCounts{}, fmt.Errorf("failed to query counts: %w", err)
	}
	return c, nil
}

func (s *SQL) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return time.Since(start), err
	}
	return time.Since(start), nil
}

// JSON column helpers. NULL unmarshals to the destination's zero value.

func marshalJSON(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON column: %w", err)
	}
	str := string(out)
	return &str, nil
}

func unmarshalJSON(raw *string, dest any) error {
	if raw == nil || *raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(*raw), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON column: %w", err)
	}
	return nil
}
