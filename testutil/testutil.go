// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/hackhive/auth"
	"github.com/danielhkuo/hackhive/cliparse"
	"github.com/danielhkuo/hackhive/db"
	"github.com/danielhkuo/hackhive/store"
)

// TestAdminKey is the admin bearer token used by test configs.
const TestAdminKey = "test-admin-key"

// SetupTestDB opens a fresh embedded SQLite database in a per-test temp
// directory and creates the full schema. The database is removed with
// the test's temp dir; Cleanup closes the handle.
func SetupTestDB(t *testing.T) (*sql.DB, store.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hackhive_test.db")
	conn, err := db.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, store.New(conn, store.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8090,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKey:     TestAdminKey,
	}
}

// CreateTestAgent inserts an agent and returns its ID and API key
func CreateTestAgent(t *testing.T, conn *sql.DB, name string) (agentID, apiKey string) {
	t.Helper()

	agentID = uuid.NewString()
	apiKey, _ = auth.GenerateAPIKey()
	claimCode, _ := auth.GenerateClaimCode()

	_, err := conn.Exec(`
		INSERT INTO agents (id, name, api_key, claim_code, is_claimed, karma, created_at)
		VALUES (?, ?, ?, ?, FALSE, 0, ?)
	`, agentID, name, apiKey, claimCode, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test agent: %v", err)
	}

	return agentID, apiKey
}

// ClaimCodeFor looks up the claim code the agent was registered with
func ClaimCodeFor(t *testing.T, conn *sql.DB, agentID string) string {
	t.Helper()

	var code string
	err := conn.QueryRow(`SELECT claim_code FROM agents WHERE id = ?`, agentID).Scan(&code)
	if err != nil {
		t.Fatalf("Failed to read claim code: %v", err)
	}
	return code
}

// CreateTestHackathon inserts a hackathon with the given status and
// returns its ID
func CreateTestHackathon(t *testing.T, conn *sql.DB, name, status string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO hackathons (id, name, description, tracks, prizes, status, created_at)
		VALUES (?, ?, 'A test hackathon', '["ai","web"]', '{}', ?, ?)
	`, id, name, status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test hackathon: %v", err)
	}
	return id
}

// CreateTestTeam inserts a team led by leaderID and returns the team ID
// and invite code. The leader membership row is written too.
func CreateTestTeam(t *testing.T, conn *sql.DB, hackathonID, leaderID, name string) (teamID, inviteCode string) {
	t.Helper()

	teamID = uuid.NewString()
	inviteCode, _ = auth.GenerateInviteCode()

	_, err := conn.Exec(`
		INSERT INTO teams (id, name, hackathon_id, invite_code, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, teamID, name, hackathonID, inviteCode, leaderID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	AddTestMember(t, conn, teamID, leaderID, "leader")
	return teamID, inviteCode
}

// AddTestMember inserts a team membership row
func AddTestMember(t *testing.T, conn *sql.DB, teamID, agentID, role string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO team_members (team_id, agent_id, role, joined_at)
		VALUES (?, ?, ?, ?)
	`, teamID, agentID, role, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to add test member: %v", err)
	}
}

// CreateTestProject inserts a project in the given status with the
// given vote count and judge score, returning its ID
func CreateTestProject(t *testing.T, conn *sql.DB, teamID, hackathonID, name, status string, votes int, judgeScore float64) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO projects (id, name, description, track, tech_stack, team_id, hackathon_id, status, votes, judge_score, created_at)
		VALUES (?, ?, 'A test project', 'ai', '[]', ?, ?, ?, ?, ?, ?)
	`, id, name, teamID, hackathonID, status, votes, judgeScore, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader builds the Authorization header map for a bearer token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the response's {"error": ...} body message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	AssertJSON(t, w, &body)
	if body.Error != expected {
		t.Errorf("Expected error %q, got %q", expected, body.Error)
	}
}
