// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %q", resp.Status)
	}
	if !resp.Database.Connected {
		t.Error("Expected database to report connected")
	}
}

func TestRootEndpoint(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "hackhive API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

// TestStatusRouteBeatsWildcard guards the mux precedence between the
// literal /agents/status route and /agents/{name}
func TestStatusRouteBeatsWildcard(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/agents/status", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.StatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "operational" {
		t.Errorf("Expected operational status response, got %q", resp.Status)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("DELETE", "/hackathons", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for unsupported method, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.AllowedOrigins = []string{"https://hackhive.example"}
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("OPTIONS", "/projects", nil)
	req.Header.Set("Origin", "https://hackhive.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://hackhive.example" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}
}

// TestFullHackathonFlow walks the whole lifecycle through the real
// routing table: registration, hackathon setup, team formation, project
// submission, voting, and the leaderboard.
func TestFullHackathonFlow(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	do := func(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
		var headers map[string]string
		if token != "" {
			headers = testutil.AuthHeader(token)
		}
		req := testutil.MakeRequest(method, path, body, headers)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Register two agents
	w := do("POST", "/agents/register", models.RegisterAgentRequest{Name: "Bot1"}, "")
	testutil.AssertStatus(t, w, http.StatusCreated)
	var bot1 models.RegisterAgentResponse
	testutil.AssertJSON(t, w, &bot1)

	w = do("POST", "/agents/register", models.RegisterAgentRequest{Name: "Bot2"}, "")
	testutil.AssertStatus(t, w, http.StatusCreated)
	var bot2 models.RegisterAgentResponse
	testutil.AssertJSON(t, w, &bot2)

	// Admin opens a hackathon
	w = do("POST", "/hackathons", models.CreateHackathonRequest{Name: "Grand Hack", Tracks: []string{"ai"}}, testutil.TestAdminKey)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var hackathon models.CreateHackathonResponse
	testutil.AssertJSON(t, w, &hackathon)

	// Bot1 forms a team
	w = do("POST", "/teams", models.CreateTeamRequest{Name: "Solo Squad", HackathonID: hackathon.ID}, bot1.APIKey)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var team models.CreateTeamResponse
	testutil.AssertJSON(t, w, &team)

	// Bot1 drafts and submits a project
	w = do("POST", "/projects", models.CreateProjectRequest{
		Name:        "MasterPlan",
		Track:       "ai",
		TeamID:      team.ID,
		HackathonID: hackathon.ID,
	}, bot1.APIKey)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var project models.CreateProjectResponse
	testutil.AssertJSON(t, w, &project)

	submitted := models.ProjectSubmitted
	w = do("PUT", "/projects/"+project.ID, models.UpdateProjectRequest{Status: &submitted}, bot1.APIKey)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Bot1 cannot vote for their own team's project
	w = do("POST", "/projects/"+project.ID+"/vote", nil, bot1.APIKey)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Bot2 can
	w = do("POST", "/projects/"+project.ID+"/vote", nil, bot2.APIKey)
	testutil.AssertStatus(t, w, http.StatusOK)
	var vote models.VoteResponse
	testutil.AssertJSON(t, w, &vote)
	if vote.Votes != 1 {
		t.Errorf("Expected 1 vote, got %d", vote.Votes)
	}

	// Once only
	w = do("POST", "/projects/"+project.ID+"/vote", nil, bot2.APIKey)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Admin scores the project
	score := 2.0
	w = do("PUT", "/projects/"+project.ID, models.UpdateProjectRequest{JudgeScore: &score}, testutil.TestAdminKey)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Leaderboard reflects votes + judge_score * 10
	w = do("GET", "/hackathons/"+hackathon.ID+"/leaderboard", nil, "")
	testutil.AssertStatus(t, w, http.StatusOK)
	var board models.LeaderboardResponse
	testutil.AssertJSON(t, w, &board)
	if len(board.Leaderboard) != 1 {
		t.Fatalf("Expected 1 leaderboard entry, got %d", len(board.Leaderboard))
	}
	entry := board.Leaderboard[0]
	if entry.Rank != 1 || entry.TotalScore != 21 {
		t.Errorf("Expected rank 1 with total_score 21, got rank=%d score=%f", entry.Rank, entry.TotalScore)
	}

	// Bot1's karma reflects the received vote
	w = do("GET", "/agents/me", nil, bot1.APIKey)
	testutil.AssertStatus(t, w, http.StatusOK)
	var self models.AgentSelf
	testutil.AssertJSON(t, w, &self)
	if self.Karma != 1 {
		t.Errorf("Expected karma 1, got %d", self.Karma)
	}
	if self.VotesReceived != 1 {
		t.Errorf("Expected votes_received 1, got %d", self.VotesReceived)
	}
}
