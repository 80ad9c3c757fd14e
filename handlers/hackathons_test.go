// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/testutil"
)

func TestCreateHackathon(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewHackathonHandler(st, cfg)

	_, agentKey := testutil.CreateTestAgent(t, conn, "RegularBot")

	tests := []struct {
		name           string
		headers        map[string]string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:    "admin creates hackathon",
			headers: testutil.AuthHeader(testutil.TestAdminKey),
			requestBody: models.CreateHackathonRequest{
				Name:   "Winter Hack",
				Tracks: []string{"ai", "web"},
				Prizes: map[string]string{"first": "eternal glory"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "regular agent denied",
			headers:        testutil.AuthHeader(agentKey),
			requestBody:    models.CreateHackathonRequest{Name: "Rogue Hack"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unauthenticated denied",
			headers:        nil,
			requestBody:    models.CreateHackathonRequest{Name: "Anon Hack"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing name",
			headers:        testutil.AuthHeader(testutil.TestAdminKey),
			requestBody:    models.CreateHackathonRequest{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/hackathons", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			handler.Create(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateHackathonResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Status != models.HackathonUpcoming {
					t.Errorf("Expected upcoming status, got %q", resp.Status)
				}
			}
		})
	}
}

func TestGetHackathon(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewHackathonHandler(st, cfg)

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Detail Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Shown Team")
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "Shown Project", models.ProjectSubmitted, 0, 0)

	t.Run("found with projects and teams", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/hackathons/"+hackathonID, nil, nil)
		req.SetPathValue("id", hackathonID)
		w := httptest.NewRecorder()

		handler.Get(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.HackathonDetail
		testutil.AssertJSON(t, w, &resp)
		if resp.Name != "Detail Jam" {
			t.Errorf("Expected hackathon name, got %q", resp.Name)
		}
		if len(resp.Projects) != 1 {
			t.Errorf("Expected 1 project, got %d", len(resp.Projects))
		}
		if len(resp.Teams) != 1 {
			t.Errorf("Expected 1 team, got %d", len(resp.Teams))
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/hackathons/nope", nil, nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()

		handler.Get(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertError(t, w, "Hackathon not found")
	})
}

func TestLeaderboard(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewHackathonHandler(st, cfg)

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Score Jam", models.HackathonJudging)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Scorers")

	// total_score = votes + judge_score * 10
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "JudgeFavorite", models.ProjectSubmitted, 35, 2) // 55
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "CrowdFavorite", models.ProjectSubmitted, 42, 0) // 42
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "Balanced", models.ProjectSubmitted, 5, 2.5)     // 30
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "DraftHidden", models.ProjectDraft, 99, 9)

	req := testutil.MakeRequest("GET", "/hackathons/"+hackathonID+"/leaderboard", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()

	handler.Leaderboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Track != "all" {
		t.Errorf("Expected track label all, got %q", resp.Track)
	}
	if len(resp.Leaderboard) != 3 {
		t.Fatalf("Expected 3 ranked projects (drafts excluded), got %d", len(resp.Leaderboard))
	}

	expected := []struct {
		name  string
		score float64
	}{
		{"JudgeFavorite", 55},
		{"CrowdFavorite", 42},
		{"Balanced", 30},
	}
	for i, want := range expected {
		got := resp.Leaderboard[i]
		if got.Name != want.name {
			t.Errorf("Rank %d: expected %q, got %q", i+1, want.name, got.Name)
		}
		if got.TotalScore != want.score {
			t.Errorf("Rank %d: expected total_score %f, got %f", i+1, want.score, got.TotalScore)
		}
		if got.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, got.Rank)
		}
	}
}

func TestLeaderboardTrackFilter(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewHackathonHandler(st, cfg)

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Track Jam", models.HackathonJudging)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Trackers")

	// CreateTestProject writes track 'ai'
	testutil.CreateTestProject(t, conn, teamID, hackathonID, "AIProject", models.ProjectSubmitted, 7, 0)

	req := testutil.MakeRequest("GET", "/hackathons/"+hackathonID+"/leaderboard?track=web", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()

	handler.Leaderboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Track != "web" {
		t.Errorf("Expected track web, got %q", resp.Track)
	}
	if len(resp.Leaderboard) != 0 {
		t.Errorf("Expected empty leaderboard for unmatched track, got %d entries", len(resp.Leaderboard))
	}
}
