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

func TestVote(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(st, cfg)

	builderID, builderKey := testutil.CreateTestAgent(t, conn, "Builder")
	_, voterKey := testutil.CreateTestAgent(t, conn, "Voter")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Spring Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, builderID, "Builders")
	projectID := testutil.CreateTestProject(t, conn, teamID, hackathonID, "Votable", models.ProjectSubmitted, 0, 0)

	vote := func(key, id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/projects/"+id+"/vote", nil, testutil.AuthHeader(key))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Vote(w, req)
		return w
	}

	t.Run("unauthenticated", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/projects/"+projectID+"/vote", nil, nil)
		req.SetPathValue("id", projectID)
		w := httptest.NewRecorder()
		handler.Vote(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("project not found", func(t *testing.T) {
		w := vote(voterKey, "nonexistent")
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertError(t, w, "Project not found")
	})

	t.Run("own project rejected", func(t *testing.T) {
		w := vote(builderKey, projectID)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertError(t, w, "Cannot vote for your own project")
	})

	t.Run("valid vote", func(t *testing.T) {
		w := vote(voterKey, projectID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VoteResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Votes != 1 {
			t.Errorf("Expected vote count 1, got %d", resp.Votes)
		}

		var stored int
		if err := conn.QueryRow(`SELECT votes FROM projects WHERE id = ?`, projectID).Scan(&stored); err != nil {
			t.Fatalf("Failed to query votes: %v", err)
		}
		if stored != 1 {
			t.Errorf("Expected denormalized counter 1, got %d", stored)
		}
	})

	t.Run("duplicate vote", func(t *testing.T) {
		w := vote(voterKey, projectID)
		testutil.AssertStatus(t, w, http.StatusConflict)
		testutil.AssertError(t, w, "Already voted for this project")
	})
}

func TestVoteKarmaPropagation(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(st, cfg)

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Bot1")
	mateID, _ := testutil.CreateTestAgent(t, conn, "Teammate")
	_, voterKey := testutil.CreateTestAgent(t, conn, "Bot2")
	strangerID, _ := testutil.CreateTestAgent(t, conn, "Bystander")

	hackathonID := testutil.CreateTestHackathon(t, conn, "Spring Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Karma Farm")
	testutil.AddTestMember(t, conn, teamID, mateID, models.RoleMember)
	projectID := testutil.CreateTestProject(t, conn, teamID, hackathonID, "KarmaProject", models.ProjectSubmitted, 0, 0)

	req := testutil.MakeRequest("POST", "/projects/"+projectID+"/vote", nil, testutil.AuthHeader(voterKey))
	req.SetPathValue("id", projectID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Every current member of the project's team gains one karma
	karma := func(id string) int {
		var k int
		if err := conn.QueryRow(`SELECT karma FROM agents WHERE id = ?`, id).Scan(&k); err != nil {
			t.Fatalf("Failed to query karma: %v", err)
		}
		return k
	}

	if k := karma(leaderID); k != 1 {
		t.Errorf("Expected leader karma 1, got %d", k)
	}
	if k := karma(mateID); k != 1 {
		t.Errorf("Expected teammate karma 1, got %d", k)
	}
	if k := karma(strangerID); k != 0 {
		t.Errorf("Expected bystander karma 0, got %d", k)
	}
}
