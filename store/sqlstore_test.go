// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/hackhive/models"
	"github.com/danielhkuo/hackhive/store"
	"github.com/danielhkuo/hackhive/testutil"
)

func TestCastVoteSemantics(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	ctx := context.Background()

	builderID, _ := testutil.CreateTestAgent(t, conn, "Builder")
	voterID, _ := testutil.CreateTestAgent(t, conn, "Voter")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Store Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, builderID, "Builders")
	projectID := testutil.CreateTestProject(t, conn, teamID, hackathonID, "Voted", models.ProjectSubmitted, 0, 0)

	t.Run("missing project", func(t *testing.T) {
		_, err := st.CastVote(ctx, voterID, "nonexistent")
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("own team project", func(t *testing.T) {
		_, err := st.CastVote(ctx, builderID, projectID)
		if !errors.Is(err, store.ErrOwnProject) {
			t.Errorf("Expected ErrOwnProject, got %v", err)
		}
	})

	t.Run("first vote succeeds", func(t *testing.T) {
		votes, err := st.CastVote(ctx, voterID, projectID)
		if err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
		if votes != 1 {
			t.Errorf("Expected 1 vote, got %d", votes)
		}

		var karma int
		if err := conn.QueryRow(`SELECT karma FROM agents WHERE id = ?`, builderID).Scan(&karma); err != nil {
			t.Fatalf("Failed to query karma: %v", err)
		}
		if karma != 1 {
			t.Errorf("Expected builder karma 1, got %d", karma)
		}
	})

	t.Run("second vote rejected", func(t *testing.T) {
		_, err := st.CastVote(ctx, voterID, projectID)
		if !errors.Is(err, store.ErrAlreadyVoted) {
			t.Errorf("Expected ErrAlreadyVoted, got %v", err)
		}
	})

	t.Run("rejected vote leaves no trace", func(t *testing.T) {
		var votes, karma int
		if err := conn.QueryRow(`SELECT votes FROM projects WHERE id = ?`, projectID).Scan(&votes); err != nil {
			t.Fatalf("Failed to query votes: %v", err)
		}
		if err := conn.QueryRow(`SELECT karma FROM agents WHERE id = ?`, builderID).Scan(&karma); err != nil {
			t.Fatalf("Failed to query karma: %v", err)
		}
		if votes != 1 || karma != 1 {
			t.Errorf("Expected counter and karma unchanged at 1, got votes=%d karma=%d", votes, karma)
		}
	})
}

func TestAddTeamMemberCap(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	ctx := context.Background()

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Store Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Capped")

	for i := 0; i < models.MaxTeamSize-1; i++ {
		memberID, _ := testutil.CreateTestAgent(t, conn, fmt.Sprintf("Member%d", i))
		if err := st.AddTeamMember(ctx, teamID, memberID, models.RoleMember); err != nil {
			t.Fatalf("AddTeamMember %d failed: %v", i, err)
		}
	}

	lateID, _ := testutil.CreateTestAgent(t, conn, "TooLate")
	if err := st.AddTeamMember(ctx, teamID, lateID, models.RoleMember); !errors.Is(err, store.ErrTeamFull) {
		t.Errorf("Expected ErrTeamFull, got %v", err)
	}

	if err := st.AddTeamMember(ctx, teamID, leaderID, models.RoleMember); !errors.Is(err, store.ErrAlreadyMember) {
		t.Errorf("Expected ErrAlreadyMember for duplicate, got %v", err)
	}
}

func TestUpdateProjectPatch(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	ctx := context.Background()

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Store Jam", models.HackathonActive)
	teamID, _ := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Patchers")
	projectID := testutil.CreateTestProject(t, conn, teamID, hackathonID, "Patchable", models.ProjectDraft, 0, 0)

	t.Run("empty patch rejected", func(t *testing.T) {
		_, err := st.UpdateProject(ctx, projectID, store.ProjectPatch{})
		if !errors.Is(err, store.ErrNoFields) {
			t.Errorf("Expected ErrNoFields, got %v", err)
		}
	})

	t.Run("single field patch", func(t *testing.T) {
		demo := "https://demo.example.com"
		updated, err := st.UpdateProject(ctx, projectID, store.ProjectPatch{DemoURL: &demo})
		if err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		if updated.DemoURL == nil || *updated.DemoURL != demo {
			t.Errorf("Expected demo_url set, got %v", updated.DemoURL)
		}
		if updated.Name != "Patchable" {
			t.Errorf("Expected name untouched, got %q", updated.Name)
		}
	})

	t.Run("submission stamps time", func(t *testing.T) {
		status := models.ProjectSubmitted
		before := time.Now().UTC().Add(-time.Second)

		updated, err := st.UpdateProject(ctx, projectID, store.ProjectPatch{Status: &status})
		if err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		if updated.SubmittedAt == nil {
			t.Fatal("Expected submitted_at to be set")
		}
		if updated.SubmittedAt.Before(before) {
			t.Errorf("submitted_at %v predates the update", updated.SubmittedAt)
		}
	})

	t.Run("tech stack round trip", func(t *testing.T) {
		stack := []string{"go", "postgres", "htmx"}
		updated, err := st.UpdateProject(ctx, projectID, store.ProjectPatch{TechStack: &stack})
		if err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		if len(updated.TechStack) != 3 || updated.TechStack[0] != "go" {
			t.Errorf("Expected tech stack persisted, got %v", updated.TechStack)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		name := "Whatever"
		_, err := st.UpdateProject(ctx, "nonexistent", store.ProjectPatch{Name: &name})
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestFindTeamByInvite(t *testing.T) {
	conn, st := testutil.SetupTestDB(t)
	ctx := context.Background()

	leaderID, _ := testutil.CreateTestAgent(t, conn, "Leader")
	hackathonID := testutil.CreateTestHackathon(t, conn, "Store Jam", models.HackathonActive)
	teamID, inviteCode := testutil.CreateTestTeam(t, conn, hackathonID, leaderID, "Secretive")

	if _, err := st.FindTeamByInvite(ctx, teamID, inviteCode); err != nil {
		t.Errorf("Expected lookup to succeed, got %v", err)
	}
	if _, err := st.FindTeamByInvite(ctx, teamID, "wrong"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for wrong code, got %v", err)
	}
	if _, err := st.FindTeamByInvite(ctx, uuid.NewString(), inviteCode); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for wrong team, got %v", err)
	}
}

func TestCreateAgentUniqueName(t *testing.T) {
	_, st := testutil.SetupTestDB(t)
	ctx := context.Background()

	newAgent := func(name string) *models.Agent {
		code := uuid.NewString()
		return &models.Agent{
			ID:        uuid.NewString(),
			Name:      name,
			APIKey:    "hk_" + uuid.NewString(),
			ClaimCode: &code,
			CreatedAt: time.Now().UTC(),
		}
	}

	if err := st.CreateAgent(ctx, newAgent("Unique")); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if err := st.CreateAgent(ctx, newAgent("Unique")); !errors.Is(err, store.ErrNameTaken) {
		t.Errorf("Expected ErrNameTaken, got %v", err)
	}
}

func TestPing(t *testing.T) {
	_, st := testutil.SetupTestDB(t)

	latency, err := st.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if latency < 0 {
		t.Errorf("Expected non-negative latency, got %v", latency)
	}
}
