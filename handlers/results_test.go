// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/assembly-vote/models"
	"github.com/danielhkuo/assembly-vote/testutil"
)

func TestGetResultsHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db)

	alice := testutil.CreateTestMember(t, db, "Alice", "Norway")
	bob := testutil.CreateTestMember(t, db, "Bob", "Peru")
	testutil.CreateTestMember(t, db, "Carol", "Chile")
	proposalID := testutil.CreateTestProposal(t, db, "Budget", "Alice")
	testutil.CastTestVote(t, db, proposalID, alice, "yes")
	testutil.CastTestVote(t, db, proposalID, bob, "abstain")

	path := strconv.FormatInt(proposalID, 10)
	req := httptest.NewRequest("GET", "/proposals/"+path+"/results", nil)
	req.SetPathValue("id", path)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.Results
	testutil.AssertJSON(t, w, &results)
	want := models.Results{ProposalID: proposalID, Yes: 1, Abstain: 1, TotalVoted: 2, TotalEligible: 3}
	if results != want {
		t.Errorf("Expected %+v, got %+v", want, results)
	}

	req = httptest.NewRequest("GET", "/proposals/999/results", nil)
	req.SetPathValue("id", "999")
	w = httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSummaryHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db)

	alice := testutil.CreateTestMember(t, db, "Alice", "Norway")
	bob := testutil.CreateTestMember(t, db, "Bob", "Peru")
	rejected := testutil.CreateTestProposal(t, db, "Rejected", "Alice")
	accepted := testutil.CreateTestProposal(t, db, "Accepted", "Bob")
	testutil.CastTestVote(t, db, rejected, alice, "no")
	testutil.CastTestVote(t, db, accepted, alice, "yes")
	testutil.CastTestVote(t, db, accepted, bob, "yes")

	w := httptest.NewRecorder()
	handler.Summary(w, httptest.NewRequest("GET", "/results", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var outcomes []models.ProposalOutcome
	testutil.AssertJSON(t, w, &outcomes)
	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Proposal.ID != accepted || outcomes[0].Outcome != models.OutcomePassed || outcomes[0].YesPercent != 100 {
		t.Errorf("Unexpected first outcome %+v", outcomes[0])
	}
	if outcomes[1].Proposal.ID != rejected || outcomes[1].Outcome != models.OutcomeFailed {
		t.Errorf("Unexpected second outcome %+v", outcomes[1])
	}
}

func TestVotingStatusHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db)

	alice := testutil.CreateTestMember(t, db, "Alice", "Norway")
	bob := testutil.CreateTestMember(t, db, "Bob", "Peru")
	proposalID := testutil.CreateTestProposal(t, db, "Budget", "Alice")
	testutil.CastTestVote(t, db, proposalID, alice, "yes")

	w := httptest.NewRecorder()
	handler.Status(w, httptest.NewRequest("GET", "/results/status", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var status models.VotingStatus
	testutil.AssertJSON(t, w, &status)
	if status.AllVoted || status.Finished != 1 || status.Eligible != 2 {
		t.Errorf("Unexpected status %+v", status)
	}
	if len(status.Pending) != 1 || status.Pending[0] != bob {
		t.Errorf("Expected Bob pending, got %v", status.Pending)
	}
}

func TestTiedAndFinalHandlers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db)

	alice := testutil.CreateTestMember(t, db, "Alice", "Norway")
	bob := testutil.CreateTestMember(t, db, "Bob", "Peru")
	split := testutil.CreateTestProposal(t, db, "Split", "Alice")
	testutil.CastTestVote(t, db, split, alice, "yes")
	testutil.CastTestVote(t, db, split, bob, "no")

	w := httptest.NewRecorder()
	handler.Tied(w, httptest.NewRequest("GET", "/results/tied", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var tied []models.ProposalOutcome
	testutil.AssertJSON(t, w, &tied)
	if len(tied) != 1 || tied[0].Proposal.ID != split || tied[0].Outcome != models.OutcomeTied {
		t.Fatalf("Expected proposal %d tied, got %+v", split, tied)
	}

	if _, err := db.Exec(`
		INSERT INTO tiebreak_ballot (proposal_id, member_id, choice, cast_at)
		VALUES ($1, $2, 'no', CURRENT_TIMESTAMP)
	`, split, alice); err != nil {
		t.Fatalf("Failed to insert tiebreak ballot: %v", err)
	}

	w = httptest.NewRecorder()
	handler.Final(w, httptest.NewRequest("GET", "/results/final", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var final []models.ProposalOutcome
	testutil.AssertJSON(t, w, &final)
	if len(final) != 1 {
		t.Fatalf("Expected 1 outcome, got %d", len(final))
	}
	if !final[0].Tiebreak || final[0].Outcome != models.OutcomeFailed || final[0].NoPercent != 100 {
		t.Errorf("Expected tiebreak to decide the proposal, got %+v", final[0])
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		count, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds away from zero
		{5, 5, 100},
	}

	for _, tt := range tests {
		if got := percent(tt.count, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %d, want %d", tt.count, tt.total, got, tt.want)
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		yes, no int
		want    string
	}{
		{3, 1, models.OutcomePassed},
		{1, 3, models.OutcomeFailed},
		{2, 2, models.OutcomeTied},
		{0, 0, models.OutcomeTied},
	}

	for _, tt := range tests {
		if got := outcome(tt.yes, tt.no); got != tt.want {
			t.Errorf("outcome(%d, %d) = %s, want %s", tt.yes, tt.no, got, tt.want)
		}
	}
}

func TestOutcomeViews(t *testing.T) {
	views := outcomeViews([]models.Tally{
		{Proposal: models.Proposal{ID: 1}, Yes: 2, No: 1, TotalVoted: 3},
		{Proposal: models.Proposal{ID: 2}},
	})

	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].YesPercent != 67 || views[0].NoPercent != 33 || views[0].Outcome != models.OutcomePassed {
		t.Errorf("Unexpected view %+v", views[0])
	}
	if views[1].YesPercent != 0 || views[1].Outcome != models.OutcomeTied {
		t.Errorf("Expected empty proposal to be tied at 0%%, got %+v", views[1])
	}
}
