// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"math"
	"net/http"

	"github.com/danielhkuo/assembly-vote/assembly"
	"github.com/danielhkuo/assembly-vote/middleware"
	"github.com/danielhkuo/assembly-vote/models"
)

type ResultsHandler struct {
	store *assembly.Store
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{
		store: assembly.NewStore(db, assembly.NewRegistry(db)),
	}
}

// GetResults handles GET /proposals/{id}/results
// Live tally; visible while voting is in progress
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	results, err := h.store.GetResults(r.Context(), proposalID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Summary handles GET /results
// Every proposal with percentages and outcome, most yes votes first
func (h *ResultsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tallies, err := h.store.Summary(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, outcomeViews(tallies))
}

// Status handles GET /results/status
func (h *ResultsHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.store.VotingStatus(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// Tied handles GET /results/tied
func (h *ResultsHandler) Tied(w http.ResponseWriter, r *http.Request) {
	tallies, err := h.store.TiedProposals(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, outcomeViews(tallies))
}

// Final handles GET /results/final
// Like Summary, with tiebreak counts replacing first-round counts where cast
func (h *ResultsHandler) Final(w http.ResponseWriter, r *http.Request) {
	tallies, err := h.store.FinalResults(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, outcomeViews(tallies))
}

func outcomeViews(tallies []models.Tally) []models.ProposalOutcome {
	views := make([]models.ProposalOutcome, 0, len(tallies))
	for _, t := range tallies {
		views = append(views, models.ProposalOutcome{
			Proposal:       t.Proposal,
			Yes:            t.Yes,
			No:             t.No,
			Abstain:        t.Abstain,
			TotalVoted:     t.TotalVoted,
			YesPercent:     percent(t.Yes, t.TotalVoted),
			NoPercent:      percent(t.No, t.TotalVoted),
			AbstainPercent: percent(t.Abstain, t.TotalVoted),
			Outcome:        outcome(t.Yes, t.No),
			Tiebreak:       t.TiebreakApplied,
		})
	}
	return views
}

// percent rounds half away from zero; 0 when nobody voted
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// outcome ignores abstentions
func outcome(yes, no int) string {
	switch {
	case yes > no:
		return models.OutcomePassed
	case no > yes:
		return models.OutcomeFailed
	default:
		return models.OutcomeTied
	}
}
