// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/assembly-vote/cliparse"
	"github.com/danielhkuo/assembly-vote/handlers"
	"github.com/danielhkuo/assembly-vote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	memberHandler := handlers.NewMemberHandler(db, cfg)
	proposalHandler := handlers.NewProposalHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Membership
	mux.HandleFunc("POST /members", middleware.WithLogging(memberHandler.Register))
	mux.HandleFunc("GET /members", middleware.WithLogging(memberHandler.List))
	mux.HandleFunc("GET /members/{id}", middleware.WithLogging(memberHandler.Get))
	mux.HandleFunc("POST /members/{id}/login", middleware.WithLogging(memberHandler.Login))
	mux.HandleFunc("GET /members/{id}/ballots", middleware.WithLogging(memberHandler.Ballots))

	// Proposals
	mux.HandleFunc("POST /proposals", middleware.WithLogging(proposalHandler.CreateProposal))
	mux.HandleFunc("GET /proposals", middleware.WithLogging(proposalHandler.ListProposals))
	mux.HandleFunc("GET /proposals/next-proposer", middleware.WithLogging(proposalHandler.NextProposer))
	mux.HandleFunc("GET /proposals/{id}", middleware.WithLogging(proposalHandler.GetProposal))

	// Voting and results (polled)
	mux.HandleFunc("POST /proposals/{id}/vote", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /proposals/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.Summary))
	mux.HandleFunc("GET /results/status", middleware.WithLogging(resultsHandler.Status))

	// Tiebreak round
	mux.HandleFunc("GET /results/tied", middleware.WithLogging(resultsHandler.Tied))
	mux.HandleFunc("POST /proposals/{id}/tiebreak-vote", middleware.WithLogging(votingHandler.CastTiebreakVote))
	mux.HandleFunc("GET /results/final", middleware.WithLogging(resultsHandler.Final))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("assembly-vote API v1"))
	})

	return mux
}
