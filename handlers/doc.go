// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the assembly voting API.

# Handler Types

Each handler is a struct built from the database (and config, where it
reads session settings):

  - MemberHandler: registration, lookup, login, a member's ballots
  - ProposalHandler: create, list, get, next designated proposer
  - VotingHandler: casting first-round and tiebreak votes
  - ResultsHandler: per-proposal tallies, summary, voting status, tied and
    final outcomes; percentages and passed/failed/tied are computed here

	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db)

Handlers are thin: they parse the request, call the assembly package, and
let middleware.WriteError map failures to status codes.

# Voting Flow

	POST /members                  → Register (optional credential)
	POST /members/{id}/login       → Login (returns bearer token)
	POST /proposals                → CreateProposal
	POST /proposals/{id}/vote      → CastVote
	GET  /proposals/{id}/results   → GetResults (polled by clients)
	GET  /results/status           → Status (who still has to vote)
	GET  /results/tied             → Tied
	POST /proposals/{id}/tiebreak-vote → CastTiebreakVote
	GET  /results/final            → Final

A vote is attributed to the bearer session's member when present, else to
member_id in the body; members with a credential must repeat it. A second
vote by the same member on the same proposal returns 409.
*/
package handlers
