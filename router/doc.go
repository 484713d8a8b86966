// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the assembly voting API.

# Route Registration

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Membership:

	POST /members              - Register member
	GET  /members              - List members (registration order)
	GET  /members/{id}         - Get member
	POST /members/{id}/login   - Exchange credential for session token
	GET  /members/{id}/ballots - Ballots cast by the member

Proposals:

	POST /proposals               - Create proposal
	GET  /proposals               - List proposals (newest first)
	GET  /proposals/next-proposer - Member whose turn it is to propose
	GET  /proposals/{id}          - Get proposal

Voting and results (clients poll these):

	POST /proposals/{id}/vote    - Cast vote
	GET  /proposals/{id}/results - Live tally
	GET  /results                - All proposals with outcome
	GET  /results/status         - Who has voted on every proposal

Tiebreak round:

	GET  /results/tied                    - Proposals with equal, non-zero yes and no
	POST /proposals/{id}/tiebreak-vote    - Cast tiebreak vote
	GET  /results/final                   - Outcomes with tiebreak counts applied
*/
package router
