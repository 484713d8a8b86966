// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - RegisterMemberRequest: name, country, optional credential
  - LoginRequest: credential
  - CreateProposalRequest: title, description, proposed_by
  - CastVoteRequest: member_id, choice, credential

# Response Types

  - LoginResponse: token, expires_at, member
  - ProposalView: proposal plus a humanized created_ago
  - MemberBallotsResponse: member_id, ballots
  - ErrorResponse: error, message

# Domain Types

  - Member: registered participant; the credential hash never leaves the server
  - Proposal: immutable item put to a vote
  - Ballot: one member's choice on one proposal
  - Results: live tally for one proposal
  - Tally: proposal with raw counts, flagged when tiebreak counts apply
  - VotingStatus: proposals, eligible and finished members, pending ids
  - ProposalOutcome: tally with percentages and outcome (built by handlers)

# Constants

Choices:

	ChoiceYes     = "yes"
	ChoiceNo      = "no"
	ChoiceAbstain = "abstain"

Outcomes:

	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeTied   = "tied"
*/
package models
