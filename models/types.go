// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Choice is a member's answer on a proposal.
type Choice string

// Ballot choices
const (
	ChoiceYes     Choice = "yes"
	ChoiceNo      Choice = "no"
	ChoiceAbstain Choice = "abstain"
)

// Valid reports whether c is one of yes, no or abstain.
func (c Choice) Valid() bool {
	switch c {
	case ChoiceYes, ChoiceNo, ChoiceAbstain:
		return true
	}
	return false
}

// Proposal outcomes
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeTied   = "tied"
)

// Request types

type RegisterMemberRequest struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	Credential string `json:"credential,omitempty"`
}

type LoginRequest struct {
	Credential string `json:"credential"`
}

type CreateProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProposedBy  string `json:"proposed_by"`
}

// MemberID may be omitted when the request carries a bearer session.
type CastVoteRequest struct {
	MemberID   int64  `json:"member_id"`
	Choice     Choice `json:"choice"`
	Credential string `json:"credential,omitempty"`
}

// Response types

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Member    Member    `json:"member"`
}

type ProposalView struct {
	Proposal
	CreatedAgo string `json:"created_ago"`
}

type MemberBallotsResponse struct {
	MemberID int64    `json:"member_id"`
	Ballots  []Ballot `json:"ballots"`
}

// Domain types

type Member struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Country        string    `json:"country"`
	HasCredential  bool      `json:"has_credential"`
	CredentialHash string    `json:"-"` // Never expose in JSON
	RegisteredAt   time.Time `json:"registered_at"`
}

type Proposal struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProposedBy  string    `json:"proposed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Ballot struct {
	ProposalID int64     `json:"proposal_id"`
	MemberID   int64     `json:"member_id"`
	Choice     Choice    `json:"choice"`
	CastAt     time.Time `json:"cast_at"`
}

// Results is computed on demand from the ballot set. TotalEligible is the
// registry size at query time, not a snapshot taken when voting began.
type Results struct {
	ProposalID    int64 `json:"proposal_id"`
	Yes           int   `json:"yes"`
	No            int   `json:"no"`
	Abstain       int   `json:"abstain"`
	TotalVoted    int   `json:"total_voted"`
	TotalEligible int   `json:"total_eligible"`
}

// Tally is a proposal with raw vote counts and no interpretation.
// TiebreakApplied is set when the counts come from the tiebreak round.
type Tally struct {
	Proposal        Proposal `json:"proposal"`
	Yes             int      `json:"yes"`
	No              int      `json:"no"`
	Abstain         int      `json:"abstain"`
	TotalVoted      int      `json:"total_voted"`
	TiebreakApplied bool     `json:"tiebreak_applied"`
}

// VotingStatus reports how many registered members have a ballot on every
// proposal. Pending lists the members still missing at least one.
type VotingStatus struct {
	Proposals int     `json:"proposals"`
	Eligible  int     `json:"eligible"`
	Finished  int     `json:"finished"`
	AllVoted  bool    `json:"all_voted"`
	Pending   []int64 `json:"pending"`
}

type ProposalOutcome struct {
	Proposal       Proposal `json:"proposal"`
	Yes            int      `json:"yes"`
	No             int      `json:"no"`
	Abstain        int      `json:"abstain"`
	TotalVoted     int      `json:"total_voted"`
	YesPercent     int      `json:"yes_percent"`
	NoPercent      int      `json:"no_percent"`
	AbstainPercent int      `json:"abstain_percent"`
	Outcome        string   `json:"outcome"`
	Tiebreak       bool     `json:"tiebreak"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
