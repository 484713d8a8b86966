// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/assembly-vote/assembly"
	"github.com/danielhkuo/assembly-vote/auth"
	"github.com/danielhkuo/assembly-vote/cliparse"
	"github.com/danielhkuo/assembly-vote/middleware"
	"github.com/danielhkuo/assembly-vote/models"
)

type VotingHandler struct {
	members *assembly.Registry
	store   *assembly.Store
	cfg     cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	members := assembly.NewRegistry(db)
	return &VotingHandler{
		members: members,
		store:   assembly.NewStore(db, members),
		cfg:     cfg,
	}
}

// CastVote handles POST /proposals/{id}/vote
//
// The voter is the bearer session's member when one is sent. Otherwise
// member_id comes from the body, and members who registered a credential
// must repeat it.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	memberID, ok := h.resolveVoter(w, r, req)
	if !ok {
		return
	}

	ballot, err := h.store.CastVote(r.Context(), proposalID, memberID, req.Choice)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, ballot)
}

// CastTiebreakVote handles POST /proposals/{id}/tiebreak-vote
// Same identity rules as CastVote; only tied proposals accept ballots
func (h *VotingHandler) CastTiebreakVote(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	memberID, ok := h.resolveVoter(w, r, req)
	if !ok {
		return
	}

	ballot, err := h.store.CastTiebreakVote(r.Context(), proposalID, memberID, req.Choice)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, ballot)
}

func (h *VotingHandler) resolveVoter(w http.ResponseWriter, r *http.Request, req models.CastVoteRequest) (int64, bool) {
	if token := auth.BearerToken(r); token != "" {
		memberID, err := auth.ParseSessionToken(token, h.cfg.SessionSecret)
		if err != nil {
			middleware.WriteError(w, err)
			return 0, false
		}
		if req.MemberID != 0 && req.MemberID != memberID {
			middleware.ErrorResponse(w, http.StatusForbidden, "Cannot vote on behalf of another member")
			return 0, false
		}
		return memberID, true
	}

	if req.MemberID < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return 0, false
	}

	member, err := h.members.Get(r.Context(), req.MemberID)
	if err != nil {
		middleware.WriteError(w, err)
		return 0, false
	}
	if member.HasCredential {
		if _, err := h.members.Authenticate(r.Context(), member.ID, req.Credential); err != nil {
			middleware.WriteError(w, err)
			return 0, false
		}
	}

	return member.ID, true
}
