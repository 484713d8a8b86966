// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/assembly-vote/assembly"
	"github.com/danielhkuo/assembly-vote/auth"
	"github.com/danielhkuo/assembly-vote/cliparse"
	"github.com/danielhkuo/assembly-vote/middleware"
	"github.com/danielhkuo/assembly-vote/models"
)

type ProposalHandler struct {
	members *assembly.Registry
	store   *assembly.Store
	cfg     cliparse.Config
}

func NewProposalHandler(db *sql.DB, cfg cliparse.Config) *ProposalHandler {
	members := assembly.NewRegistry(db)
	return &ProposalHandler{
		members: members,
		store:   assembly.NewStore(db, members),
		cfg:     cfg,
	}
}

// CreateProposal handles POST /proposals
// With a bearer session the proposer is the session member's name;
// otherwise proposed_by from the body is used as given.
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	proposedBy := req.ProposedBy
	if token := auth.BearerToken(r); token != "" {
		memberID, err := auth.ParseSessionToken(token, h.cfg.SessionSecret)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		member, err := h.members.Get(r.Context(), memberID)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		proposedBy = member.Name
	}

	proposal, err := h.store.CreateProposal(r.Context(), req.Title, req.Description, proposedBy)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, proposal)
}

// ListProposals handles GET /proposals
// Newest first; pollers compare the first id to spot new proposals
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.store.ListProposals(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	views := make([]models.ProposalView, 0, len(proposals))
	for _, p := range proposals {
		views = append(views, models.ProposalView{
			Proposal:   p,
			CreatedAgo: humanize.Time(p.CreatedAt),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// GetProposal handles GET /proposals/{id}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	proposal, err := h.store.GetProposal(r.Context(), proposalID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalView{
		Proposal:   proposal,
		CreatedAgo: humanize.Time(proposal.CreatedAt),
	})
}

// NextProposer handles GET /proposals/next-proposer
// Members take turns in registration order
func (h *ProposalHandler) NextProposer(w http.ResponseWriter, r *http.Request) {
	member, err := h.store.NextProposer(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, member)
}
