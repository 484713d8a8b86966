// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/assembly-vote/assembly"
	"github.com/danielhkuo/assembly-vote/auth"
	"github.com/danielhkuo/assembly-vote/cliparse"
	"github.com/danielhkuo/assembly-vote/middleware"
	"github.com/danielhkuo/assembly-vote/models"
)

type MemberHandler struct {
	members *assembly.Registry
	store   *assembly.Store
	cfg     cliparse.Config
}

func NewMemberHandler(db *sql.DB, cfg cliparse.Config) *MemberHandler {
	members := assembly.NewRegistry(db)
	return &MemberHandler{
		members: members,
		store:   assembly.NewStore(db, members),
		cfg:     cfg,
	}
}

// Register handles POST /members
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	member, err := h.members.Register(r.Context(), req.Name, req.Country, req.Credential)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, member)
}

// List handles GET /members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, members)
}

// Get handles GET /members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.members.Get(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, member)
}

// Login handles POST /members/{id}/login
// Exchanges the member's credential for a session token
func (h *MemberHandler) Login(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	member, err := h.members.Authenticate(r.Context(), memberID, req.Credential)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	token, expiresAt, err := auth.IssueSessionToken(member.ID, h.cfg.SessionSecret, h.cfg.SessionTTL, time.Now())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("member logged in", "member_id", member.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Member:    member,
	})
}

// Ballots handles GET /members/{id}/ballots
// Lets a client rebuild its "already voted" view from the server
func (h *MemberHandler) Ballots(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ballots, err := h.store.MemberBallots(r.Context(), memberID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MemberBallotsResponse{
		MemberID: memberID,
		Ballots:  ballots,
	})
}

// pathID parses a positive integer path value, writing a 400 when it is not one
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
