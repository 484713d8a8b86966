// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/assembly-vote/models"
)

// Store holds proposals and ballots. It is the single authority for
// "already voted": the ballot primary key rejects a second vote even when
// two requests race.
type Store struct {
	db      *sql.DB
	members *Registry
	now     func() time.Time
}

func NewStore(db *sql.DB, members *Registry) *Store {
	return &Store{db: db, members: members, now: time.Now}
}

// CreateProposal stores a new proposal stamped with the server clock.
// proposedBy is free text and may be empty.
func (s *Store) CreateProposal(ctx context.Context, title, description, proposedBy string) (models.Proposal, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return models.Proposal{}, invalid("title", "is required")
	}
	if description == "" {
		return models.Proposal{}, invalid("description", "is required")
	}

	p := models.Proposal{
		Title:       title,
		Description: description,
		ProposedBy:  strings.TrimSpace(proposedBy),
		CreatedAt:   s.now().UTC(),
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO proposal (title, description, proposed_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Title, p.Description, p.ProposedBy, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to insert proposal: %w", err)
	}

	slog.Info("proposal created", "proposal_id", p.ID, "proposed_by", p.ProposedBy)

	return p, nil
}

// GetProposal returns the proposal with the given id
func (s *Store) GetProposal(ctx context.Context, id int64) (models.Proposal, error) {
	return getProposal(ctx, s.db, id)
}

// ListProposals returns every proposal newest-first. Ids increase with
// creation, so a poller detects new entries by comparing the first id.
func (s *Store) ListProposals(ctx context.Context) ([]models.Proposal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, proposed_by, created_at
		FROM proposal
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ProposedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}

// NextProposer returns the member designated to propose next. Members take
// turns in registration order: the proposal count modulo the member count
// picks the index.
func (s *Store) NextProposer(ctx context.Context) (models.Member, error) {
	var proposals int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM proposal`).Scan(&proposals); err != nil {
		return models.Member{}, fmt.Errorf("failed to count proposals: %w", err)
	}

	members, err := s.members.List(ctx)
	if err != nil {
		return models.Member{}, err
	}
	if len(members) == 0 {
		return models.Member{}, &NotFoundError{Entity: "member", ID: 0}
	}

	return members[proposals%len(members)], nil
}

func getProposal(ctx context.Context, q querier, id int64) (models.Proposal, error) {
	var p models.Proposal
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description, proposed_by, created_at
		FROM proposal
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.ProposedBy, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Proposal{}, &NotFoundError{Entity: "proposal", ID: id}
	}
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to query proposal: %w", err)
	}
	return p, nil
}
