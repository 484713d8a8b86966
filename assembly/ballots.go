// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/assembly-vote/db"
	"github.com/danielhkuo/assembly-vote/models"
)

// CastVote records a member's ballot on a proposal. Ballots are permanent:
// a second attempt for the same pair fails with *DuplicateVoteError and
// leaves the first ballot untouched.
func (s *Store) CastVote(ctx context.Context, proposalID, memberID int64, choice models.Choice) (models.Ballot, error) {
	return s.insertBallot(ctx, ballotTable, proposalID, memberID, choice, nil)
}

// CastTiebreakVote records a second-round ballot on a tied proposal. The
// first-round ballots stay as they are; the tiebreak round has its own
// one-ballot-per-member rule.
func (s *Store) CastTiebreakVote(ctx context.Context, proposalID, memberID int64, choice models.Choice) (models.Ballot, error) {
	return s.insertBallot(ctx, tiebreakTable, proposalID, memberID, choice, func(tx *sql.Tx) error {
		counts, err := countChoices(ctx, tx, ballotTable, proposalID)
		if err != nil {
			return err
		}
		if !tied(counts) {
			return invalid("proposal", "is not tied")
		}
		return nil
	})
}

// insertBallot runs the shared vote path. check, when set, runs inside the
// transaction after both ids are known to exist.
func (s *Store) insertBallot(ctx context.Context, table string, proposalID, memberID int64, choice models.Choice, check func(*sql.Tx) error) (models.Ballot, error) {
	if !choice.Valid() {
		return models.Ballot{}, invalid("choice", "must be one of yes, no, abstain")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getProposal(ctx, tx, proposalID); err != nil {
		return models.Ballot{}, err
	}
	if _, err := getMember(ctx, tx, memberID); err != nil {
		return models.Ballot{}, err
	}
	if check != nil {
		if err := check(tx); err != nil {
			return models.Ballot{}, err
		}
	}

	ballot := models.Ballot{
		ProposalID: proposalID,
		MemberID:   memberID,
		Choice:     choice,
		CastAt:     s.now().UTC(),
	}

	// The (proposal_id, member_id) primary key is the serialization point
	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (proposal_id, member_id, choice, cast_at)
		VALUES ($1, $2, $3, $4)
	`, table), ballot.ProposalID, ballot.MemberID, string(ballot.Choice), ballot.CastAt)
	if db.IsUniqueViolation(err) {
		slog.Warn("duplicate vote rejected", "proposal_id", proposalID, "member_id", memberID, "round", table)
		return models.Ballot{}, &DuplicateVoteError{ProposalID: proposalID, MemberID: memberID}
	}
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to insert ballot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return models.Ballot{}, &DuplicateVoteError{ProposalID: proposalID, MemberID: memberID}
		}
		return models.Ballot{}, fmt.Errorf("failed to commit ballot: %w", err)
	}

	slog.Info("vote cast", "proposal_id", proposalID, "member_id", memberID, "choice", choice, "round", table)

	return ballot, nil
}

// MemberBallots returns the ballots a member has cast, oldest first
func (s *Store) MemberBallots(ctx context.Context, memberID int64) ([]models.Ballot, error) {
	if _, err := s.members.Get(ctx, memberID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT proposal_id, member_id, choice, cast_at
		FROM ballot
		WHERE member_id = $1
		ORDER BY cast_at, proposal_id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	return scanBallots(rows)
}

func scanBallots(rows *sql.Rows) ([]models.Ballot, error) {
	ballots := []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		var choice string
		if err := rows.Scan(&b.ProposalID, &b.MemberID, &choice, &b.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		b.Choice = models.Choice(choice)
		ballots = append(ballots, b)
	}
	return ballots, rows.Err()
}
