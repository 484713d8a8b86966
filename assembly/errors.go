// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateVote = errors.New("already voted on this proposal")
)

// ValidationError reports malformed or empty input. The caller must correct
// the input and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports a reference to an entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("no %s found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateVoteError reports a second ballot for the same (proposal, member) pair.
type DuplicateVoteError struct {
	ProposalID int64
	MemberID   int64
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("member %d has already voted on proposal %d", e.MemberID, e.ProposalID)
}

func (e *DuplicateVoteError) Unwrap() error { return ErrDuplicateVote }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
