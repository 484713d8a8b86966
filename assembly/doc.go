// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assembly is the tallying core: the membership registry and the
proposal and ballot store that clients poll against.

# Membership Registry

	members := assembly.NewRegistry(conn)
	m, err := members.Register(ctx, "Alice", "Norway", "")

Ids increase monotonically and are never reused. Members are never deleted,
so a ballot always resolves to the member who cast it.

# Proposals and Ballots

	store := assembly.NewStore(conn, members)
	p, err := store.CreateProposal(ctx, "Budget", "Approve the budget", "Alice")
	b, err := store.CastVote(ctx, p.ID, m.ID, models.ChoiceYes)
	res, err := store.GetResults(ctx, p.ID)

Proposals are visible to ListProposals (newest-first) as soon as they are
created. Ballots are immutable; there is no vote change or retraction.

# Results

GetResults scans the ballots on every call. TotalEligible is the registry
size at query time, so it grows when members join after voting starts.
Summary reports raw counts for every proposal; percentages and any
passed/failed reading are left to callers. VotingStatus lists the members
who still lack a ballot on some proposal.

# Tiebreak Round

A proposal whose first-round yes and no counts are equal and non-zero is
tied. CastTiebreakVote records a ballot in a separate round with the same
one-per-member rule, leaving first-round ballots untouched. FinalResults
substitutes tiebreak counts wherever at least one tiebreak ballot exists.

# Errors

Every failure is one of three distinguishable types:

  - *ValidationError (errors.Is ErrValidation): empty or malformed input
  - *NotFoundError (errors.Is ErrNotFound): unknown proposal or member id
  - *DuplicateVoteError (errors.Is ErrDuplicateVote): second vote on a pair

Mutations have no partial state; a failed call leaves nothing behind.
*/
package assembly
