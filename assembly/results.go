// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"context"
	"fmt"
	"sort"

	"github.com/danielhkuo/assembly-vote/models"
)

// Ballot tables. Only these constants are ever formatted into queries.
const (
	ballotTable   = "ballot"
	tiebreakTable = "tiebreak_ballot"
)

type choiceCounts struct {
	Yes, No, Abstain int
}

func (c choiceCounts) total() int { return c.Yes + c.No + c.Abstain }

func (c *choiceCounts) add(choice models.Choice, n int) {
	switch choice {
	case models.ChoiceYes:
		c.Yes += n
	case models.ChoiceNo:
		c.No += n
	case models.ChoiceAbstain:
		c.Abstain += n
	}
}

// tied reports whether a proposal qualifies for the tiebreak round: equal
// yes and no with at least one of each. Abstentions do not count.
func tied(c choiceCounts) bool {
	return c.Yes == c.No && c.Yes > 0
}

// GetResults tallies the ballots on a proposal. Nothing is cached: every
// call scans the current ballot set.
func (s *Store) GetResults(ctx context.Context, proposalID int64) (models.Results, error) {
	if _, err := s.GetProposal(ctx, proposalID); err != nil {
		return models.Results{}, err
	}

	counts, err := countChoices(ctx, s.db, ballotTable, proposalID)
	if err != nil {
		return models.Results{}, err
	}

	results := models.Results{
		ProposalID: proposalID,
		Yes:        counts.Yes,
		No:         counts.No,
		Abstain:    counts.Abstain,
		TotalVoted: counts.total(),
	}

	// Counted after the ballots: members are never removed, so every
	// counted voter is already included here.
	results.TotalEligible, err = s.members.Count(ctx)
	if err != nil {
		return models.Results{}, err
	}

	return results, nil
}

// Summary returns every proposal with its first-round counts, ordered by
// yes votes (most first), then by id.
func (s *Store) Summary(ctx context.Context) ([]models.Tally, error) {
	proposals, err := s.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	first, err := s.groupCounts(ctx, ballotTable)
	if err != nil {
		return nil, err
	}

	tallies := make([]models.Tally, 0, len(proposals))
	for _, p := range proposals {
		tallies = append(tallies, newTally(p, first[p.ID], false))
	}
	sortTallies(tallies)

	return tallies, nil
}

// TiedProposals returns the proposals eligible for the tiebreak round
func (s *Store) TiedProposals(ctx context.Context) ([]models.Tally, error) {
	tallies, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	tiedOnes := []models.Tally{}
	for _, t := range tallies {
		if tied(choiceCounts{Yes: t.Yes, No: t.No, Abstain: t.Abstain}) {
			tiedOnes = append(tiedOnes, t)
		}
	}
	return tiedOnes, nil
}

// FinalResults is Summary with tiebreak counts substituted for every
// proposal that received at least one tiebreak ballot.
func (s *Store) FinalResults(ctx context.Context) ([]models.Tally, error) {
	proposals, err := s.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	first, err := s.groupCounts(ctx, ballotTable)
	if err != nil {
		return nil, err
	}
	second, err := s.groupCounts(ctx, tiebreakTable)
	if err != nil {
		return nil, err
	}

	tallies := make([]models.Tally, 0, len(proposals))
	for _, p := range proposals {
		if c, ok := second[p.ID]; ok && c.total() > 0 {
			tallies = append(tallies, newTally(p, c, true))
			continue
		}
		tallies = append(tallies, newTally(p, first[p.ID], false))
	}
	sortTallies(tallies)

	return tallies, nil
}

// VotingStatus reports which members have voted on every proposal. Both the
// proposal set and the registry are read live, so a new proposal or member
// reopens the round.
func (s *Store) VotingStatus(ctx context.Context) (models.VotingStatus, error) {
	status := models.VotingStatus{Pending: []int64{}}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM proposal`).Scan(&status.Proposals)
	if err != nil {
		return models.VotingStatus{}, fmt.Errorf("failed to count proposals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, COUNT(b.proposal_id)
		FROM member m
		LEFT JOIN ballot b ON b.member_id = m.id
		GROUP BY m.id
		ORDER BY m.id
	`)
	if err != nil {
		return models.VotingStatus{}, fmt.Errorf("failed to query voting status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID int64
		var voted int
		if err := rows.Scan(&memberID, &voted); err != nil {
			return models.VotingStatus{}, fmt.Errorf("failed to scan voting status: %w", err)
		}
		status.Eligible++
		// >= because a proposal created after the count may already have ballots
		if voted >= status.Proposals {
			status.Finished++
		} else {
			status.Pending = append(status.Pending, memberID)
		}
	}
	if err := rows.Err(); err != nil {
		return models.VotingStatus{}, fmt.Errorf("failed to query voting status: %w", err)
	}

	status.AllVoted = status.Proposals > 0 && status.Eligible > 0 && status.Finished == status.Eligible
	return status, nil
}

func countChoices(ctx context.Context, q querier, table string, proposalID int64) (choiceCounts, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT choice, COUNT(*)
		FROM %s
		WHERE proposal_id = $1
		GROUP BY choice
	`, table), proposalID)
	if err != nil {
		return choiceCounts{}, fmt.Errorf("failed to tally ballots: %w", err)
	}
	defer rows.Close()

	var counts choiceCounts
	for rows.Next() {
		var choice string
		var n int
		if err := rows.Scan(&choice, &n); err != nil {
			return choiceCounts{}, fmt.Errorf("failed to scan tally: %w", err)
		}
		counts.add(models.Choice(choice), n)
	}
	if err := rows.Err(); err != nil {
		return choiceCounts{}, fmt.Errorf("failed to tally ballots: %w", err)
	}
	return counts, nil
}

func (s *Store) groupCounts(ctx context.Context, table string) (map[int64]choiceCounts, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT proposal_id, choice, COUNT(*)
		FROM %s
		GROUP BY proposal_id, choice
	`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to tally ballots: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]choiceCounts)
	for rows.Next() {
		var proposalID int64
		var choice string
		var n int
		if err := rows.Scan(&proposalID, &choice, &n); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		c := counts[proposalID]
		c.add(models.Choice(choice), n)
		counts[proposalID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to tally ballots: %w", err)
	}
	return counts, nil
}

func newTally(p models.Proposal, c choiceCounts, tiebreak bool) models.Tally {
	return models.Tally{
		Proposal:        p,
		Yes:             c.Yes,
		No:              c.No,
		Abstain:         c.Abstain,
		TotalVoted:      c.total(),
		TiebreakApplied: tiebreak,
	}
}

func sortTallies(tallies []models.Tally) {
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].Yes != tallies[j].Yes {
			return tallies[i].Yes > tallies[j].Yes
		}
		return tallies[i].Proposal.ID < tallies[j].Proposal.ID
	})
}
