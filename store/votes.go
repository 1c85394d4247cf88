// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meetsy/models"
)

// ReplaceVotes atomically swaps a voter's whole ballot for a proposal:
// delete everything for (proposal, voter), then insert one row per option.
// An empty option list is a retraction. Two submissions racing for the same
// voter serialize at the vote uniqueness constraint; the loser is retried
// once against the winner's committed rows, so the final ballot always
// equals exactly one submitted set.
func (s *Store) ReplaceVotes(ctx context.Context, proposalID, voterID string, voterName *string, optionIDs []string, now time.Time) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = s.replaceVotesOnce(ctx, proposalID, voterID, voterName, optionIDs, now)
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("failed to replace votes: %w", err)
}

func (s *Store) replaceVotesOnce(ctx context.Context, proposalID, voterID string, voterName *string, optionIDs []string, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM vote WHERE proposal_id = $1 AND voter_id = $2
	`, proposalID, voterID)
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}

	for _, optionID := range optionIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote (id, proposal_id, time_option_id, voter_id, voter_name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), proposalID, optionID, voterID, nullString(voterName), now)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit votes: %w", err)
	}
	return nil
}

// ListVotersGrouped returns each distinct (voterId, voterName) with the
// option ids they voted for. Ordered by name then voter id; missing names
// sort first.
func (s *Store) ListVotersGrouped(ctx context.Context, proposalID string) ([]models.VoterBallot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT voter_id, voter_name, time_option_id
		FROM vote
		WHERE proposal_id = $1
		ORDER BY COALESCE(voter_name, ''), voter_id, time_option_id
	`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	voters := []models.VoterBallot{}
	for rows.Next() {
		var voterID, optionID string
		var voterName sql.NullString
		if err := rows.Scan(&voterID, &voterName, &optionID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		name := stringPtr(voterName)
		n := len(voters)
		if n > 0 && voters[n-1].VoterID == voterID && equalName(voters[n-1].VoterName, name) {
			voters[n-1].TimeOptionIDs = append(voters[n-1].TimeOptionIDs, optionID)
			continue
		}
		voters = append(voters, models.VoterBallot{
			VoterID:       voterID,
			VoterName:     name,
			TimeOptionIDs: []string{optionID},
		})
	}
	return voters, rows.Err()
}

func equalName(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
