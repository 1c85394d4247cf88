// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Timestamps have no database defaults on purpose: every write sets them
// explicitly so both backends store identical UTC instants.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Organizers (created on first Google sign-in)
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    google_subject TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL,
    display_name TEXT,
    picture_url TEXT,
    created_at TIMESTAMP NOT NULL,
    last_login_at TIMESTAMP NOT NULL
);

-- Meeting proposals
CREATE TABLE IF NOT EXISTS proposal (
    id TEXT PRIMARY KEY,
    organizer_id TEXT NOT NULL REFERENCES users(id),
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL CHECK (status IN ('open', 'closed')),
    public_token_hash TEXT NOT NULL UNIQUE,
    public_token_sealed TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    closed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_proposal_organizer ON proposal(organizer_id);

-- Candidate time slots (immutable after proposal creation)
CREATE TABLE IF NOT EXISTS time_option (
    id TEXT PRIMARY KEY,
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP,
    UNIQUE (proposal_id, start_at, end_at)
);

CREATE INDEX IF NOT EXISTS idx_time_option_proposal ON time_option(proposal_id);

-- Anonymous votes; the uniqueness constraint is what makes concurrent
-- duplicate submissions converge to one row per (proposal, voter, option)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    proposal_id TEXT NOT NULL REFERENCES proposal(id) ON DELETE CASCADE,
    time_option_id TEXT NOT NULL REFERENCES time_option(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    voter_name TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (proposal_id, voter_id, time_option_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_option ON vote(time_option_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(proposal_id, voter_id);
`
