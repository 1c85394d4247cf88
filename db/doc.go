// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is portable across the two supported backends (postgres and sqlite).

# Tables

  - users: organizers, keyed by Google subject
  - proposal: meeting proposals and lifecycle state
  - time_option: candidate time slots per proposal
  - vote: anonymous votes, one row per (proposal, voter, option)

# Relationships

	users 1──* proposal
	proposal 1──* time_option
	proposal 1──* vote
	time_option 1──* vote

Child foreign keys use ON DELETE CASCADE.

# Uniqueness Invariants

Enforced by the database, not application code, so concurrent writers
cannot race past them:

  - users.google_subject (one organizer per identity)
  - proposal.public_token_hash (token lookup key; collision aborts creation)
  - time_option.(proposal_id, start_at, end_at) (no duplicate slots)
  - vote.(proposal_id, voter_id, time_option_id) (at most one vote per
    voter per slot)
*/
package db
