// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the only place that talks to the database.

All multi-step writes run inside a single transaction, and every query
takes the request context so cancellation aborts in-flight work at a
transaction boundary (never mid-ballot).

# Errors

Two sentinels cover the interesting failures:

  - ErrNotFound: the row is absent or owned by another organizer. The two
    cases are deliberately indistinguishable so responses can't be used to
    probe which proposals exist.
  - ErrConflict: a database uniqueness constraint fired (public-token-hash
    collision, duplicate time option).

Everything else is wrapped with context via fmt.Errorf and %w.

# Vote Replacement

ReplaceVotes implements ballot resubmission as delete-then-insert in one
transaction. The vote table's (proposal_id, voter_id, time_option_id)
uniqueness constraint is the backstop for same-voter races: a losing
transaction hits the constraint and is retried once against the winner's
rows, so concurrent submissions converge on one complete ballot rather
than a merge.

# Timestamps

The store never invents timestamps; callers pass explicit UTC instants
for every write.
*/
package store
