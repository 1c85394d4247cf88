// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Meetsy API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AuthHandler: Google sign-in and access-token issuance
  - ProposalHandler: organizer proposal lifecycle (create, list, get,
    close, vote breakdown)
  - PublicHandler: anonymous poll view and vote submission

Handlers are created via constructor functions:

	proposalHandler := handlers.NewProposalHandler(st, cfg, codec)

# Proposal Lifecycle

A proposal is created open, with 1-20 immutable time options, and can only
move open → closed, once. Closing is idempotent and closed polls stay
readable.

	POST /proposals            → Create (returns the plaintext public token)
	GET  /proposals            → List (newest first)
	GET  /proposals/{id}       → Get (with per-option vote counts)
	POST /proposals/{id}/close → Close
	GET  /proposals/{id}/votes → GetVotes (voter → options breakdown)

Organizer routes answer 404 for proposals that are absent and for
proposals owned by someone else, identically.

# Public Voting

Anonymous voters interact via the public token:

	GET  /public/polls/{token}       → GetPoll (counts + leading flags)
	POST /public/polls/{token}/votes → SubmitVotes

A voter is identified by an opaque voterId that the server mints on first
submission and the client replays afterwards. Resubmitting replaces the
voter's whole ballot; an empty list retracts it. The voterId is only an
idempotency key - holding it is the only "ownership" a ballot has.

# Identity

Authenticated routes run behind middleware.RequireAuth; handlers read the
organizer id with middleware.UserID(r) at the top and pass it down
explicitly. Business logic never touches ambient request state.
*/
package handlers
