// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - GoogleLoginRequest: idToken
  - CreateProposalRequest: title, description, timeOptions
  - SubmitVotesRequest: voterId, voterName, timeOptionIds

# Response Types

Types for JSON responses:

  - LoginResponse: accessToken, expiresAtUtc, user
  - ProposalResponse: full proposal with options and plaintext public token
  - ListProposalsResponse: organizer's proposals, newest first
  - ProposalVotesResponse: per-voter option breakdown
  - PublicPollResponse: anonymous view with counts and leading flags
  - SubmitVotesResponse: resolved voterId
  - ErrorResponse: error, message

JSON field names are camelCase to match the web client.

# Domain Types

Internal data structures:

  - User: organizer record keyed by Google subject
  - Proposal: proposal metadata and lifecycle state
  - TimeOption: candidate slot with live vote count
  - ProposalDetail: proposal plus its options

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Validation limits (title, description, option count, voter name) are the
MaxX constants.
*/
package models
