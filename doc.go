// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Meetsy API server.

Meetsy is a meeting-scheduling service: an organizer signs in with Google,
proposes a meeting with up to 20 candidate time slots, and shares an
unguessable public link. Anyone with the link can vote for the slots that
work for them, no account required. The organizer reviews the tallies and
closes the poll.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3441 -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (postgres) or file path (sqlite)
  - TOKEN_PEPPER (--token-pepper): secret for public-token lookup hashing
  - TOKEN_SEAL_KEY (--token-seal-key): secret for public-token sealing
  - JWT_SECRET (--jwt-secret): secret for organizer access tokens
  - GOOGLE_CLIENT_ID (--google-client-id): audience for Google sign-in

Optional settings:

  - PORT (-p): server port (default: 3441)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - JWT_TTL_MINUTES (--jwt-ttl): access token lifetime (default: 60)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, proposals, public polls)
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, CORS, JSON helpers, panic recovery, bearer auth
  - token: public-token generation, lookup hashing, and sealing
  - auth: organizer access tokens and Google ID-token verification
  - store: all database access (transactions, uniqueness invariants)
  - models: request/response types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
