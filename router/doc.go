// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Meetsy API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, codec, verifier)

# Endpoints

Health:

	GET /health

Sign-in:

	POST /auth/google - Exchange a Google ID token for an access token

Proposal management (organizer, requires Authorization: Bearer):

	POST /proposals            - Create proposal with time options
	GET  /proposals            - List own proposals
	GET  /proposals/{id}       - Get proposal with vote counts
	POST /proposals/{id}/close - Close voting
	GET  /proposals/{id}/votes - Per-voter ballot breakdown

Anonymous voting (public, uses share token):

	GET  /public/polls/{token}       - Poll view with counts and leading flags
	POST /public/polls/{token}/votes - Submit or replace a ballot

# Middleware Chains

Organizer routes run Recover → WithLogging → RequireAuth; public routes
run Recover → WithLogging. CORS is applied once around the whole mux in
main, not per-route.

# Handler Initialization

The router creates handler instances with dependency injection:

	st := store.New(db)
	authHandler := handlers.NewAuthHandler(st, cfg, verifier)
	proposalHandler := handlers.NewProposalHandler(st, cfg, codec)
	publicHandler := handlers.NewPublicHandler(st, codec)
*/
package router
