// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Panic Recovery

Recover catches handler panics, logs them with a generated correlation id,
and answers with an opaque 500 carrying only that id. No internal detail
reaches the client.

# Bearer Authentication

RequireAuth validates the Authorization: Bearer access token and puts the
organizer id in the request context:

	mux.HandleFunc("GET /proposals", middleware.RequireAuth(secret, handler))

Handlers read the identity back with middleware.UserID(r) and pass it to
the store explicitly; nothing below the handler layer touches the request
context.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}
*/
package middleware
