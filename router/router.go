// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/meetsy/auth"
	"github.com/danielhkuo/meetsy/cliparse"
	"github.com/danielhkuo/meetsy/handlers"
	"github.com/danielhkuo/meetsy/middleware"
	"github.com/danielhkuo/meetsy/store"
	"github.com/danielhkuo/meetsy/token"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, codec *token.Codec, verifier auth.IDTokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	st := store.New(db)
	authHandler := handlers.NewAuthHandler(st, cfg, verifier)
	proposalHandler := handlers.NewProposalHandler(st, cfg, codec)
	publicHandler := handlers.NewPublicHandler(st, codec)

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Recover(middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h)))
	}
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.Recover(middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Organizer sign-in
	mux.HandleFunc("POST /auth/google", public(authHandler.GoogleLogin))

	// Proposal management (organizer, requires bearer token)
	mux.HandleFunc("POST /proposals", protected(proposalHandler.Create))
	mux.HandleFunc("GET /proposals", protected(proposalHandler.List))
	mux.HandleFunc("GET /proposals/{id}", protected(proposalHandler.Get))
	mux.HandleFunc("POST /proposals/{id}/close", protected(proposalHandler.Close))
	mux.HandleFunc("GET /proposals/{id}/votes", protected(proposalHandler.GetVotes))

	// Anonymous voting (public, uses share token)
	mux.HandleFunc("GET /public/polls/{token}", public(publicHandler.GetPoll))
	mux.HandleFunc("POST /public/polls/{token}/votes", public(publicHandler.SubmitVotes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meetsy API v1"))
	})

	return mux
}
