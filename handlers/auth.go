// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/meetsy/auth"
	"github.com/danielhkuo/meetsy/cliparse"
	"github.com/danielhkuo/meetsy/middleware"
	"github.com/danielhkuo/meetsy/models"
	"github.com/danielhkuo/meetsy/store"
)

type AuthHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	verifier auth.IDTokenVerifier
}

func NewAuthHandler(st *store.Store, cfg cliparse.Config, verifier auth.IDTokenVerifier) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg, verifier: verifier}
}

// GoogleLogin handles POST /auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.IDToken) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "idToken is required")
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid Google ID token")
		return
	}

	now := time.Now().UTC()
	user, err := h.store.UpsertUser(r.Context(), identity.Subject, identity.Email, identity.DisplayName, identity.PictureURL, now)
	if err != nil {
		slog.Error("failed to upsert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ttl := time.Duration(h.cfg.JWTTTLMinutes) * time.Minute
	accessToken, expiresAt, err := auth.SignAccessToken(user.ID, h.cfg.JWTSecret, ttl, now)
	if err != nil {
		slog.Error("failed to sign access token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue access token")
		return
	}

	slog.Info("organizer signed in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAtUTC: expiresAt,
		User: models.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PictureURL:  user.PictureURL,
		},
	})
}
