// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meetsy/cliparse"
	"github.com/danielhkuo/meetsy/middleware"
	"github.com/danielhkuo/meetsy/models"
	"github.com/danielhkuo/meetsy/store"
	"github.com/danielhkuo/meetsy/token"
)

type ProposalHandler struct {
	store *store.Store
	cfg   cliparse.Config
	codec *token.Codec
}

func NewProposalHandler(st *store.Store, cfg cliparse.Config, codec *token.Codec) *ProposalHandler {
	return &ProposalHandler{store: st, cfg: cfg, codec: codec}
}

// Create handles POST /proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	title := strings.TrimSpace(req.Title)
	if len(title) < 1 || len(title) > models.MaxTitleLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be 1-200 characters")
		return
	}

	var description *string
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if len(d) > models.MaxDescriptionLength {
			middleware.ErrorResponse(w, http.StatusBadRequest, "description must be at most 4000 characters")
			return
		}
		description = &d
	}

	if len(req.TimeOptions) < 1 || len(req.TimeOptions) > models.MaxTimeOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "timeOptions must contain 1-20 entries")
		return
	}

	// Normalize to UTC before range and duplicate checks so the same
	// instant written with different offsets counts as a duplicate.
	options := make([]models.TimeOption, 0, len(req.TimeOptions))
	seen := make(map[string]bool, len(req.TimeOptions))
	for _, in := range req.TimeOptions {
		start := in.StartAt.UTC()
		var end *time.Time
		key := start.Format(time.RFC3339Nano) + "/"
		if in.EndAt != nil {
			e := in.EndAt.UTC()
			if !e.After(start) {
				middleware.ErrorResponse(w, http.StatusBadRequest, "endAt must be after startAt")
				return
			}
			end = &e
			key += e.Format(time.RFC3339Nano)
		}
		if seen[key] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate time options")
			return
		}
		seen[key] = true
		options = append(options, models.TimeOption{StartAt: start, EndAt: end})
	}

	// Generate the public token; only its hash and sealed form are stored.
	plainToken, err := h.codec.Generate()
	if err != nil {
		slog.Error("failed to generate public token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create proposal")
		return
	}
	sealed, err := h.codec.Seal(plainToken)
	if err != nil {
		slog.Error("failed to seal public token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create proposal")
		return
	}

	now := time.Now().UTC()
	proposal := models.Proposal{
		ID:                uuid.NewString(),
		OrganizerID:       userID,
		Title:             title,
		Description:       description,
		Status:            models.StatusOpen,
		PublicTokenHash:   h.codec.Hash(plainToken),
		PublicTokenSealed: sealed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i := range options {
		options[i].ID = uuid.NewString()
		options[i].ProposalID = proposal.ID
	}

	err = h.store.CreateProposal(r.Context(), proposal, options)
	if errors.Is(err, store.ErrConflict) {
		// Duplicate options were rejected above, so a conflict here is the
		// token hash colliding with an existing proposal. Retrying mints a
		// fresh token.
		slog.Warn("public token hash collision", "proposal_id", proposal.ID)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Token generation failed, retry the request")
		return
	}
	if err != nil {
		slog.Error("failed to create proposal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create proposal")
		return
	}

	slog.Info("proposal created", "proposal_id", proposal.ID, "options", len(options))

	// Responses list options by start time, matching what reads return
	sort.Slice(options, func(i, j int) bool {
		if !options[i].StartAt.Equal(options[j].StartAt) {
			return options[i].StartAt.Before(options[j].StartAt)
		}
		return options[i].EndAt != nil && options[j].EndAt != nil && options[i].EndAt.Before(*options[j].EndAt)
	})

	detail := models.ProposalDetail{Proposal: proposal, TimeOptions: options}
	middleware.JSONResponse(w, http.StatusCreated, buildProposalResponse(&detail, plainToken))
}

// List handles GET /proposals
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	items, err := h.store.ListProposals(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list proposals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListProposalsResponse{Items: items})
}

// Get handles GET /proposals/{id}
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	proposalID := r.PathValue("id")

	detail, err := h.store.GetProposalForOwner(r.Context(), proposalID, userID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}
	if err != nil {
		slog.Error("failed to get proposal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Unseal failure (seal key rotated, row tampered) degrades to an empty
	// token; the rest of the proposal still reads fine.
	plainToken, err := h.codec.Unseal(detail.Proposal.PublicTokenSealed)
	if err != nil {
		slog.Warn("failed to unseal public token", "proposal_id", proposalID)
		plainToken = ""
	}

	middleware.JSONResponse(w, http.StatusOK, buildProposalResponse(detail, plainToken))
}

// Close handles POST /proposals/{id}/close
func (h *ProposalHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	proposalID := r.PathValue("id")

	err := h.store.SetClosed(r.Context(), proposalID, userID, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}
	if err != nil {
		slog.Error("failed to close proposal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("proposal closed", "proposal_id", proposalID)
	w.WriteHeader(http.StatusNoContent)
}

// GetVotes handles GET /proposals/{id}/votes
func (h *ProposalHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	proposalID := r.PathValue("id")

	err := h.store.ProposalBelongsTo(r.Context(), proposalID, userID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
		return
	}
	if err != nil {
		slog.Error("failed to check proposal ownership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voters, err := h.store.ListVotersGrouped(r.Context(), proposalID)
	if err != nil {
		slog.Error("failed to list voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalVotesResponse{
		ProposalID: proposalID,
		Voters:     voters,
	})
}

func buildProposalResponse(detail *models.ProposalDetail, plainToken string) models.ProposalResponse {
	options := make([]models.TimeOptionResponse, 0, len(detail.TimeOptions))
	for _, opt := range detail.TimeOptions {
		options = append(options, models.TimeOptionResponse{
			ID:        opt.ID,
			StartAt:   opt.StartAt,
			EndAt:     opt.EndAt,
			VoteCount: opt.VoteCount,
		})
	}

	p := detail.Proposal
	return models.ProposalResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		ClosedAt:    p.ClosedAt,
		PublicToken: plainToken,
		TimeOptions: options,
	}
}
