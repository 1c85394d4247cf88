// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meetsy/middleware"
	"github.com/danielhkuo/meetsy/models"
	"github.com/danielhkuo/meetsy/store"
	"github.com/danielhkuo/meetsy/token"
)

type PublicHandler struct {
	store *store.Store
	codec *token.Codec
}

func NewPublicHandler(st *store.Store, codec *token.Codec) *PublicHandler {
	return &PublicHandler{store: st, codec: codec}
}

// GetPoll handles GET /public/polls/{token}
// Readable while open and after close, so the final tally stays visible.
func (h *PublicHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	plainToken := r.PathValue("token")
	if strings.TrimSpace(plainToken) == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	detail, err := h.store.GetProposalByTokenHash(r.Context(), h.codec.Hash(plainToken))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	maxVotes := 0
	for _, opt := range detail.TimeOptions {
		if opt.VoteCount > maxVotes {
			maxVotes = opt.VoteCount
		}
	}

	options := make([]models.PublicTimeOption, 0, len(detail.TimeOptions))
	for _, opt := range detail.TimeOptions {
		options = append(options, models.PublicTimeOption{
			ID:        opt.ID,
			StartAt:   opt.StartAt,
			EndAt:     opt.EndAt,
			VoteCount: opt.VoteCount,
			// With zero votes everywhere no option leads; an all-leading
			// tie at zero would be misleading
			IsLeading: maxVotes > 0 && opt.VoteCount == maxVotes,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicPollResponse{
		ProposalID:  detail.Proposal.ID,
		Title:       detail.Proposal.Title,
		Description: detail.Proposal.Description,
		Status:      detail.Proposal.Status,
		TimeOptions: options,
	})
}

// SubmitVotes handles POST /public/polls/{token}/votes
//
// The voterId is an idempotency key for the ballot, not a security
// principal: whoever holds it can rewrite that ballot, and nothing
// stronger is promised.
func (h *PublicHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	plainToken := r.PathValue("token")
	if strings.TrimSpace(plainToken) == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.TimeOptionIDs == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "timeOptionIds is required")
		return
	}
	if len(req.TimeOptionIDs) > models.MaxTimeOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "too many timeOptionIds")
		return
	}
	submitted := make(map[string]bool, len(req.TimeOptionIDs))
	for _, id := range req.TimeOptionIDs {
		if submitted[id] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate timeOptionIds")
			return
		}
		submitted[id] = true
	}

	var voterName *string
	if req.VoterName != nil {
		n := strings.TrimSpace(*req.VoterName)
		if len(n) > models.MaxVoterNameLength {
			middleware.ErrorResponse(w, http.StatusBadRequest, "voterName must be at most 200 characters")
			return
		}
		if n != "" {
			voterName = &n
		}
	}

	// First-time voters get a fresh id; the all-zero UUID counts as absent.
	// A malformed id is rejected rather than silently treated as a new
	// identity, so a client typo cannot fork a voter's ballot.
	var voterID string
	if req.VoterID == nil || strings.TrimSpace(*req.VoterID) == "" {
		voterID = uuid.NewString()
	} else {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.VoterID))
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "voterId must be a UUID")
			return
		}
		if parsed == uuid.Nil {
			voterID = uuid.NewString()
		} else {
			voterID = parsed.String()
		}
	}

	detail, err := h.store.GetProposalByTokenHash(r.Context(), h.codec.Hash(plainToken))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to get poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Closed polls reject votes outright rather than silently ignoring them
	if detail.Proposal.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is closed")
		return
	}

	validOptions := make(map[string]bool, len(detail.TimeOptions))
	for _, opt := range detail.TimeOptions {
		validOptions[opt.ID] = true
	}
	for _, id := range req.TimeOptionIDs {
		if !validOptions[id] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown timeOptionId: "+id)
			return
		}
	}

	err = h.store.ReplaceVotes(r.Context(), detail.Proposal.ID, voterID, voterName, req.TimeOptionIDs, time.Now().UTC())
	if err != nil {
		slog.Error("failed to replace votes", "error", err, "proposal_id", detail.Proposal.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit votes")
		return
	}

	slog.Info("votes submitted", "proposal_id", detail.Proposal.ID, "options", len(req.TimeOptionIDs))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVotesResponse{VoterID: voterID})
}
