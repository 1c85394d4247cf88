// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/meetsy/models"
)

var (
	// ErrNotFound covers both "row absent" and "row owned by someone else";
	// callers get no way to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation (token hash collision or
	// duplicate time option).
	ErrConflict = errors.New("conflict")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation detects a uniqueness-constraint failure on either
// supported backend.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

// UpsertUser finds the organizer for a Google subject, creating the record
// on first sign-in and refreshing profile fields on every later one.
func (s *Store) UpsertUser(ctx context.Context, subject, email string, displayName, pictureURL *string, now time.Time) (models.User, error) {
	var u models.User
	var dn, pic sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, google_subject, email, display_name, picture_url, created_at, last_login_at
		FROM users
		WHERE google_subject = $1
	`, subject).Scan(&u.ID, &u.GoogleSubject, &u.Email, &dn, &pic, &u.CreatedAt, &u.LastLoginAt)

	if err == sql.ErrNoRows {
		u = models.User{
			ID:            uuid.NewString(),
			GoogleSubject: subject,
			Email:         email,
			DisplayName:   displayName,
			PictureURL:    pictureURL,
			CreatedAt:     now,
			LastLoginAt:   now,
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO users (id, google_subject, email, display_name, picture_url, created_at, last_login_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, u.ID, u.GoogleSubject, u.Email, nullString(displayName), nullString(pictureURL), now, now)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to insert user: %w", err)
		}
		return u, nil
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.Email = email
	u.DisplayName = displayName
	u.PictureURL = pictureURL
	u.LastLoginAt = now
	_, err = s.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, display_name = $2, picture_url = $3, last_login_at = $4
		WHERE id = $5
	`, email, nullString(displayName), nullString(pictureURL), now, u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// CreateProposal inserts a proposal and its time options in one transaction.
// Returns ErrConflict on a public-token-hash collision or a duplicate
// (start, end) pair within the option set.
func (s *Store) CreateProposal(ctx context.Context, p models.Proposal, options []models.TimeOption) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var closedAt sql.NullTime
	if p.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *p.ClosedAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO proposal (id, organizer_id, title, description, status,
			public_token_hash, public_token_sealed, created_at, updated_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.OrganizerID, p.Title, nullString(p.Description), p.Status,
		p.PublicTokenHash, p.PublicTokenSealed, p.CreatedAt, p.UpdatedAt, closedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert proposal: %w", err)
	}

	for _, opt := range options {
		var endAt sql.NullTime
		if opt.EndAt != nil {
			endAt = sql.NullTime{Time: *opt.EndAt, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO time_option (id, proposal_id, start_at, end_at)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, p.ID, opt.StartAt, endAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("failed to insert time option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit proposal: %w", err)
	}
	return nil
}

// ListProposals returns the organizer's proposals, newest first.
func (s *Store) ListProposals(ctx context.Context, ownerID string) ([]models.ProposalSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, created_at, updated_at, closed_at
		FROM proposal
		WHERE organizer_id = $1
		ORDER BY created_at DESC, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	items := []models.ProposalSummary{}
	for rows.Next() {
		var item models.ProposalSummary
		var closedAt sql.NullTime
		if err := rows.Scan(&item.ID, &item.Title, &item.Status, &item.CreatedAt, &item.UpdatedAt, &closedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		item.CreatedAt = item.CreatedAt.UTC()
		item.UpdatedAt = item.UpdatedAt.UTC()
		item.ClosedAt = timePtr(closedAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetProposalForOwner loads a proposal with its options and live vote
// counts, scoped to the owning organizer. A proposal that exists but
// belongs to someone else is ErrNotFound, same as one that doesn't exist.
func (s *Store) GetProposalForOwner(ctx context.Context, id, ownerID string) (*models.ProposalDetail, error) {
	return s.getProposal(ctx, "WHERE id = $1 AND organizer_id = $2", id, ownerID)
}

// GetProposalByTokenHash loads a proposal by its public-token lookup hash.
// No owner check: holding the token is the credential.
func (s *Store) GetProposalByTokenHash(ctx context.Context, tokenHash string) (*models.ProposalDetail, error) {
	return s.getProposal(ctx, "WHERE public_token_hash = $1", tokenHash)
}

func (s *Store) getProposal(ctx context.Context, where string, args ...any) (*models.ProposalDetail, error) {
	var p models.Proposal
	var description sql.NullString
	var closedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, organizer_id, title, description, status,
			public_token_hash, public_token_sealed, created_at, updated_at, closed_at
		FROM proposal `+where,
		args...,
	).Scan(&p.ID, &p.OrganizerID, &p.Title, &description, &p.Status,
		&p.PublicTokenHash, &p.PublicTokenSealed, &p.CreatedAt, &p.UpdatedAt, &closedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query proposal: %w", err)
	}
	p.Description = stringPtr(description)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.ClosedAt = timePtr(closedAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.start_at, o.end_at, COUNT(v.id)
		FROM time_option o
		LEFT JOIN vote v ON v.time_option_id = o.id
		WHERE o.proposal_id = $1
		GROUP BY o.id, o.start_at, o.end_at
		ORDER BY o.start_at, o.end_at, o.id
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time options: %w", err)
	}
	defer rows.Close()

	options := []models.TimeOption{}
	for rows.Next() {
		opt := models.TimeOption{ProposalID: p.ID}
		var endAt sql.NullTime
		if err := rows.Scan(&opt.ID, &opt.StartAt, &endAt, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan time option: %w", err)
		}
		opt.StartAt = opt.StartAt.UTC()
		opt.EndAt = timePtr(endAt)
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.ProposalDetail{Proposal: p, TimeOptions: options}, nil
}

// ProposalBelongsTo reports ErrNotFound unless the proposal exists and is
// owned by ownerID.
func (s *Store) ProposalBelongsTo(ctx context.Context, id, ownerID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM proposal WHERE id = $1 AND organizer_id = $2
	`, id, ownerID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query proposal ownership: %w", err)
	}
	return nil
}

// SetClosed moves a proposal to closed. Idempotent: closing an already
// closed proposal succeeds without touching closed_at.
func (s *Store) SetClosed(ctx context.Context, id, ownerID string, closedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM proposal WHERE id = $1 AND organizer_id = $2
	`, id, ownerID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query proposal: %w", err)
	}

	if status == models.StatusClosed {
		return tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE proposal SET status = $1, closed_at = $2, updated_at = $3 WHERE id = $4
	`, models.StatusClosed, closedAt, closedAt, id)
	if err != nil {
		return fmt.Errorf("failed to close proposal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit close: %w", err)
	}
	return nil
}
