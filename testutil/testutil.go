// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/meetsy/auth"
	"github.com/danielhkuo/meetsy/cliparse"
	"github.com/danielhkuo/meetsy/db"
	"github.com/danielhkuo/meetsy/models"
	"github.com/danielhkuo/meetsy/token"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
// A single connection keeps the in-memory database alive and shared across
// all queries in the test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3441,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		TokenPepper:    "test-pepper",
		TokenSealKey:   "test-seal-key",
		JWTSecret:      "test-jwt-secret",
		JWTTTLMinutes:  60,
		GoogleClientID: "test-client",
	}
}

// NewTestCodec builds a token codec from the test configuration
func NewTestCodec(t *testing.T) *token.Codec {
	t.Helper()

	cfg := GetTestConfig()
	codec, err := token.NewCodec(cfg.TokenPepper, cfg.TokenSealKey)
	if err != nil {
		t.Fatalf("Failed to create token codec: %v", err)
	}
	return codec
}

// CreateTestUser inserts an organizer account and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, email string) string {
	t.Helper()

	userID := uuid.NewString()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO users (id, google_subject, email, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, "google-"+userID, email, now, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestProposal inserts a proposal for an organizer and returns the
// proposal ID and the plaintext public token.
// status should be "open" or "closed".
func CreateTestProposal(t *testing.T, conn *sql.DB, codec *token.Codec, organizerID, status string) (proposalID, plainToken string) {
	t.Helper()

	proposalID = uuid.NewString()
	plainToken, err := codec.Generate()
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	sealed, err := codec.Seal(plainToken)
	if err != nil {
		t.Fatalf("Failed to seal test token: %v", err)
	}

	now := time.Now().UTC()
	var closedAt *time.Time
	if status == models.StatusClosed {
		closedAt = &now
	}

	_, err = conn.Exec(`
		INSERT INTO proposal (id, organizer_id, title, description, status, public_token_hash, public_token_sealed, created_at, updated_at, closed_at)
		VALUES ($1, $2, 'Team offsite', 'Pick a slot', $3, $4, $5, $6, $7, $8)
	`, proposalID, organizerID, status, codec.Hash(plainToken), sealed, now, now, closedAt)
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	return proposalID, plainToken
}

// AddTestOption adds a time option to a proposal and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, proposalID string, startAt time.Time, endAt *time.Time) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO time_option (id, proposal_id, start_at, end_at)
		VALUES ($1, $2, $3, $4)
	`, optionID, proposalID, startAt.UTC(), endAt)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// AddTestVote records one voter's vote for a single option
func AddTestVote(t *testing.T, conn *sql.DB, proposalID, optionID, voterID string, voterName *string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, proposal_id, time_option_id, voter_id, voter_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), proposalID, optionID, voterID, voterName, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// SignTestToken issues an access token for a user with the test secret
func SignTestToken(t *testing.T, userID string) string {
	t.Helper()

	cfg := GetTestConfig()
	signed, _, err := auth.SignAccessToken(userID, cfg.JWTSecret, time.Hour, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
