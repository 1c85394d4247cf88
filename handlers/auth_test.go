// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/meetsy/auth"
	"github.com/danielhkuo/meetsy/models"
	"github.com/danielhkuo/meetsy/store"
	"github.com/danielhkuo/meetsy/testutil"
)

// fakeVerifier returns a canned identity, or an error when identity is nil
type fakeVerifier struct {
	identity *auth.Identity
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (*auth.Identity, error) {
	if f.identity == nil {
		return nil, errors.New("token rejected")
	}
	return f.identity, nil
}

func TestGoogleLogin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	cfg := testutil.GetTestConfig()

	name := "Alice"
	verifier := &fakeVerifier{identity: &auth.Identity{
		Subject:     "google-sub-1",
		Email:       "alice@example.com",
		DisplayName: &name,
	}}
	handler := NewAuthHandler(st, cfg, verifier)

	login := func() models.LoginResponse {
		req := testutil.MakeRequest("POST", "/auth/google", models.GoogleLoginRequest{IDToken: "fake-id-token"}, nil)
		w := httptest.NewRecorder()
		handler.GoogleLogin(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	resp := login()
	if resp.AccessToken == "" {
		t.Fatal("Expected an access token")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("Unexpected user email: %s", resp.User.Email)
	}

	// The issued token must be accepted by our own parser
	claims, err := auth.ParseAccessToken(resp.AccessToken, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Issued token failed to parse: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("Token subject %s does not match user %s", claims.UserID, resp.User.ID)
	}

	// Signing in again maps to the same account
	again := login()
	if again.User.ID != resp.User.ID {
		t.Errorf("Expected stable user id across sign-ins, got %s then %s", resp.User.ID, again.User.ID)
	}
}

func TestGoogleLogin_Rejections(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	cfg := testutil.GetTestConfig()

	tests := []struct {
		name           string
		verifier       *fakeVerifier
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "missing idToken",
			verifier:       &fakeVerifier{identity: &auth.Identity{Subject: "s", Email: "e@example.com"}},
			body:           models.GoogleLoginRequest{IDToken: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "verifier rejects token",
			verifier:       &fakeVerifier{},
			body:           models.GoogleLoginRequest{IDToken: "bad-token"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(st, cfg, tt.verifier)
			req := testutil.MakeRequest("POST", "/auth/google", tt.body, nil)
			w := httptest.NewRecorder()

			handler.GoogleLogin(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
