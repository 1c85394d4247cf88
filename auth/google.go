// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is what the identity provider asserts about a signed-in user.
// Subject is the stable identifier; everything else is profile data that
// may change between sign-ins.
type Identity struct {
	Subject     string
	Email       string
	DisplayName *string
	PictureURL  *string
}

// IDTokenVerifier validates a raw ID token from the sign-in flow.
// Handlers depend on this interface so tests can substitute a fake.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against the configured
// OAuth client id.
type GoogleVerifier struct {
	validator *idtoken.Validator
	clientID  string
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id required")
	}
	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create google id token validator: %w", err)
	}
	return &GoogleVerifier{validator: validator, clientID: clientID}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, raw string) (*Identity, error) {
	payload, err := g.validator.Validate(ctx, raw, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if payload.Subject == "" || email == "" {
		return nil, errors.New("google token missing required claims")
	}

	identity := &Identity{Subject: payload.Subject, Email: email}
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		identity.DisplayName = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		identity.PictureURL = &picture
	}
	return identity, nil
}
