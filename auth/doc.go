// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides organizer access tokens and sign-in verification.

# Access Tokens

Organizers authenticate with short-lived HS256 JWTs:

	signed, expires, err := auth.SignAccessToken(userID, secret, ttl, now)
	claims, err := auth.ParseAccessToken(signed, secret)

The token carries the internal organizer id in the "uid" claim. Parsing
rejects anything expired, tampered with, or signed under a different
method or secret.

# Google Sign-In

The sign-in endpoint receives a Google-issued ID token and verifies it
through the IDTokenVerifier interface:

	verifier, err := auth.NewGoogleVerifier(ctx, clientID)
	identity, err := verifier.Verify(ctx, rawIDToken)

Verify enforces the configured client id as audience and requires the
subject and email claims. The interface exists so handler tests can plug
in a fake verifier instead of calling Google.
*/
package auth
