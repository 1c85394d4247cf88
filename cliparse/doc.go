// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3441)
  - DatabaseURL: connection string or sqlite file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - TokenPepper: secret for public-token lookup hashing (required)
  - TokenSealKey: secret for public-token sealing (required)
  - JWTSecret: access token signing secret (required)
  - JWTTTLMinutes: access token lifetime (default: 60)
  - GoogleClientID: audience for Google sign-in (required)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	TOKEN_PEPPER     → --token-pepper
	TOKEN_SEAL_KEY   → --token-seal-key
	JWT_SECRET       → --jwt-secret
	JWT_TTL_MINUTES  → --jwt-ttl
	GOOGLE_CLIENT_ID → --google-client-id

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or any of the secrets is
missing, or if DATABASE_TYPE is not one of sqlite/postgres.
*/
package cliparse
