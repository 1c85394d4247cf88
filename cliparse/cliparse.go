package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	TokenPepper    string
	TokenSealKey   string
	JWTSecret      string
	JWTTTLMinutes  int
	GoogleClientID string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("meetsy", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenPepper, "token-pepper", "", "Public token hash pepper (prefer env)")
	fs.StringVar(&cfg.TokenSealKey, "token-seal-key", "", "Public token seal key (prefer env)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Access token signing secret (prefer env)")
	fs.IntVar(&cfg.JWTTTLMinutes, "jwt-ttl", 0, "Access token lifetime in minutes")
	fs.StringVar(&cfg.GoogleClientID, "google-client-id", "", "Google OAuth client ID (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3441 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	if cfg.JWTTTLMinutes == 0 {
		if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil || ttl <= 0 {
				return Config{}, errors.New("invalid JWT_TTL_MINUTES env variable")
			}
			cfg.JWTTTLMinutes = ttl
		} else {
			cfg.JWTTTLMinutes = 60
		}
	}

	// Secrets - MUST be provided
	if cfg.TokenPepper == "" {
		cfg.TokenPepper = os.Getenv("TOKEN_PEPPER")
	}
	if cfg.TokenPepper == "" {
		return Config{}, errors.New("TOKEN_PEPPER required")
	}

	if cfg.TokenSealKey == "" {
		cfg.TokenSealKey = os.Getenv("TOKEN_SEAL_KEY")
	}
	if cfg.TokenSealKey == "" {
		return Config{}, errors.New("TOKEN_SEAL_KEY required")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.GoogleClientID == "" {
		cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.GoogleClientID == "" {
		return Config{}, errors.New("GOOGLE_CLIENT_ID required")
	}

	return cfg, nil
}
