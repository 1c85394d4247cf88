// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func setRequiredEnv() {
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("TOKEN_PEPPER", "test-pepper")
	os.Setenv("TOKEN_SEAL_KEY", "test-seal")
	os.Setenv("JWT_SECRET", "test-jwt")
	os.Setenv("GOOGLE_CLIENT_ID", "test-client")
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	setRequiredEnv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.JWTTTLMinutes != 60 {
		t.Errorf("expected default JWT TTL 60, got %d", cfg.JWTTTLMinutes)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	setRequiredEnv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Clearenv()
	os.Setenv("DATABASE_URL", "file:test.db")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when secrets are missing")
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	setRequiredEnv()
	os.Setenv("DATABASE_TYPE", "mongo")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
