// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"strings"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec("test-pepper", "test-seal-key")
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return c
}

func TestNewCodec_RequiresSecrets(t *testing.T) {
	if _, err := NewCodec("", "seal"); err == nil {
		t.Error("expected error for empty pepper")
	}
	if _, err := NewCodec("pepper", ""); err == nil {
		t.Error("expected error for empty seal key")
	}
}

func TestGenerate(t *testing.T) {
	c := newTestCodec(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := c.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		// 32 bytes → 43 base64 chars without padding
		if len(tok) != 43 {
			t.Errorf("expected 43-char token, got %d: %q", len(tok), tok)
		}
		if strings.ContainsAny(tok, "+/=") {
			t.Errorf("token is not URL-safe: %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %q", tok)
		}
		seen[tok] = true
	}
}

func TestHash_Deterministic(t *testing.T) {
	c := newTestCodec(t)

	tok, _ := c.Generate()
	if c.Hash(tok) != c.Hash(tok) {
		t.Error("same token should hash identically")
	}

	other, _ := c.Generate()
	if c.Hash(tok) == c.Hash(other) {
		t.Error("different tokens should not collide")
	}

	// 32-byte HMAC-SHA256 → 64 hex chars
	if len(c.Hash(tok)) != 64 {
		t.Errorf("expected 64-char hash, got %d", len(c.Hash(tok)))
	}
}

func TestHash_DependsOnPepper(t *testing.T) {
	c1 := newTestCodec(t)
	c2, _ := NewCodec("other-pepper", "test-seal-key")

	if c1.Hash("same-token") == c2.Hash("same-token") {
		t.Error("hash should depend on the pepper")
	}
}

func TestSealUnseal_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tok, _ := c.Generate()
	sealed, err := c.Seal(tok)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if sealed == tok {
		t.Error("sealed form should differ from plaintext")
	}

	got, err := c.Unseal(sealed)
	if err != nil {
		t.Fatalf("Unseal failed: %v", err)
	}
	if got != tok {
		t.Errorf("round trip mismatch: got %q, want %q", got, tok)
	}
}

func TestUnseal_FailsClosed(t *testing.T) {
	c := newTestCodec(t)

	tok, _ := c.Generate()
	sealed, _ := c.Seal(tok)

	tests := []struct {
		name   string
		sealed string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"truncated", sealed[:8]},
		{"tampered", sealed[:len(sealed)-2] + "AA"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Unseal(tt.sealed); err != ErrUnsealFailed {
				t.Errorf("expected ErrUnsealFailed, got %v", err)
			}
		})
	}
}

func TestUnseal_WrongKey(t *testing.T) {
	c1 := newTestCodec(t)
	c2, _ := NewCodec("test-pepper", "rotated-seal-key")

	tok, _ := c1.Generate()
	sealed, _ := c1.Seal(tok)

	if _, err := c2.Unseal(sealed); err != ErrUnsealFailed {
		t.Errorf("expected ErrUnsealFailed after key rotation, got %v", err)
	}
}
