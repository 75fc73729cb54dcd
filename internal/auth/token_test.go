package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func TestTokens_IssueVerify(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)

	signed, err := tokens.Issue("budi@kantorku.id")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	email, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if email != "budi@kantorku.id" {
		t.Errorf("Verify() subject = %q, want %q", email, "budi@kantorku.id")
	}
}

func TestTokens_VerifyMissing(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)

	if _, err := tokens.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Errorf("Verify(\"\") error = %v, want ErrTokenMissing", err)
	}
}

func TestTokens_VerifyGarbage(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)

	for _, tok := range []string{"garbage", "a.b.c", "header.payload"} {
		if _, err := tokens.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestTokens_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokens(testSecret, time.Hour)
	verifier := NewTokens("different-secret-0123456789abcdef012345", time.Hour)

	signed, err := issuer.Issue("budi@kantorku.id")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() with wrong secret error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokens_VerifyTampered(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)

	signed, err := tokens.Issue("budi@kantorku.id")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tokens.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify() of tampered token error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokens_VerifyExpired(t *testing.T) {
	tokens := NewTokens(testSecret, -time.Minute)

	signed, err := tokens.Issue("budi@kantorku.id")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = tokens.Verify(signed)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() of expired token error = %v, want ErrTokenExpired", err)
	}
	// Expiry must never be reported as the generic invalid case
	if errors.Is(err, ErrTokenInvalid) {
		t.Error("expired token must not satisfy ErrTokenInvalid")
	}
}
