package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestMintAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret")
	userID := uuid.New()

	raw, err := tokens.Mint(userID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if raw == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != userID {
		t.Errorf("verified id = %s, want %s", got, userID)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a").Mint(uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := NewTokens("secret-b").Verify(raw); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret")

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := tokens.Verify(raw); err != ErrInvalidToken {
			t.Errorf("Verify(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}
