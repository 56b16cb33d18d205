package token

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("harvest-secret")

	tokenStr, err := GenerateAccessToken(42, secret, time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyToken(tokenStr, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id, err := UserID(claims)
	if err != nil || id != 42 {
		t.Fatalf("expected user 42, got %d (%v)", id, err)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	secret := []byte("harvest-secret")

	expired, err := GenerateAccessToken(1, secret, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	foreign, err := GenerateAccessToken(1, []byte("other"), time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := map[string]string{
		"expired":   expired,
		"wrong key": foreign,
		"garbage":   "not-a-token",
		"empty":     "",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := VerifyToken(tok, secret); err == nil {
				t.Error("expected verification error")
			}
		})
	}
}

func TestUserIDRejectsBadSubject(t *testing.T) {
	for _, id := range []int{0, -3} {
		tokenStr, err := GenerateAccessToken(id, []byte("k"), time.Minute)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		claims, err := VerifyToken(tokenStr, []byte("k"))
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if _, err := UserID(claims); err == nil {
			t.Errorf("id %d should be rejected", id)
		}
	}
}
