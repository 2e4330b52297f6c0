package utils

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "68bd6ff6f80438824239b8a9", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UID != "68bd6ff6f80438824239b8a9" {
		t.Errorf("uid: got %q, want %q", claims.UID, "68bd6ff6f80438824239b8a9")
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email: got %q, want %q", claims.Email, "a@x.com")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	if _, err := GenerateToken("", "uid", "a@x.com", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestVerifyTokenFailsClosed(t *testing.T) {
	valid, err := GenerateToken(testSecret, "uid123", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	expired, err := GenerateToken(testSecret, "uid123", "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tampered := valid + "x"

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expired},
		{"tampered signature", tampered},
		{"wrong secret", valid + ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			secret := testSecret
			if tc.name == "wrong secret" {
				secret = "another-secret"
			}
			claims, err := VerifyToken(secret, tc.token)
			if err == nil {
				t.Fatal("expected verification to fail")
			}
			if claims != nil {
				t.Fatal("expected no claims on failure")
			}
		})
	}
}

func TestVerifyTokenUsesSubjectFallback(t *testing.T) {
	token, err := GenerateToken(testSecret, "subject-uid", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != "subject-uid" {
		t.Errorf("subject: got %q, want %q", claims.Subject, "subject-uid")
	}
}

func TestTokenIsThreeSegments(t *testing.T) {
	token, err := GenerateToken(testSecret, "uid", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if got := len(strings.Split(token, ".")); got != 3 {
		t.Errorf("segments: got %d, want 3", got)
	}
}
