package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	signed, expiresAt, err := GenerateToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("expiresAt should be in the future")
	}

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token should be valid")
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		t.Fatalf("get subject: %v", err)
	}
	if subject != "42" {
		t.Errorf("subject = %q, want 42", subject)
	}
}

func TestGenerateTokenWrongSecretRejected(t *testing.T) {
	signed, _, err := GenerateToken(1, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}
