package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken("a@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("NewSessionToken() returned empty string")
	}
}

func TestValidateSessionTokenValid(t *testing.T) {
	secret := "test-secret"
	email := "a@x.com"

	token, err := NewSessionToken(email, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	claims, err := ValidateSessionToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateSessionToken() unexpected error: %v", err)
	}
	if claims.Email != email {
		t.Errorf("ValidateSessionToken() Email = %q, want %q", claims.Email, email)
	}
}

func TestValidateSessionTokenInvalid(t *testing.T) {
	_, err := ValidateSessionToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ValidateSessionToken() expected error for invalid token")
	}
}

func TestValidateSessionTokenWrongSecret(t *testing.T) {
	token, err := NewSessionToken("a@x.com", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	_, err = ValidateSessionToken(token, "wrong-secret")
	if err == nil {
		t.Error("ValidateSessionToken() expected error for wrong secret")
	}
}

func TestValidateSessionTokenExpired(t *testing.T) {
	token, err := NewSessionToken("a@x.com", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken() unexpected error: %v", err)
	}

	_, err = ValidateSessionToken(token, "test-secret")
	if err == nil {
		t.Error("ValidateSessionToken() expected error for expired token")
	}
}

func TestValidateSessionTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: "a@x.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ValidateSessionToken(tokenString, secret)
	if err == nil {
		t.Error("ValidateSessionToken() expected error for wrong issuer")
	}
}
