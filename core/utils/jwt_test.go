package utils

import (
	"campusflow/core/config"
	"campusflow/core/constants"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func setTestConfig(access time.Duration) {
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			AccessTTL:  access,
			RefreshTTL: 48 * time.Hour,
			ResetTTL:   15 * time.Minute,
		},
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(time.Hour)
	userID := uuid.New()

	token, exp, err := GenerateToken(userID, "a@b.co", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("ValidateAndParseToken: %v", err)
	}
	if claims.UserID != userID || claims.Email != "a@b.co" || claims.Scope != constants.ScopeTokenAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.RemainingTTL() <= 0 {
		t.Fatal("remaining ttl should be positive")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	setTestConfig(time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	claims := TokenClaims{
		UserID: uuid.New(),
		Email:  "a@b.co",
		Scope:  constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateAndParseToken(token); err != ErrTokenExpired {
		t.Fatalf("got %v, want ErrTokenExpired", err)
	}
}

func TestValidateTamperedToken(t *testing.T) {
	setTestConfig(time.Hour)
	token, _, _ := GenerateToken(uuid.New(), "a@b.co", constants.ScopeTokenAccess)

	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "other", AccessTTL: time.Hour}})
	if _, err := ValidateAndParseToken(token); err != ErrTokenInvalid {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestGenerateTokenPairScopes(t *testing.T) {
	setTestConfig(time.Hour)
	pair, err := GenerateTokenPair(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	refresh, err := ValidateAndParseToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.Scope != constants.ScopeTokenRefresh {
		t.Fatalf("refresh scope = %q", refresh.Scope)
	}
}
