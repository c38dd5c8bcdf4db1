package utils

import (
	"campusflow/core/config"
	"campusflow/core/constants"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = stdErrors.New("token expired")
	ErrTokenInvalid = stdErrors.New("token invalid")
)

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func tokenSettings(scope string) (string, time.Duration, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return "", 0, fmt.Errorf("jwt secret is not configured")
	}
	ttl := cfg.JWT.AccessTTL
	switch scope {
	case constants.ScopeTokenRefresh:
		ttl = cfg.JWT.RefreshTTL
	case constants.ScopeTokenResetPassword:
		ttl = cfg.JWT.ResetTTL
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return cfg.JWT.Secret, ttl, nil
}

func GenerateToken(userID uuid.UUID, email, scope string) (string, time.Time, error) {
	secret, ttl, err := tokenSettings(scope)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateTokenPair issues an access and a refresh token for the user.
func GenerateTokenPair(userID uuid.UUID, email string) (*TokenPair, error) {
	access, exp, err := GenerateToken(userID, email, constants.ScopeTokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := GenerateToken(userID, email, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, _, err := tokenSettings(constants.ScopeTokenAccess)
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if stdErrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// RemainingTTL is how long the token stays valid, used to size blacklist entries.
func (c *TokenClaims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}
