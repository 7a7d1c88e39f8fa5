package utils

import (
	"errors"
	"time"

	"clinic/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "clinic-api"

// TokenConfig carries the secrets and lifetimes used to sign tokens.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// GenerateTokens signs an access token and a refresh token for the given user claims.
// Each token gets its own id so it can be revoked on its own.
func GenerateTokens(cfg TokenConfig, claims *models.UserClaims) (*TokenPair, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("JWT secrets not configured")
	}

	now := time.Now()
	pair := &TokenPair{
		AccessExpiresAt:  now.Add(cfg.AccessTTL),
		RefreshExpiresAt: now.Add(cfg.RefreshTTL),
	}

	accessClaims := *claims
	accessClaims.RegisteredClaims = registered(claims.UserID, now, pair.AccessExpiresAt)
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		return nil, err
	}

	// Refresh tokens carry identity only; permissions are re-derived on refresh.
	refreshClaims := models.UserClaims{
		RegisteredClaims: registered(claims.UserID, now, pair.RefreshExpiresAt),
		UserID:           claims.UserID,
		Email:            claims.Email,
		Role:             claims.Role,
		ClinicID:         claims.ClinicID,
		TokenVersion:     claims.TokenVersion,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(cfg.RefreshSecret))
	if err != nil {
		return nil, err
	}

	pair.AccessToken = accessToken
	pair.RefreshToken = refreshToken
	return pair, nil
}

func registered(userID uuid.UUID, now, expires time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   userID.String(),
	}
}

// ParseToken parses and validates a JWT token string against secret.
// It returns the token if valid, or an error if something is wrong.
func ParseToken(tokenStr, secret string) (*jwt.Token, *models.UserClaims, error) {
	if secret == "" {
		return nil, nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}

// RemainingTTL is how long the token stays valid, zero once expired.
func RemainingTTL(claims *models.UserClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 0 {
		return 0
	}
	return ttl
}
