package utils

import (
	"errors"
	"time" // Time for token expiration

	"ledger_system/internal/domain" // Domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 24 * time.Hour

// JWT Claims
type Claims struct {
	Account              domain.AccountID `json:"account"` // Caller identity
	jwt.RegisteredClaims                  // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given account
func GenerateJWT(account domain.AccountID, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		Account: account,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(account),                       // Subject mirrors the account
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Account == "" {
		return nil, errors.New("token has no account")
	}
	return claims, nil
}
