package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InternalScope is the scope claim carried by service-to-service tokens.
const InternalScope = "internal"

// InternalClaims are the claims of a service-to-service token.
type InternalClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a user token. It is what the gateway hands out and
// what tests use to call the API.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateInternalJWT signs a token with scope=internal for calls to other services.
// It returns the signed token and its expiry.
func GenerateInternalJWT(secret, issuer, audience string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	tokenID, err := GenerateSecureRandomString(16)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := now.Add(ttl)
	claims := InternalClaims{
		Scope: InternalScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign internal token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a token string and validates its signature and standard claims.
// A non-empty issuer must match the token's iss claim.
// Errors from the jwt package are returned unwrapped so callers can match jwt.ErrTokenExpired.
func ParseAndValidateJWT(tokenString, secretKey, issuer string) (*jwt.RegisteredClaims, error) {
	var opts []jwt.ParserOption
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(secretKey), opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// ParseInternalJWT validates a service-to-service token for the given audience.
func ParseInternalJWT(tokenString, secretKey, issuer, audience string) (*InternalClaims, error) {
	claims := &InternalClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(secretKey),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.Scope != InternalScope {
		return nil, errors.New("token is not an internal service token")
	}
	return claims, nil
}

func hmacKey(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}
