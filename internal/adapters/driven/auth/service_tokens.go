package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// ServiceTokens mints and verifies the short-lived HS256 tokens that
// authenticate the calling framework against the persistence service's
// HTTP surface. These are service-to-service credentials, unrelated to
// the opaque session tokens the adapter stores.
type ServiceTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewServiceTokens creates a codec with the given shared secret
func NewServiceTokens(secret string, ttl time.Duration) *ServiceTokens {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ServiceTokens{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Mint creates a signed token identifying the calling service
func (t *ServiceTokens) Mint(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify validates a token and returns its subject
func (t *ServiceTokens) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
