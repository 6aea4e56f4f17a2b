// Package auth provides bearer-token issuance and verification.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/lojadev/pedidos/pkg/config"
)

// Issuer signs a token carrying the user's store identifier as its subject.
type Issuer interface {
	Issue(userID int64) (string, error)
}

// Verifier checks a token string and returns the parsed token on success.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// TokenManager issues and verifies HS256-signed JWTs with a shared secret.
// Tokens are time-bound; expiration is enforced on verification.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

var _ Issuer = (*TokenManager)(nil)
var _ Verifier = (*TokenManager)(nil)

// NewTokenManager creates a new TokenManager from the token configuration.
func NewTokenManager(cfg config.TokenConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
	}
}

// Issue builds and signs a token whose subject claim is the user's ID.
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(m.issuer).
		Subject(strconv.FormatInt(userID, 10)).
		IssuedAt(now).
		Expiration(now.Add(m.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify parses the token string, checks the signature against the shared
// secret and validates the standard claims (expiration, issuer).
func (m *TokenManager) Verify(_ context.Context, tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.secret),
		// Standard validation checks - expiration, not before, etc.
		jwt.WithValidate(true),
		// Validate the issuer
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return token, nil
}
