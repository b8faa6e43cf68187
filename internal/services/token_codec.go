package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// TokenLifetime is how long an issued session token stays valid.
const TokenLifetime = 2 * time.Hour

// TokenCodec issues and verifies HS256 session tokens carrying a user ID.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// NewTokenCodec creates a TokenCodec. An empty secret is rejected.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	return &TokenCodec{
		secret:   []byte(secret),
		lifetime: TokenLifetime,
		now:      time.Now,
		parser: &jwt.Parser{
			ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
			// expiry is checked against c.now after the signature is verified
			SkipClaimsValidation: true,
		},
	}, nil
}

// WithClock returns a copy of c that reads the current time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *c
	clone.now = now
	return &clone
}

// Issue signs a token for userID and returns it with its expiry.
func (c *TokenCodec) Issue(userID uuid.UUID) (string, time.Time, error) {
	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID.String(),
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded user ID. Errors are ErrTokenMalformed, ErrTokenInvalidSignature
// or ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.StandardClaims{}
	_, err := c.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0 {
			return uuid.Nil, ErrTokenInvalidSignature
		}
		return uuid.Nil, ErrTokenMalformed
	}

	if claims.ExpiresAt == 0 || c.now().Unix() >= claims.ExpiresAt {
		return uuid.Nil, ErrTokenExpired
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return userID, nil
}
