// Package token encodes, signs and verifies the compact HS256 tokens handed
// out on login.
//
// A token is base64url(header).base64url(payload).base64url(mac) with the
// padding stripped. The header is always {"alg":"HS256","typ":"JWT"}; the
// payload carries the subject (user id, username, role) plus iat/exp.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("token: malformed")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrExpired          = errors.New("token: expired")
	ErrEmptySecret      = errors.New("token: signing secret is empty")
)

// Subject is the identity a token is issued for.
type Subject struct {
	UserID   int
	Username string
	Role     string
}

// Claims is the token payload.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the subject the claims were issued for.
func (c *Claims) Identity() Subject {
	return Subject{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

// Codec signs and verifies tokens with a single process-wide secret.
// A Codec is safe for concurrent use.
type Codec struct {
	secret []byte

	// Leeway tolerates clock skew when checking exp.
	Leeway time.Duration
	// Now is the verification clock. Defaults to time.Now.
	Now func() time.Time
}

// NewCodec returns a codec signing with secret. The slice is copied.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Codec{secret: s, Now: time.Now}, nil
}

// Encode serializes claims and signs header.payload with HMAC-SHA256.
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of raw and returns its claims.
// Errors are one of ErrMalformed, ErrInvalidSignature or ErrExpired.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.Leeway),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return claims, nil
}
