package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = time.Hour

// Issuer builds fresh tokens for authenticated users. It keeps no state
// besides its codec and configuration.
type Issuer struct {
	codec *Codec
	ttl   time.Duration

	// Now is the issuance clock. Defaults to time.Now.
	Now func() time.Time
}

// NewIssuer returns an issuer producing tokens valid for ttl
// (DefaultTTL when ttl <= 0).
func NewIssuer(codec *Codec, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{codec: codec, ttl: ttl, Now: time.Now}
}

// TTL returns the validity window of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for s and returns it with its expiry instant.
func (i *Issuer) Issue(s Subject) (string, time.Time, error) {
	now := i.Now
	if now == nil {
		now = time.Now
	}
	issuedAt := jwt.NewNumericDate(now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(i.ttl))

	signed, err := i.codec.Encode(Claims{
		UserID:   s.UserID,
		Username: s.Username,
		Role:     s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.Time, nil
}
