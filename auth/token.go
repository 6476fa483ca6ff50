package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
	"github.com/juju/errors"
)

// TokenIssuer signs the login token handed out to customers. Nothing on the
// server verifies it; the storefront client keeps it alongside the profile.
type TokenIssuer struct {
	secret []byte
	clock  clock.Clock
	ttl    time.Duration
}

func NewTokenIssuer(secret string, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		clock:  clk,
		ttl:    24 * time.Hour,
	}
}

// Issue generates a JWT for a user
func (i *TokenIssuer) Issue(email, name string) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"email": email,
		"name":  name,
		"role":  "user",
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.Annotate(err, "signing token")
	}
	return signed, nil
}
