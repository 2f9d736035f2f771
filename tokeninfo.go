package allauth

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo holds the registered claims peeked out of an access token.
// The claims are read without signature verification, they are only good
// for client-side bookkeeping like scheduling a refresh before expiry.
type TokenInfo struct {
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token is past its expiry at the given time.
// Tokens without an exp claim never expire.
func (t TokenInfo) Expired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return now.After(*t.ExpiresAt)
}

// UnverifiedTokenInfo decodes the claims of a JWT access token without
// verifying its signature.
func UnverifiedTokenInfo(tokenString string) (*TokenInfo, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse access token")
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time
		info.IssuedAt = &t
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		info.ExpiresAt = &t
	}
	return info, nil
}
