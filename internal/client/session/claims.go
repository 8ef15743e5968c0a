package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the API puts in access tokens: the standard
// registered claims (sub, exp, jti) plus the numeric account id.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"id"`
}

// ExpiresIn returns the time left until exp, or false when the token
// carries no expiry.
func (c *Claims) ExpiresIn(now time.Time) (time.Duration, bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}

// ParseClaims decodes the claims of token without checking its signature.
// The result is for display only and must not be used for authorization.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	return claims, nil
}
