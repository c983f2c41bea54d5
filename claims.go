package shopping

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the decoded view of a signed token
type AuthClaims interface {
	Subject() string
	UserID() string
	UserEmail() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claim set we sign: registered claims plus the
// minimal identity pair {uid, email}.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid,omitempty"`
	Email string `json:"email,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// UserEmail returns the email claim
func (c *JWTClaims) UserEmail() string {
	return c.Email
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// IdentityFromClaims strips a validated claim set down to the minimal
// identity. Anything beyond id and email is dropped.
func IdentityFromClaims(claims AuthClaims) Identity {
	if claims == nil {
		return nil
	}
	return authIdentity{
		id:    claims.UserID(),
		email: claims.UserEmail(),
	}
}
