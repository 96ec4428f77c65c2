package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core/classroom"
)

var ErrMalformedToken = errors.New("malformed token")

// Claims represents the authorization claims transmitted via the API JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64    `json:"oriat,omitempty"`
	Username     string   `json:"username,omitempty"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	IsStudent    bool     `json:"is_student,omitempty"`
	IsTeacher    bool     `json:"is_teacher,omitempty"`
	IsAdmin      bool     `json:"is_admin,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

// ParseClaims decodes the token claims without verifying the signature:
// the signing key belongs to the server, which remains the authority (checkTokenUrl).
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(ErrMalformedToken, err.Error())
	}
	return claims, nil
}

// Expired reports whether the token expired at now. Tokens without expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.VerifyExpiresAt(now.Unix(), false)
}

// Profile returns the profile the claims describe.
func (c *Claims) Profile() classroom.Profile {
	return classroom.Profile{
		Username: c.Username,
		Name:     c.Name,
		Email:    c.Email,
	}
}
