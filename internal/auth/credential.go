package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotLoggedIn indicates an operation that needs a credential ran
// before login or after logout.
var ErrNotLoggedIn = errors.New("not logged in")

// Credential is the session credential handed out at login and torn down
// at logout. It replaces ambient shared state: every component that talks
// to the portal receives it explicitly. The token is treated as an opaque
// bearer value; the portal verifies it, we only read its expiry claim for
// friendlier messaging.
type Credential struct {
	Token     string
	StudentID string
	Name      string
	Role      string
	expiresAt time.Time
}

// NewCredential builds a credential from a login response token and
// account summary. A token without a readable exp claim is kept with a
// zero expiry, meaning "unknown, let the portal decide".
func NewCredential(token, studentID, name, role string) *Credential {
	c := &Credential{
		Token:     token,
		StudentID: studentID,
		Name:      name,
		Role:      role,
	}
	if exp, err := tokenExpiry(token); err == nil {
		c.expiresAt = exp
	}
	return c
}

// Valid reports whether the credential exists and has not expired
// as of now. A zero expiry is treated as valid.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.Token == "" {
		return false
	}
	if c.expiresAt.IsZero() {
		return true
	}
	return now.Before(c.expiresAt)
}

// IsAdmin reports whether this credential carries the admin role.
func (c *Credential) IsAdmin() bool {
	return c != nil && c.Role == "admin"
}

// Clear wipes the credential on logout so no screen can keep using it.
func (c *Credential) Clear() {
	if c == nil {
		return
	}
	c.Token = ""
	c.StudentID = ""
	c.Name = ""
	c.Role = ""
	c.expiresAt = time.Time{}
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification belongs to the portal; the client only uses the claim
// to warn before a request is doomed to a 401.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("no exp claim")
	}
	return exp.Time, nil
}
