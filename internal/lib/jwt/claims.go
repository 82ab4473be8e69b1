package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var timeFunc = time.Now

// Claims identifies either the administrator or a single user. Only NewAdminClaims,
// NewUserClaims and Verify produce a Claims value.
type Claims struct {
	subject   string
	userID    int64
	hasUserID bool
	isAdmin   bool
	expiresAt int64
}

func NewAdminClaims(username string, validityHours int) Claims {
	return Claims{
		subject:   username,
		isAdmin:   true,
		expiresAt: expiry(validityHours),
	}
}

func NewUserClaims(username string, userID int64, validityHours int) Claims {
	return Claims{
		subject:   username,
		userID:    userID,
		hasUserID: true,
		expiresAt: expiry(validityHours),
	}
}

func expiry(validityHours int) int64 {
	return timeFunc().Add(time.Duration(validityHours) * time.Hour).Unix()
}

func (c Claims) Subject() string {
	return c.subject
}

// UserID reports the user id; ok is false for administrator claims.
func (c Claims) UserID() (id int64, ok bool) {
	return c.userID, c.hasUserID
}

func (c Claims) IsAdmin() bool {
	return c.isAdmin
}

func (c Claims) ExpiresAt() time.Time {
	return time.Unix(c.expiresAt, 0)
}

// payload is the signed wire shape: sub, exp, user_id (nullable), is_admin.
type payload struct {
	jwt.RegisteredClaims
	UserID  *int64 `json:"user_id"`
	IsAdmin *bool  `json:"is_admin"`
}

func (c Claims) payload() *payload {
	p := &payload{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.subject,
			ExpiresAt: jwt.NewNumericDate(time.Unix(c.expiresAt, 0)),
		},
		IsAdmin: &c.isAdmin,
	}
	if c.hasUserID {
		id := c.userID
		p.UserID = &id
	}

	return p
}

func (p *payload) claims() Claims {
	c := Claims{
		subject:   p.Subject,
		isAdmin:   *p.IsAdmin,
		expiresAt: p.ExpiresAt.Unix(),
	}
	if p.UserID != nil {
		c.userID = *p.UserID
		c.hasUserID = true
	}

	return c
}
