package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "campreserv/pkg/errors"
)

type contextKey string

const sessionKey contextKey = "staff_session"

// Session is the authenticated staff identity attached to every request.
// The override-approval check reads CanApproveOverrides from here rather
// than from any global state, so it can be exercised with fixture
// identities in tests.
type Session struct {
	StaffID             string
	Name                string
	Role                string
	CampgroundID        string
	CanApproveOverrides bool
}

type claims struct {
	Name                string `json:"name"`
	Role                string `json:"role"`
	CampgroundID        string `json:"campground_id"`
	CanApproveOverrides bool   `json:"can_approve_overrides"`
	jwt.RegisteredClaims
}

// Parse verifies a bearer token and extracts the staff session.
func Parse(tokenString, secret string) (*Session, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, apperrors.Unauthorized("Missing session token")
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("Invalid session token")
	}

	if c.Subject == "" {
		return nil, apperrors.Unauthorized("Session token has no subject")
	}

	return &Session{
		StaffID:             c.Subject,
		Name:                c.Name,
		Role:                c.Role,
		CampgroundID:        c.CampgroundID,
		CanApproveOverrides: c.CanApproveOverrides,
	}, nil
}

// Issue signs a session token. Used by tests and local tooling; production
// tokens come from the auth service.
func Issue(s *Session, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:                s.Name,
		Role:                s.Role,
		CampgroundID:        s.CampgroundID,
		CanApproveOverrides: s.CanApproveOverrides,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: s.StaffID,
		},
	})
	return token.SignedString([]byte(secret))
}

// WithContext attaches the session to a context.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session attached to the context, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
