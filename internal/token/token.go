// Package token issues and verifies the JWT access tokens returned by the
// login endpoint. Tokens are HMAC-signed and carry the user id as subject.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campusboard/internal/apperrors"
	"campusboard/internal/models"
)

// claims is the internal claims type used for JWT parsing.
type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager signs and verifies access tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. The now function may be nil, defaulting
// to time.Now; tests inject a fixed clock.
func NewManager(secret string, ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(user *models.User) (string, error) {
	issued := m.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
		Username: user.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id it names.
// Any parse or validation failure maps to Unauthenticated.
func (m *Manager) Verify(raw string) (int64, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUnauthenticated, "invalid access token", err)
	}

	id, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUnauthenticated, "malformed token subject", err)
	}
	return id, nil
}
