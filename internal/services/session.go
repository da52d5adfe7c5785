package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionIssuer is the iss claim of every session token
	SessionIssuer = "goalledger"
)

// ErrInvalidSession is returned for tokens that fail signature, expiry, claim or revocation checks.
var ErrInvalidSession = errors.New("invalid session token")

// Session is a validated token.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
}

// SessionManager issues and validates signed session tokens. The subject claim
// carries the user id; logged out tokens are kept in the revocation list until
// they would have expired.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationList
	Now     func() time.Time
}

func NewSessionManager(secret string, revoked RevocationList) *SessionManager {
	if revoked == nil {
		revoked = NewMemoryRevocationList()
	}
	return &SessionManager{secret: []byte(secret), ttl: SessionDuration, revoked: revoked, Now: time.Now}
}

func (m *SessionManager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// CreateSession signs a token for userID and returns it with its expiry.
func (m *SessionManager) CreateSession(userID int64) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("session secret is not configured")
	}
	now := m.now()
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ValidateSession checks the token's signature, expiry and revocation.
func (m *SessionManager) ValidateSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Session{}, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	if claims.ID == "" {
		return Session{}, fmt.Errorf("%w: missing jti", ErrInvalidSession)
	}
	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, fmt.Errorf("%w: session has been logged out", ErrInvalidSession)
	}
	return Session{ID: claims.ID, UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// InvalidateSession revokes a validated session until its expiry.
func (m *SessionManager) InvalidateSession(ctx context.Context, s Session) error {
	return m.revoked.Revoke(ctx, s.ID, s.ExpiresAt)
}
