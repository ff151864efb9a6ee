package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the original six-day session window.
const DefaultTTL = 6 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure. Callers must
// not learn whether a token was expired, tampered with, or malformed.
var ErrInvalidToken = errors.New("invalid or expired session")

// Claims is the payload carried in a session token.
type Claims struct {
	MemberID int64  `json:"member_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens. Tokens are stateless:
// validity is determined entirely by signature and expiry, so there is no
// server-side revocation before natural expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager. An empty secret is a configuration error;
// the process cannot serve authenticated traffic without one.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is not set")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured session window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given member, expiring after the configured TTL.
func (m *Manager) Issue(memberID int64, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		MemberID: memberID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the claims. Every failure
// mode maps to ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.MemberID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh verifies a token and re-issues it with a fresh expiry, sliding the
// session window forward. Calling it repeatedly on valid tokens keeps
// producing valid, later-expiring tokens.
func (m *Manager) Refresh(tokenString string) (string, time.Time, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return "", time.Time{}, err
	}
	return m.Issue(claims.MemberID, claims.Email)
}
