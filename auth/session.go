package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of a session token unless configured otherwise.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is the only error Verify returns. Malformed, forged and
// expired tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated subject carried by a session token.
type Identity struct {
	UserID   string
	Username string
}

// Claims is the signed payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// SessionAuthority issues and verifies stateless HS256 session tokens.
// It holds no mutable state after construction.
type SessionAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionAuthority returns an authority signing with secret. A
// non-positive ttl falls back to DefaultTokenTTL.
func NewSessionAuthority(secret []byte, ttl time.Duration) (*SessionAuthority, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &SessionAuthority{secret: key, ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime applied by Issue.
func (a *SessionAuthority) TTL() time.Duration {
	return a.ttl
}

// Issue signs a token for the given user valid for the configured TTL.
func (a *SessionAuthority) Issue(userID, username string) (string, error) {
	return a.IssueWithTTL(userID, username, a.ttl)
}

// IssueWithTTL signs a token for the given user valid for ttl.
func (a *SessionAuthority) IssueWithTTL(userID, username string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	issuedAt := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	})
	return token.SignedString(a.secret)
}

// Verify checks the signature and expiry of token and returns the identity
// it was issued for.
func (a *SessionAuthority) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
