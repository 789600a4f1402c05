package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"residence-hub/internal/models"
)

var ErrBadToken = errors.New("invalid token")

// Identity is the caller resolved from a session token.
type Identity struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens. It is built from config
// and passed explicitly to whoever needs it.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs an HS256 token for the user.
func (m *TokenManager) Issue(u models.User) (string, error) {
	now := m.now()
	c := Claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Resolve classifies a raw token. Any failure (bad signature, malformed,
// expired, unknown role) yields ok == false.
func (m *TokenManager) Resolve(raw string) (Identity, bool) {
	c, err := m.parse(raw)
	if err != nil {
		return Identity{}, false
	}

	uid, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || uid == 0 {
		return Identity{}, false
	}
	role, ok := models.ParseRole(c.Role)
	if !ok {
		return Identity{}, false
	}

	return Identity{UserID: uint(uid), Email: c.Email, Role: role}, true
}

func (m *TokenManager) parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrBadToken
	}

	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// только HMAC, иначе alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}
