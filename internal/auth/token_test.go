package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"residence-hub/internal/models"
)

func testUser() models.User {
	u := models.User{Email: "resident@example.com", Role: models.RoleResident}
	u.ID = 42
	return u
}

func TestIssueResolve(t *testing.T) {
	m := NewTokenManager("secret", "residence-hub", time.Hour)

	tok, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, ok := m.Resolve(tok)
	if !ok {
		t.Fatal("expected token to resolve")
	}
	if id.UserID != 42 || id.Email != "resident@example.com" || id.Role != models.RoleResident {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestResolveRejects(t *testing.T) {
	m := NewTokenManager("secret", "residence-hub", time.Hour)
	tok, _ := m.Issue(testUser())

	other := NewTokenManager("wrong-secret", "residence-hub", time.Hour)
	otherIssuer := NewTokenManager("secret", "someone-else", time.Hour)

	expired := NewTokenManager("secret", "residence-hub", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, _ := expired.Issue(testUser())

	noneTok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "residence-hub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "OWNER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "residence-hub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: "residence-hub"},
	}).SignedString([]byte("secret"))

	tests := []struct {
		name string
		m    *TokenManager
		tok  string
	}{
		{"empty", m, ""},
		{"garbage", m, "not.a.token"},
		{"wrong secret", other, tok},
		{"wrong issuer", otherIssuer, tok},
		{"expired", m, expiredTok},
		{"alg none", m, noneTok},
		{"unknown role", m, badRole},
		{"missing exp", m, noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id, ok := tt.m.Resolve(tt.tok); ok {
				t.Fatalf("expected rejection, got %+v", id)
			}
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	m := NewTokenManager("secret", "residence-hub", 24*time.Hour)
	tok, _ := m.Issue(testUser())

	c, err := m.parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	diff := time.Until(c.ExpiresAt.Time)
	if diff < 23*time.Hour || diff > 25*time.Hour {
		t.Errorf("expected ~24h expiry, got %v", diff)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "password123") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "password124") {
		t.Error("expected mismatch")
	}
}
