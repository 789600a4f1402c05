package database

import (
	"testing"

	"residence-hub/internal/auth"
	"residence-hub/internal/models"
)

func TestNewUserHashesLikeLogin(t *testing.T) {
	u, err := newUser("admin@example.com", "Super Admin", "s3cret", models.RoleSuperAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret" {
		t.Fatalf("password not hashed: %q", u.PasswordHash)
	}
	if !auth.CheckPassword(u.PasswordHash, "s3cret") {
		t.Error("login check rejects seeded password")
	}
	if auth.CheckPassword(u.PasswordHash, "wrong") {
		t.Error("login check accepts wrong password")
	}
	if u.Role != models.RoleSuperAdmin || u.Email != "admin@example.com" {
		t.Errorf("user: %+v", u)
	}
}
