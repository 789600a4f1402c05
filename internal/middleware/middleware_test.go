package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"residence-hub/internal/auth"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var tm = auth.NewTokenManager("test-secret", "residence-hub", time.Hour)

// users: «база» для загрузчика
func loaderFor(users ...models.User) UserLoader {
	return func(id uint) (models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return models.User{}, errors.New("record not found")
	}
}

func user(id uint, role models.UserRole) models.User {
	return models.User{Model: gorm.Model{ID: id}, Email: "u@example.com", Name: "U", Role: role}
}

func newEngine(load UserLoader, guard ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(InjectUser(tm, load))
	handlers := append(guard, func(c *gin.Context) {
		id := CurrentIdentity(c)
		c.String(http.StatusOK, string(id.Role))
	})
	r.GET("/p", handlers...)
	return r
}

func request(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := tm.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func TestRequireAuth(t *testing.T) {
	member := user(2, models.RoleMember)
	r := newEngine(loaderFor(member), RequireAuth())

	w := request(t, r, "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("no cookie: code=%d location=%s", w.Code, w.Header().Get("Location"))
	}

	w = request(t, r, "not-a-token")
	if w.Code != http.StatusFound {
		t.Errorf("garbage token: code=%d", w.Code)
	}

	w = request(t, r, issue(t, member))
	if w.Code != http.StatusOK || w.Body.String() != "MEMBER" {
		t.Errorf("valid token: code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestInjectUserUsesLiveRole(t *testing.T) {
	// токен выдан, пока пользователь был MEMBER, потом его повысили
	tok := issue(t, user(5, models.RoleMember))
	r := newEngine(loaderFor(user(5, models.RoleAdmin)), RequireAuth())

	w := request(t, r, tok)
	if w.Body.String() != "ADMIN" {
		t.Errorf("expected live role ADMIN, got %s", w.Body.String())
	}
}

func TestInjectUserDeletedUser(t *testing.T) {
	tok := issue(t, user(9, models.RoleMember))
	r := newEngine(loaderFor(), RequireAuth())

	w := request(t, r, tok)
	if w.Code != http.StatusFound {
		t.Errorf("deleted user must be redirected, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	admin := user(1, models.RoleAdmin)
	member := user(2, models.RoleMember)
	r := newEngine(loaderFor(admin, member), RequireAuth(), RequireRole(models.RoleSuperAdmin, models.RoleAdmin))

	tests := []struct {
		name  string
		token string
		code  int
	}{
		{"admin", issue(t, admin), http.StatusOK},
		{"member", issue(t, member), http.StatusForbidden},
		{"anonymous", "", http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := request(t, r, tt.token); w.Code != tt.code {
				t.Errorf("got %d, want %d", w.Code, tt.code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes: %v", codes)
	}

	// другой IP не затронут
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("second ip: %d", w.Code)
	}
}

func TestRateLimiterIgnoresForwardedFor(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()
	// gin.Default по умолчанию доверяет всем прокси
	r := gin.Default()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited != 48 {
		t.Errorf("limited %d of 50, want 48", limited)
	}
}

func TestRateLimiterEvictAndStop(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.get("10.0.0.1")
	rl.get("10.0.0.2")

	rl.evict(time.Now().Add(time.Second))
	rl.mu.Lock()
	n := len(rl.clients)
	rl.mu.Unlock()
	if n != 0 {
		t.Errorf("clients after evict: %d", n)
	}

	rl.Stop()
	rl.Stop()
	select {
	case <-rl.stop:
	default:
		t.Error("stop channel not closed")
	}
}
