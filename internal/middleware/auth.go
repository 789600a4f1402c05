package middleware

import (
	"net/http"

	"residence-hub/internal/auth"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	AuthCookie = "auth_token"
	RoleCookie = "user_role"

	identityKey = "identity"
)

// CurrentIdentity: кого положил InjectUser (роль уже из живой строки БД)
func CurrentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return id
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[id.Role]; !ok {
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
