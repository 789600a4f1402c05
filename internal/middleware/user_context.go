package middleware

import (
	"residence-hub/internal/auth"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

// UserLoader достаёт актуальную строку пользователя
type UserLoader func(id uint) (models.User, error)

// InjectUser проверяет токен из cookie и подгружает живого пользователя.
// Удалённый пользователь с ещё валидным токеном считается неавторизованным.
func InjectUser(tm *auth.TokenManager, load UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AuthCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		id, ok := tm.Resolve(raw)
		if !ok {
			c.Next()
			return
		}

		user, err := load(id.UserID)
		if err != nil {
			c.Next()
			return
		}

		// роль могли поменять после выдачи токена
		live := &auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
		if !live.Role.Valid() {
			c.Next()
			return
		}
		c.Set(identityKey, live)
		c.Set("CurrentUser", user)

		c.Next()
	}
}
