package server

import (
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"residence-hub/internal/config"
	"residence-hub/internal/database"
	"residence-hub/internal/handlers"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}

func maskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	masked := make([]rune, n)
	for i := range runes {
		if i >= n-2 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}

func funcMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"eq":        func(a, b interface{}) bool { return a == b },
		"maskEmail": maskEmail,
		"maskPhone": maskPhone,
		"roleLabel": func(r models.UserRole) string { return r.Label() },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		// колонка date приходит в UTC, её не сдвигаем
		"day": func(t time.Time) string { return t.UTC().Format("02/01/2006") },
		"clock": func(t time.Time) string {
			return t.In(loc).Format("15:04")
		},
		"datetime": func(t time.Time) string {
			return t.In(loc).Format("02/01/2006 15:04")
		},
		"money":    func(v float64) string { return formatMoney(v) },
		"initials": initials,
		"dict":     dict,
	}
}

// dict: передать во вложенный шаблон несколько значений
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func NewRouter(cfg *config.Config, h *handlers.Handler, loginLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()
	// за прокси не стоим: ClientIP берётся из сокета, а не из X-Forwarded-For
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("set trusted proxies: %v", err)
	}

	r.Static("/static", "./web/static")

	r.SetFuncMap(funcMap(cfg.Location()))
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("hub_session", store))

	r.Use(middleware.InjectUser(h.Tokens(), loadUser))

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", loginLimiter.Middleware(), h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", loginLimiter.Middleware(), h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// ГЛАВНАЯ
	auth.GET("/", h.Dashboard)

	// БРОНИ И КАЛЕНДАРЬ
	auth.GET("/reservations", h.ListReservations)
	auth.POST("/reservations", h.CreateReservation)
	auth.GET("/events", h.Calendar)
	auth.POST("/events", h.CreateEvent)

	// СООБЩЕНИЯ И ПРОФИЛЬ
	auth.GET("/messages", handlers.Messages)
	auth.POST("/messages", h.SendMessage)
	auth.GET("/profile", handlers.Profile)

	// ПОСЕТИТЕЛИ
	visitors := auth.Group("/visitors", middleware.RequireRole(handlers.Roles("/visitors")...))
	visitors.GET("", handlers.ListVisitors)
	visitors.POST("", h.CreateVisitor)
	visitors.POST("/:id/checkout", h.CheckOutVisitor)

	auth.GET("/units",
		middleware.RequireRole(handlers.Roles("/units")...),
		handlers.ListUnits,
	)
	auth.GET("/accounts",
		middleware.RequireRole(handlers.Roles("/accounts")...),
		handlers.ListInvoices,
	)

	// АУДИТ
	auth.GET("/audit",
		middleware.RequireRole(handlers.Roles("/audit")...),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

func loadUser(id uint) (models.User, error) {
	var user models.User
	err := database.DB.First(&user, id).Error
	return user, err
}
