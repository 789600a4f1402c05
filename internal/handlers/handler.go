package handlers

import (
	"time"

	"residence-hub/internal/auth"
	"residence-hub/internal/booking"
)

// Handler держит зависимости, которым нужен не только database.DB
type Handler struct {
	tokens  *auth.TokenManager
	booking *booking.Service
	pub     booking.Publisher
	loc     *time.Location
	secure  bool // Secure-флаг для cookie
}

func New(tokens *auth.TokenManager, svc *booking.Service, pub booking.Publisher, secureCookies bool) *Handler {
	return &Handler{
		tokens:  tokens,
		booking: svc,
		pub:     pub,
		loc:     svc.Location(),
		secure:  secureCookies,
	}
}

// today: полночь текущего дня в часовом поясе сообщества
func (h *Handler) today() time.Time {
	now := time.Now().In(h.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
}

func (h *Handler) Tokens() *auth.TokenManager { return h.tokens }
