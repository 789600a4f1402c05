package handlers

import (
	"log"
	"net/http"

	"residence-hub/internal/booking"
	"residence-hub/internal/database"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

// ListReservations: брони, которые видит текущий пользователь, начиная с сегодняшнего дня
func (h *Handler) ListReservations(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	reservations, err := h.booking.ListVisible(c.Request.Context(), id, h.today())
	if err != nil {
		log.Printf("list reservations: %v", err)
		c.String(http.StatusInternalServerError, "Error al obtener reservas")
		return
	}

	render(c, http.StatusOK, "reservations.html", gin.H{
		"reservations": reservations,
		"amenities":    amenities(),
		"next":         "/reservations",
		"seesAll":      id.Role.SeesAllReservations(),
	})
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req booking.Request
	// пустые поля отсеет проверка в booking
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("reservation form bind: %v", err)
	}

	_, err := h.booking.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	setFlash(c, booking.Outcome(err))

	c.Redirect(http.StatusFound, backTo(c, "/reservations"))
}

func amenities() []models.Amenity {
	var out []models.Amenity
	if err := database.DB.Order("name asc").Find(&out).Error; err != nil {
		log.Printf("load amenities: %v", err)
	}
	return out
}

// backTo: форма может прийти с календаря или со списка броней
func backTo(c *gin.Context, def string) string {
	switch next := c.PostForm("next"); next {
	case "/", "/events", "/reservations":
		return next
	}
	return def
}
