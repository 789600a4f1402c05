package handlers

import (
	"log"
	"net/http"

	"residence-hub/internal/database"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

type visitorStat struct {
	Type  string
	Count int64
}

func latestInvoices(limit int) []models.Invoice {
	var invoices []models.Invoice
	if err := database.DB.Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&invoices).Error; err != nil {
		log.Printf("latest invoices: %v", err)
	}
	return invoices
}

func countRows(model any, what string) int64 {
	var n int64
	if err := database.DB.Model(model).Count(&n).Error; err != nil {
		log.Printf("count %s: %v", what, err)
		return 0
	}
	return n
}

func latestNotices(limit int) []models.Notice {
	var notices []models.Notice
	if err := database.DB.Order("start_date desc").Limit(limit).Find(&notices).Error; err != nil {
		log.Printf("latest notices: %v", err)
	}
	return notices
}

func (h *Handler) Dashboard(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	visitorCount := countRows(&models.Visitor{}, "visitors")
	noticeCount := countRows(&models.Notice{}, "notices")

	var byType []visitorStat
	if err := database.DB.Model(&models.Visitor{}).
		Select("type, count(*) as count").
		Group("type").
		Order("type").
		Scan(&byType).Error; err != nil {
		log.Printf("visitor stats: %v", err)
	}

	notices := latestNotices(5)

	reservations, err := h.booking.ListVisible(c.Request.Context(), id, h.today())
	if err != nil {
		log.Printf("dashboard reservations: %v", err)
	}

	data := gin.H{
		"visitorCount":   visitorCount,
		"noticeCount":    noticeCount,
		"visitorsByType": byType,
		"notices":        notices,
		"messages":       inbox(id.UserID, 5),
		"upcoming":       upcomingEvents(h.today()),
		"reservations":   reservations,
		"amenities":      amenities(),
		"next":           "/",
		"seesAll":        id.Role.SeesAllReservations(),
	}
	// счета на главной только тем, у кого есть раздел «Cuentas»
	if hasMenu(id.Role, "/accounts") {
		data["invoices"] = latestInvoices(5)
	}

	render(c, http.StatusOK, "dashboard.html", data)
}

func hasMenu(role models.UserRole, href string) bool {
	for _, item := range MenuFor(role) {
		if item.Href == href {
			return true
		}
	}
	return false
}
