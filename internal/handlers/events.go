package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"residence-hub/internal/database"
	"residence-hub/internal/events"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

// Calendar: месячный календарь с бронями, событиями и объявлениями
func (h *Handler) Calendar(c *gin.Context) {
	now := time.Now().In(h.loc)
	year, month := monthFromQuery(c.Query("month"), c.Query("year"), now)
	from, to := monthBounds(year, month, h.loc)

	reservations, err := h.booking.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		log.Printf("calendar reservations: %v", err)
	}

	var evs []models.Event
	if err := database.DB.Preload("User").
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date asc").Order("start_time asc").
		Find(&evs).Error; err != nil {
		log.Printf("calendar events: %v", err)
	}

	// объявления, пересекающие месяц
	var notices []models.Notice
	if err := database.DB.
		Where("start_date <= ? AND end_date >= ?", to.AddDate(0, 0, 1), from).
		Order("start_date asc").
		Find(&notices).Error; err != nil {
		log.Printf("calendar notices: %v", err)
	}

	render(c, http.StatusOK, "events.html", gin.H{
		"calendar":  buildMonth(year, month, h.loc, now, reservations, evs, notices),
		"amenities": amenities(),
		"upcoming":  upcomingEvents(h.today()),
	})
}

func upcomingEvents(today time.Time) []models.Event {
	var evs []models.Event
	if err := database.DB.Preload("User").
		Where("date >= ?", today.Format("2006-01-02")).
		Order("date asc").
		Limit(10).
		Find(&evs).Error; err != nil {
		log.Printf("upcoming events: %v", err)
	}
	return evs
}

type eventForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Date        string `form:"date"`
	StartTime   string `form:"startTime"`
}

// parseEvent: название и дата обязательны, время HH:MM необязательно
func parseEvent(form eventForm, loc *time.Location) (models.Event, bool) {
	title := strings.TrimSpace(form.Title)
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(form.Date), loc)
	if title == "" || err != nil {
		return models.Event{}, false
	}

	ev := models.Event{
		Title:       title,
		Description: strings.TrimSpace(form.Description),
		Date:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   day,
		Type:        "General",
	}
	if hm, err := time.Parse("15:04", strings.TrimSpace(form.StartTime)); err == nil {
		ev.StartTime = time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	}
	return ev, true
}

func (h *Handler) CreateEvent(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("event form bind: %v", err)
	}

	ev, valid := parseEvent(form, h.loc)
	if !valid {
		setFlash(c, failure("Título y fecha obligatorios"))
		c.Redirect(http.StatusFound, "/events")
		return
	}
	ev.UserID = id.UserID

	if err := database.DB.Create(&ev).Error; err != nil {
		log.Printf("create event: %v", err)
		setFlash(c, failure("Error al crear evento"))
		c.Redirect(http.StatusFound, "/events")
		return
	}

	database.CreateAuditLog(id.UserID, "event", ev.ID, "create", "Evento: "+ev.Title)
	h.publish(c, events.RKEventCreated, events.EventCreated{
		EventID: ev.ID,
		Title:   ev.Title,
		Date:    ev.Date.Format("2006-01-02"),
		UserID:  id.UserID,
	})

	setFlash(c, success("Evento creado exitosamente"))
	c.Redirect(http.StatusFound, fmt.Sprintf("/events?month=%d&year=%d", ev.Date.Month(), ev.Date.Year()))
}

// publish: событие в шину, ошибка только в лог
func (h *Handler) publish(c *gin.Context, key string, v any) {
	if h.pub == nil {
		return
	}
	if err := h.pub.PublishJSON(c.Request.Context(), key, v); err != nil {
		log.Printf("publish %s: %v", key, err)
	}
}
