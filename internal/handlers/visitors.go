package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"residence-hub/internal/database"
	"residence-hub/internal/events"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var visitorTypes = []string{"Guest", "Delivery", "Service"}

func ListVisitors(c *gin.Context) {
	var visitors []models.Visitor
	if err := database.DB.Order("created_at desc").Find(&visitors).Error; err != nil {
		log.Printf("list visitors: %v", err)
	}

	render(c, http.StatusOK, "visitors.html", gin.H{
		"visitors": visitors,
		"types":    visitorTypes,
	})
}

func (h *Handler) CreateVisitor(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	name := strings.TrimSpace(c.PostForm("name"))
	vtype := strings.TrimSpace(c.PostForm("type"))
	if name == "" || vtype == "" {
		setFlash(c, failure("Nombre y tipo son obligatorios"))
		c.Redirect(http.StatusFound, "/visitors")
		return
	}

	v := models.Visitor{
		Name:        name,
		Type:        vtype,
		Status:      models.VisitorCheckIn,
		CheckInTime: time.Now(),
	}
	if err := database.DB.Create(&v).Error; err != nil {
		log.Printf("create visitor: %v", err)
		setFlash(c, failure("Error al registrar visitante"))
		c.Redirect(http.StatusFound, "/visitors")
		return
	}

	database.CreateAuditLog(id.UserID, "visitor", v.ID, "check_in", "Visitante: "+v.Name)
	h.publish(c, events.RKVisitorCheckedIn, events.VisitorChanged{
		VisitorID: v.ID, Name: v.Name, Type: v.Type, At: v.CheckInTime.Unix(),
	})

	setFlash(c, success("Visitante registrado correctamente"))
	c.Redirect(http.StatusFound, "/visitors")
}

func (h *Handler) CheckOutVisitor(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	vid, err := strconv.Atoi(c.Param("id"))
	if err != nil || vid <= 0 {
		c.String(http.StatusBadRequest, "ID de visitante no válido")
		return
	}

	now := time.Now()
	v, err := database.CheckOutVisitor(database.DB, uint(vid), now)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.String(http.StatusNotFound, "Visitante no encontrado")
		return
	case errors.Is(err, database.ErrAlreadyCheckedOut):
		setFlash(c, failure("El visitante ya salió"))
		c.Redirect(http.StatusFound, "/visitors")
		return
	case err != nil:
		log.Printf("check out visitor %d: %v", vid, err)
		setFlash(c, failure("Error al registrar la salida"))
		c.Redirect(http.StatusFound, "/visitors")
		return
	}

	database.CreateAuditLog(id.UserID, "visitor", v.ID, "check_out", "Salida: "+v.Name)
	h.publish(c, events.RKVisitorCheckedOut, events.VisitorChanged{
		VisitorID: v.ID, Name: v.Name, Type: v.Type, At: now.Unix(),
	})

	setFlash(c, success("Salida registrada"))
	c.Redirect(http.StatusFound, "/visitors")
}
