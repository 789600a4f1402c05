package handlers

import (
	"log"
	"net/http"

	"residence-hub/internal/database"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

func Profile(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var user models.User
	if err := database.DB.
		Preload("MemberProfile.Unit.Building").
		Preload("FamilyMembers").
		First(&user, id.UserID).Error; err != nil {
		log.Printf("profile %d: %v", id.UserID, err)
		c.String(http.StatusInternalServerError, "Error al obtener perfil")
		return
	}

	render(c, http.StatusOK, "profile.html", gin.H{
		"user": user,
	})
}
