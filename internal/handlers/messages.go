package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"residence-hub/internal/database"
	"residence-hub/internal/events"
	"residence-hub/internal/middleware"
	"residence-hub/internal/models"

	"github.com/gin-gonic/gin"
)

var avatarColors = []string{"bg-blue-500", "bg-green-500", "bg-purple-500", "bg-orange-500", "bg-pink-500"}

func inbox(userID uint, limit int) []models.Message {
	var msgs []models.Message
	q := database.DB.Preload("Sender").
		Where("receiver_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		log.Printf("inbox %d: %v", userID, err)
	}
	return msgs
}

func Messages(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	// справочник получателей: все, кроме себя
	var users []models.User
	if err := database.DB.Select("id", "name", "email", "role").
		Where("id <> ?", id.UserID).
		Order("name asc").
		Find(&users).Error; err != nil {
		log.Printf("message directory: %v", err)
	}

	render(c, http.StatusOK, "messages.html", gin.H{
		"messages": inbox(id.UserID, 0),
		"users":    users,
	})
}

func (h *Handler) SendMessage(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	content := strings.TrimSpace(c.PostForm("content"))
	receiverID, err := strconv.ParseUint(c.PostForm("receiverId"), 10, 64)
	if err != nil || receiverID == 0 || content == "" {
		setFlash(c, failure("Destinatario y mensaje son obligatorios"))
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	var receiver models.User
	if err := database.DB.Select("id").First(&receiver, receiverID).Error; err != nil {
		setFlash(c, failure("Destinatario no encontrado"))
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	msg := models.Message{
		Content:     content,
		SenderID:    id.UserID,
		ReceiverID:  receiver.ID,
		AvatarColor: avatarColors[int(id.UserID)%len(avatarColors)],
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		log.Printf("send message: %v", err)
		setFlash(c, failure("Error al enviar el mensaje"))
		c.Redirect(http.StatusFound, "/messages")
		return
	}

	database.CreateAuditLog(id.UserID, "message", msg.ID, "create", "Mensaje a usuario "+strconv.FormatUint(uint64(receiver.ID), 10))
	h.publish(c, events.RKMessageSent, events.MessageSent{
		MessageID: msg.ID, SenderID: msg.SenderID, ReceiverID: msg.ReceiverID,
	})

	setFlash(c, success("Mensaje enviado correctamente"))
	c.Redirect(http.StatusFound, "/messages")
}
