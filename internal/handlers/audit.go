package handlers

import (
	"log"
	"net/http"

	"residence-hub/internal/database"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	logs, err := database.RecentAuditLogs(200)
	if err != nil {
		log.Printf("audit logs: %v", err)
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}
