package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListUnits(c *gin.Context) {
	render(c, http.StatusOK, "units.html", gin.H{
		"buildings": buildingOptions(),
	})
}
