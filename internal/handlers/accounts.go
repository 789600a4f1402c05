package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListInvoices(c *gin.Context) {
	invoices := latestInvoices(100)

	var paid, unpaid float64
	for _, inv := range invoices {
		if inv.Status == "Paid" {
			paid += inv.Amount
		} else {
			unpaid += inv.Amount
		}
	}

	render(c, http.StatusOK, "accounts.html", gin.H{
		"invoices": invoices,
		"paid":     paid,
		"unpaid":   unpaid,
	})
}
