package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

//
// --- Seller Dashboard Stats ---
//

type SellerStats struct {
	AwaitingShipment int     `json:"awaitingShipment"`
	PaymentHeld      int     `json:"paymentHeld"`
	Shipped          int     `json:"shipped"`
	Completed        int     `json:"completed"`
	CompletedSales   float64 `json:"completedSales"`
}

// GetSellerStats returns KPI data for the seller dashboard, computed from
// the caller's own partition (only copies where the caller is the seller
// count — everything they bought is skipped).
// GET /v1/seller/dashboard-stats
func (h *Handlers) GetSellerStats(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	sellerID := userID_raw.(int64)

	orders, err := h.Partitions.Read(sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	stats := SellerStats{}
	for _, o := range orders {
		if o.SellerID() != sellerID {
			continue
		}
		switch o.Status {
		case models.StatusAwaitingShipment:
			stats.AwaitingShipment++
		case models.StatusPaymentHeld:
			stats.PaymentHeld++
		case models.StatusShipped:
			stats.Shipped++
		case models.StatusCompleted:
			stats.Completed++
			stats.CompletedSales += o.Total
		}
	}

	c.JSON(http.StatusOK, stats)
}
