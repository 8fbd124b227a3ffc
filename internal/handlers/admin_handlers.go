package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasarlink-golang/internal/ledger"
	"github.com/pasarlink/pasarlink-golang/internal/models"
)

//
// --- Admin: Order Oversight Handlers ---
//

// AdminGetOrders is the handler for GET /v1/admin/orders
// It returns the de-duplicated union of every partition, optionally
// filtered by status. Newest first.
func (h *Handlers) AdminGetOrders(c *gin.Context) {
	orders, err := h.Commission.AdminOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build admin order view"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// OverrideStatusInput defines the JSON for the admin status override.
type OverrideStatusInput struct {
	Status string `json:"status" binding:"required,oneof=awaiting-shipment payment-held shipped completed"`
}

// AdminOverrideStatus is the handler for PATCH /v1/admin/orders/:id/status
// Used for dispute resolution: any status to any status, bypassing the
// normal transition graph.
func (h *Handlers) AdminOverrideStatus(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	adminID := userID_raw.(int64)
	orderID := c.Param("id")

	var input OverrideStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	res := h.Engine.AdminSetStatus(adminID, orderID, input.Status)
	h.respondUpdate(c, res, "Order status overridden")
}

// CommissionReport is the handler for GET /v1/admin/commission-report
// Optional query params: seller_id, from, to (dates as 2006-01-02,
// inclusive on both ends).
func (h *Handlers) CommissionReport(c *gin.Context) {
	var filter ledger.ReportFilter

	if v := c.Query("seller_id"); v != "" {
		sellerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller_id"})
			return
		}
		filter.SellerID = &sellerID
	}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date (want YYYY-MM-DD)"})
			return
		}
		filter.From = &from
	}

	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date (want YYYY-MM-DD)"})
			return
		}
		filter.To = &to
	}

	lines, summary, err := h.Commission.Report(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute commission report"})
		return
	}

	if lines == nil {
		lines = []ledger.ReportLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":   lines,
		"summary": summary,
	})
}
