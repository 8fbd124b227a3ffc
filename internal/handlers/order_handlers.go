package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasarlink-golang/internal/ledger"
	"github.com/pasarlink/pasarlink-golang/internal/models"
)

//
// --- Order Handlers ---
//

// CheckoutInput defines the JSON for POST /v1/checkout. The cart lines are
// catalog snapshots supplied by the caller; the ledger stores them verbatim.
type CheckoutInput struct {
	Items           []models.CartLine `json:"items" binding:"required,dive"`
	ShippingAddress models.Address    `json:"shippingAddress" binding:"required"`
	DeliveryMethod  string            `json:"deliveryMethod" binding:"required,oneof=shipping free_shipping local_pickup"`
}

// Checkout is the handler for POST /v1/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	// 1. --- Get Buyer ID ---
	userID_raw, _ := c.Get("userID")
	buyerID := userID_raw.(int64)

	// 2. --- Bind & Validate JSON ---
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 3. --- Preconditions (rejected before the ledger is invoked) ---
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}
	if !input.ShippingAddress.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is incomplete"})
		return
	}

	// 4. --- Place the Orders ---
	first, ok := h.Ledger.PlaceOrder(buyerID, input.Items, input.ShippingAddress, input.DeliveryMethod)
	if !ok {
		// Every line in the cart was a self-sale, so nothing was created.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No order could be created from this cart"})
		return
	}

	// 5. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   first,
	})
}

// GetMyOrders is the handler for GET /v1/orders
// It returns every order copy in the caller's own partition, newest first.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	orders, err := h.Partitions.Read(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)
	orderID := c.Param("id")

	orders, err := h.Partitions.Read(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	for i := range orders {
		if orders[i].ID == orderID {
			c.JSON(http.StatusOK, gin.H{"order": orders[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
}

// MarkShipped is the handler for PATCH /v1/seller/orders/:id/ship
func (h *Handlers) MarkShipped(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	sellerID := userID_raw.(int64)
	orderID := c.Param("id")

	res := h.Engine.MarkShipped(sellerID, orderID)
	h.respondUpdate(c, res, "Order marked as shipped")
}

// ConfirmReceipt is the handler for PATCH /v1/orders/:id/receive
func (h *Handlers) ConfirmReceipt(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	buyerID := userID_raw.(int64)
	orderID := c.Param("id")

	res := h.Engine.ConfirmReceipt(buyerID, orderID)
	h.respondUpdate(c, res, "Receipt confirmed, order completed")
}

// RateSeller is the handler for POST /v1/orders/:id/rating
func (h *Handlers) RateSeller(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	buyerID := userID_raw.(int64)
	orderID := c.Param("id")

	res := h.Engine.RateSeller(buyerID, orderID)
	h.respondUpdate(c, res, "Seller rated")
}

// ReviewItem is the handler for POST /v1/orders/:id/reviews/:product_id
func (h *Handlers) ReviewItem(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	buyerID := userID_raw.(int64)
	orderID := c.Param("id")

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	res := h.Engine.ReviewItem(buyerID, orderID, productID)
	h.respondUpdate(c, res, "Product marked as reviewed")
}

// respondUpdate maps an engine result onto an HTTP response.
func (h *Handlers) respondUpdate(c *gin.Context, res ledger.UpdateResult, okMessage string) {
	switch res.Reason {
	case ledger.ReasonOK:
		c.JSON(http.StatusOK, gin.H{"message": okMessage, "orderId": res.OrderID})
	case ledger.ReasonInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "Order is not in a status that allows this action"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	}
}
