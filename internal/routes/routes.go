package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pasarlink/pasarlink-golang/internal/handlers"
	"github.com/pasarlink/pasarlink-golang/internal/middleware"
)

// CORSMiddleware tells the browser it is safe for the local frontend to
// send data to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Reply 204 to the preflight OPTIONS request.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			// --- Notification Routes ---
			auth.GET("/notifications", h.GetMyNotifications)
			auth.PATCH("/notifications/:id/read", h.MarkNotificationAsRead)

			// --- Buyer Routes ---
			auth.POST("/checkout", h.Checkout)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)
			auth.PATCH("/orders/:id/receive", h.ConfirmReceipt)
			auth.POST("/orders/:id/rating", h.RateSeller)
			auth.POST("/orders/:id/reviews/:product_id", h.ReviewItem)

			// --- Seller Routes ---
			// Every user can sell; the engine checks the order really sits
			// in the caller's partition.
			auth.PATCH("/seller/orders/:id/ship", h.MarkShipped)
			auth.GET("/seller/dashboard-stats", h.GetSellerStats)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/orders", h.AdminGetOrders)
			admin.PATCH("/orders/:id/status", h.AdminOverrideStatus)
			admin.GET("/commission-report", h.CommissionReport)
		}
	}

	return router
}
