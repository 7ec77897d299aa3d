package ticketing

import (
	"festly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketingRoutes(router *gin.RouterGroup, controller Controller) {
	// Public: anyone can browse the catalogue with live availability.
	public := router.Group("/tickets")
	{
		public.GET("/types", controller.ListTicketTypes) // GET /api/v1/tickets/types
	}

	// Authenticated: purchase, cancel and inspect own tickets.
	protected := router.Group("/tickets")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/purchase", controller.PurchaseTicket)   // POST /api/v1/tickets/purchase
		protected.POST("/:id/cancel", controller.CancelTicket)   // POST /api/v1/tickets/:id/cancel
		protected.GET("/mine", controller.ListMyTickets)         // GET /api/v1/tickets/mine
		protected.GET("/:id/qr", controller.GetTicketQR)         // GET /api/v1/tickets/:id/qr
	}
}
