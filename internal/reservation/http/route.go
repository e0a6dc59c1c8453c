package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public calendar view
	g.GET("/spots/:id/availability", h.Availability)

	group := g.Group("/reservations")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/cancel", h.Cancel)
		group.PATCH("/:id/payment", h.UpdatePayment)

		// Scheduler hook
		group.POST("/complete-due", adminMiddleware, h.CompleteDue)
	}
}
