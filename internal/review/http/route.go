package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reviews")

	// Public read endpoints
	group.GET("", h.List)

	group.POST("", authMiddleware, h.Create)

	// Spot-scoped aggregate lives beside the spot browse endpoints.
	g.GET("/spots/:id/review-summary", h.Summarize)
}
