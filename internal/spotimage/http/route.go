package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Public photo serving
	g.GET("/spots/:id/images", h.ListBySpot)
	g.GET("/images/:id", h.Get)
	g.GET("/images/:id/thumbnail", h.GetThumbnail)

	// Host management
	g.POST("/spots/:id/images", authMiddleware, h.Upload)
	g.DELETE("/images/:id", authMiddleware, h.Delete)
}
