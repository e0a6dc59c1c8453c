package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/spots")

	// Public browse endpoints
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// Host endpoints
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Deactivate)
	}
}
