package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wildpitch/spot-booking-backend/internal/auth"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/response"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
)

type Handler struct {
	service spot.Service
}

func NewHandler(service spot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSpotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)

	sp, err := h.service.Create(c.Request.Context(), spot.CreateRequest{
		OwnerID:          ownerID,
		Name:             body.Name,
		Description:      body.Description,
		Location:         body.Location,
		Latitude:         body.Latitude,
		Longitude:        body.Longitude,
		Capacity:         body.Capacity,
		NightlyRateCents: body.NightlyRateCents,
		InstantBook:      body.InstantBook,
	})
	if err != nil {
		switch {
		case errors.Is(err, spot.ErrEmptyName),
			errors.Is(err, spot.ErrInvalidCapacity),
			errors.Is(err, spot.ErrInvalidRate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create spot"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewSpotResponse(sp))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	sp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, spot.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get spot"})
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(sp))
}

func (h *Handler) List(c *gin.Context) {
	var req ListSpotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	spots, total, err := h.service.List(c.Request.Context(), spot.Filter{
		OwnerID:      req.OwnerID,
		OnlyActive:   req.OnlyActive,
		MinCapacity:  req.MinCapacity,
		MaxRateCents: req.MaxRateCents,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list spots"})
		return
	}

	items := make([]SpotResponse, len(spots))
	for i, s := range spots {
		items[i] = NewSpotResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSpotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID := auth.GetUserID(c)
	isAdmin := auth.IsAdmin(c)

	sp, err := h.service.Update(c.Request.Context(), id, spot.UpdateRequest{
		Name:             body.Name,
		Description:      body.Description,
		Location:         body.Location,
		Latitude:         body.Latitude,
		Longitude:        body.Longitude,
		Capacity:         body.Capacity,
		NightlyRateCents: body.NightlyRateCents,
		IsActive:         body.IsActive,
		InstantBook:      body.InstantBook,
	}, actorID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, spot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		case errors.Is(err, spot.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, spot.ErrEmptyName),
			errors.Is(err, spot.ErrInvalidCapacity),
			errors.Is(err, spot.ErrInvalidRate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update spot"})
		}
		return
	}

	c.JSON(http.StatusOK, NewSpotResponse(sp))
}

func (h *Handler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actorID := auth.GetUserID(c)
	isAdmin := auth.IsAdmin(c)

	if err := h.service.Deactivate(c.Request.Context(), id, actorID, isAdmin); err != nil {
		switch {
		case errors.Is(err, spot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "spot not found"})
		case errors.Is(err, spot.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
