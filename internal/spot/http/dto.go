package http

import (
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/request"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
)

type CreateSpotRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	Latitude         float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude        float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Capacity         int     `json:"capacity" binding:"required,min=1"`
	NightlyRateCents int64   `json:"nightly_rate_cents" binding:"min=0"`
	InstantBook      bool    `json:"instant_book"`
}

type UpdateSpotRequest struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	Location         *string  `json:"location"`
	Latitude         *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude        *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Capacity         *int     `json:"capacity" binding:"omitempty,min=1"`
	NightlyRateCents *int64   `json:"nightly_rate_cents" binding:"omitempty,min=0"`
	IsActive         *bool    `json:"is_active"`
	InstantBook      *bool    `json:"instant_book"`
}

// ListSpotsRequest defines query parameters for listing spots.
type ListSpotsRequest struct {
	request.ListParams
	OwnerID      string `form:"owner_id" binding:"omitempty,uuid"`
	OnlyActive   bool   `form:"only_active"`
	MinCapacity  int    `form:"min_capacity" binding:"omitempty,min=1"`
	MaxRateCents int64  `form:"max_rate_cents" binding:"omitempty,min=0"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=name capacity nightly_rate_cents created_at"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type SpotResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	IsActive         bool      `json:"is_active"`
	InstantBook      bool      `json:"instant_book"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewSpotResponse(s *spot.Spot) SpotResponse {
	return SpotResponse{
		ID:               s.ID,
		OwnerID:          s.OwnerID,
		Name:             s.Name,
		Description:      s.Description,
		Location:         s.Location,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		Capacity:         s.Capacity,
		NightlyRateCents: s.NightlyRateCents,
		IsActive:         s.IsActive,
		InstantBook:      s.InstantBook,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
