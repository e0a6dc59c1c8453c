package spot

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("spot not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	ErrInvalidRate     = errors.New("nightly rate must not be negative")
	ErrNotOwner        = errors.New("only the spot owner may do this")
)

// Spot is a bookable camping spot published by a host.
type Spot struct {
	ID               string
	OwnerID          string
	Name             string
	Description      string
	Location         string
	Latitude         float64
	Longitude        float64
	Capacity         int
	NightlyRateCents int64
	IsActive         bool
	InstantBook      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Filter defines parameters for listing spots.
type Filter struct {
	OwnerID      string
	OnlyActive   bool
	MinCapacity  int
	MaxRateCents int64
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
