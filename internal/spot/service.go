package spot

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID          string
	Name             string
	Description      string
	Location         string
	Latitude         float64
	Longitude        float64
	Capacity         int
	NightlyRateCents int64
	InstantBook      bool
}

type UpdateRequest struct {
	Name             *string
	Description      *string
	Location         *string
	Latitude         *float64
	Longitude        *float64
	Capacity         *int
	NightlyRateCents *int64
	IsActive         *bool
	InstantBook      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Spot, error)
	GetByID(ctx context.Context, id string) (*Spot, error)
	List(ctx context.Context, filter Filter) ([]*Spot, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Spot, error)
	Deactivate(ctx context.Context, id string, actorID string, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Spot, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.NightlyRateCents < 0 {
		return nil, ErrInvalidRate
	}

	sp := &Spot{
		OwnerID:          req.OwnerID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Capacity:         req.Capacity,
		NightlyRateCents: req.NightlyRateCents,
		IsActive:         true,
		InstantBook:      req.InstantBook,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Spot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Spot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Spot, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sp.OwnerID != actorID && !isAdmin {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		sp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.Location != nil {
		sp.Location = *req.Location
	}
	if req.Latitude != nil {
		sp.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		sp.Longitude = *req.Longitude
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		sp.Capacity = *req.Capacity
	}
	if req.NightlyRateCents != nil {
		// Rate changes never touch already-created reservations; their price
		// was fixed at creation time.
		if *req.NightlyRateCents < 0 {
			return nil, ErrInvalidRate
		}
		sp.NightlyRateCents = *req.NightlyRateCents
	}
	if req.IsActive != nil {
		sp.IsActive = *req.IsActive
	}
	if req.InstantBook != nil {
		sp.InstantBook = *req.InstantBook
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Deactivate(ctx context.Context, id string, actorID string, isAdmin bool) error {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp.OwnerID != actorID && !isAdmin {
		return ErrNotOwner
	}

	// Spots are never deleted; existing reservations keep pointing at them.
	sp.IsActive = false
	return s.repo.Update(ctx, sp)
}
