package http

import (
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/request"
	"github.com/wildpitch/spot-booking-backend/internal/reservation"
)

type CreateReservationRequest struct {
	SpotID   string    `json:"spot_id" binding:"required,uuid"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
	Guests   int       `json:"guests" binding:"required"`
	Notes    string    `json:"notes"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type ListReservationsRequest struct {
	request.ListParams
	SpotID string `form:"spot_id"`
	Status string `form:"status"`
	// Role selects which side of the reservation the caller lists:
	// "requester" (default) or "owner".
	Role string `form:"role"`
}

type AvailabilityRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

type AvailabilityResponse struct {
	SpotID       string                  `json:"spot_id"`
	From         time.Time               `json:"from"`
	To           time.Time               `json:"to"`
	BookedRanges []reservation.DateRange `json:"booked_ranges"`
}

type CompleteDueResponse struct {
	Completed int `json:"completed"`
}

type ReservationResponse struct {
	ID              string    `json:"id"`
	SpotID          string    `json:"spot_id"`
	SpotName        string    `json:"spot_name"`
	RequesterID     string    `json:"requester_id"`
	OwnerID         string    `json:"owner_id"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	Notes           *string   `json:"notes,omitempty"`
	HasReview       bool      `json:"has_review"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		SpotID:          r.SpotID,
		SpotName:        r.SpotName,
		RequesterID:     r.RequesterID,
		OwnerID:         r.OwnerID,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		Nights:          reservation.Nights(r.CheckIn, r.CheckOut),
		Guests:          r.Guests,
		TotalPriceCents: r.TotalPriceCents,
		Status:          string(r.Status),
		PaymentStatus:   string(r.PaymentStatus),
		Notes:           r.Notes,
		HasReview:       r.HasReview,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
