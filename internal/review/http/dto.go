package http

import (
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/request"
	"github.com/wildpitch/spot-booking-backend/internal/review"
)

type CreateReviewRequest struct {
	ReservationID string `json:"reservation_id" binding:"required,uuid"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

type ListReviewsRequest struct {
	request.ListParams
	SpotID string `form:"spot_id"`
}

type ReviewResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	SpotID        string    `json:"spot_id"`
	AuthorID      string    `json:"author_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		SpotID:        r.SpotID,
		AuthorID:      r.AuthorID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

type SummaryResponse struct {
	SpotID        string  `json:"spot_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}
