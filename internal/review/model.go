package review

import (
	"net/http"
	"time"

	"github.com/wildpitch/spot-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "review not found")
	ErrInvalidRating   = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrNotEligible     = apperror.New(http.StatusForbidden, "only completed and paid stays can be reviewed by their guest")
	ErrDuplicateReview = apperror.New(http.StatusConflict, "reservation already has a review")
)

// Review is a guest's rating of a completed stay, tied one-to-one to the
// reservation that earned the right to write it.
type Review struct {
	ID            string
	ReservationID string
	SpotID        string
	AuthorID      string
	Rating        int
	Comment       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Summary aggregates a spot's reviews for listing pages.
type Summary struct {
	SpotID        string
	ReviewCount   int
	AverageRating float64
}

type Filter struct {
	SpotID   string
	AuthorID string
	Page     int
	PageSize int
}
