package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/reservation"
)

type CreateRequest struct {
	ReservationID string
	AuthorID      string
	Rating        int
	Comment       string
}

// Reservations is the slice of the reservation service needed to gate
// eligibility and flag the stay once reviewed.
type Reservations interface {
	GetByID(ctx context.Context, id string, actorID string, isAdmin bool) (*reservation.Reservation, error)
	AttachReview(ctx context.Context, id string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, spotID string) (*Summary, error)
}

type service struct {
	repo         Repository
	reservations Reservations
	log          *zap.Logger
}

func NewService(repo Repository, reservations Reservations, log *zap.Logger) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		log:          log.Named("review"),
	}
}

// eligible reports whether the stay has earned a review: the guest stayed
// (completed) and actually paid.
func eligible(res *reservation.Reservation, authorID string) bool {
	return res.RequesterID == authorID &&
		res.Status == reservation.StatusCompleted &&
		res.PaymentStatus == reservation.PaymentPaid
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	res, err := s.reservations.GetByID(ctx, req.ReservationID, req.AuthorID, false)
	if err != nil {
		return nil, err
	}
	if !eligible(res, req.AuthorID) {
		return nil, ErrNotEligible
	}

	// One review per author and spot, across all of their stays.
	exists, err := s.repo.ExistsForAuthorAndSpot(ctx, req.AuthorID, res.SpotID)
	if err != nil {
		return nil, err
	}
	if exists || res.HasReview {
		return nil, ErrDuplicateReview
	}

	var comment *string
	if c := strings.TrimSpace(req.Comment); c != "" {
		comment = &c
	}

	rv := &Review{
		ReservationID: res.ID,
		SpotID:        res.SpotID,
		AuthorID:      req.AuthorID,
		Rating:        req.Rating,
		Comment:       comment,
	}

	// The unique constraint on (author_id, spot_id) is the real duplicate
	// guard; the exists check above is only a fast path.
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	if err := s.reservations.AttachReview(ctx, res.ID); err != nil {
		// The review exists; a stale flag only costs one extra round trip on
		// the next duplicate attempt.
		s.log.Warn("attach review flag failed",
			zap.String("reservation_id", res.ID), zap.Error(err))
	}

	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Summarize(ctx context.Context, spotID string) (*Summary, error) {
	return s.repo.Summarize(ctx, spotID)
}
