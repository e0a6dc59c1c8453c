package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/db"
	"github.com/wildpitch/spot-booking-backend/internal/notification"
	"github.com/wildpitch/spot-booking-backend/internal/spot"
)

type CreateRequest struct {
	RequesterID string
	SpotID      string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	Notes       string
}

// SpotCatalog is the slice of the spot service the engine needs. Spot data is
// fetched fresh on every create so a rate change cannot race the price
// snapshot across the transaction boundary.
type SpotCatalog interface {
	GetByID(ctx context.Context, id string) (*spot.Spot, error)
}

// Notifier receives lifecycle events; delivery is fire-and-forget.
type Notifier interface {
	Emit(e notification.Event)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string, actorID string, isAdmin bool) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// Availability returns the booked ranges blocking the window, so callers
	// can render a calendar without creating anything.
	Availability(ctx context.Context, spotID string, from, to time.Time) ([]DateRange, error)

	// Approve confirms a pending reservation. Owner only.
	Approve(ctx context.Context, id string, actorID string) (*Reservation, error)
	// Reject cancels a pending reservation without the notice-window check.
	// Owner only.
	Reject(ctx context.Context, id string, actorID string, reason string) (*Reservation, error)
	// Cancel applies the cancellation policy for requesters; owners and
	// admins skip the window check.
	Cancel(ctx context.Context, id string, actorID string, isAdmin bool, reason string) (*Reservation, error)
	// UpdatePaymentStatus moves the payment axis; capturing payment on a
	// pending reservation also confirms it. Owner or admin only: the
	// requester must not be able to confirm or refund their own booking.
	UpdatePaymentStatus(ctx context.Context, id string, actorID string, isAdmin bool, status PaymentStatus) (*Reservation, error)
	// CompleteDue transitions confirmed stays whose check-out has passed.
	// Driven by an external scheduler.
	CompleteDue(ctx context.Context, now time.Time) (int, error)
	// AttachReview flags the reservation as reviewed. Called by the review
	// service after a successful review insert.
	AttachReview(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	catalog  SpotCatalog
	notifier Notifier
	policy   CancellationPolicy
	now      func() time.Time
	log      *zap.Logger
}

func NewService(repo Repository, catalog SpotCatalog, notifier Notifier, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		policy:   DefaultCancellationPolicy(),
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.Named("reservation"),
	}
}

// normalizeDate truncates to midnight UTC; reservations are date-granular.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	checkIn := normalizeDate(req.CheckIn)
	checkOut := normalizeDate(req.CheckOut)

	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	if checkIn.Before(normalizeDate(s.now())) {
		return nil, ErrCheckInPast
	}

	nights := Nights(checkIn, checkOut)
	if nights > MaxStayNights {
		return nil, ErrSpanTooLong
	}

	if req.Guests < 1 || req.Guests > MaxGuests {
		return nil, ErrGuestCount
	}

	// Fetched fresh every time; the rate snapshot below must not come from a
	// cache that predates this request.
	sp, err := s.catalog.GetByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, spot.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	if !sp.IsActive {
		return nil, ErrSpotInactive
	}
	if req.Guests > sp.Capacity {
		return nil, ErrCapacityExceeded
	}
	if req.RequesterID == sp.OwnerID {
		return nil, ErrSelfBooking
	}

	var notes *string
	if n := strings.TrimSpace(req.Notes); n != "" {
		notes = &n
	}

	res := &Reservation{
		SpotID:          sp.ID,
		SpotName:        sp.Name,
		RequesterID:     req.RequesterID,
		OwnerID:         sp.OwnerID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		TotalPriceCents: TotalPriceCents(nights, sp.NightlyRateCents),
		Status:          InitialStatus(sp.InstantBook),
		PaymentStatus:   PaymentPending,
		Notes:           notes,
	}

	// The repository re-checks conflicts inside the same transaction that
	// inserts, with one transparent retry on a serialization abort.
	conflicts, err := s.repo.Create(ctx, res)
	if err != nil {
		if errors.Is(err, db.ErrTransient) {
			// Do not leak infrastructure detail; after the retry the caller
			// only needs to know the slot could not be secured.
			s.log.Warn("create reservation failed transiently",
				zap.String("spot_id", sp.ID), zap.Error(err))
			return nil, &SlotUnavailableError{SpotID: sp.ID}
		}
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &SlotUnavailableError{SpotID: sp.ID, Conflicts: conflicts}
	}

	kind := notification.KindReservationRequested
	if res.Status == StatusConfirmed {
		kind = notification.KindReservationConfirmed
	}
	s.emit(res, kind)

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isAdmin bool) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && actorID != res.RequesterID && actorID != res.OwnerID {
		return nil, ErrPermissionDenied
	}
	return res, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Availability(ctx context.Context, spotID string, from, to time.Time) ([]DateRange, error) {
	from = normalizeDate(from)
	to = normalizeDate(to)
	if !to.After(from) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.catalog.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, spot.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	return s.repo.FindOverlapping(ctx, spotID, from, to)
}

func (s *service) Approve(ctx context.Context, id string, actorID string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != res.OwnerID {
		return nil, &InvalidTransitionError{
			From:  res.Status,
			To:    StatusConfirmed,
			Guard: "only the spot owner may approve",
		}
	}

	if err := ApplyTransition(res, StatusConfirmed); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	s.emit(res, notification.KindReservationConfirmed)
	return res, nil
}

func (s *service) Reject(ctx context.Context, id string, actorID string, reason string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != res.OwnerID {
		return nil, ErrPermissionDenied
	}
	if res.Status != StatusPending {
		return nil, &InvalidTransitionError{
			From:  res.Status,
			To:    StatusCancelled,
			Guard: "only pending reservations can be rejected",
		}
	}

	return s.cancel(ctx, res, reason)
}

func (s *service) Cancel(ctx context.Context, id string, actorID string, isAdmin bool, reason string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isRequester := actorID == res.RequesterID
	isOwner := actorID == res.OwnerID
	if !isRequester && !isOwner && !isAdmin {
		return nil, ErrPermissionDenied
	}

	// The notice window binds the requester; owners and admins may always
	// cancel a non-terminal reservation.
	if isRequester && !isOwner && !isAdmin {
		if allowed, why := s.policy.Evaluate(res, s.now()); !allowed {
			return nil, &CancellationDeniedError{Reason: why}
		}
	}

	return s.cancel(ctx, res, reason)
}

// cancel performs the shared cancel transition, refunding captured payments.
func (s *service) cancel(ctx context.Context, res *Reservation, reason string) (*Reservation, error) {
	if err := ApplyTransition(res, StatusCancelled); err != nil {
		return nil, err
	}
	if res.PaymentStatus == PaymentPaid {
		res.PaymentStatus = PaymentRefunded
	}
	if r := strings.TrimSpace(reason); r != "" {
		res.Notes = &r
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}

	s.emit(res, notification.KindReservationCancelled)
	return res, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id string, actorID string, isAdmin bool, status PaymentStatus) (*Reservation, error) {
	if !ValidPaymentStatus(status) {
		return nil, ErrInvalidPayment
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != res.OwnerID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	res.PaymentStatus = status

	// Captured payment confirms a pending reservation; an already confirmed
	// one keeps its status.
	confirmed := false
	if status == PaymentPaid && res.Status == StatusPending {
		if err := ApplyTransition(res, StatusConfirmed); err != nil {
			return nil, err
		}
		confirmed = true
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	if confirmed {
		s.emit(res, notification.KindReservationConfirmed)
	}
	return res, nil
}

func (s *service) CompleteDue(ctx context.Context, now time.Time) (int, error) {
	completed, err := s.repo.CompleteDue(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, res := range completed {
		s.emit(res, notification.KindReservationCompleted)
	}
	return len(completed), nil
}

func (s *service) AttachReview(ctx context.Context, id string) error {
	return s.repo.SetReviewAttached(ctx, id)
}

func (s *service) emit(res *Reservation, kind notification.Kind) {
	if s.notifier == nil {
		return
	}
	s.notifier.Emit(notification.Event{
		ReservationID: res.ID,
		RequesterID:   res.RequesterID,
		OwnerID:       res.OwnerID,
		Kind:          kind,
	})
}
